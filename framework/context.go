package framework

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const noFailureMessage = "test failed with no failure message"

// TestCase is a named check. The action must record its observations on the Context; it
// does not return anything, and anything it panics with is caught by RunTestCase.
type TestCase struct {
	Name   string
	Action func(*Context)
}

// Context is passed to a running test case. It implements require.TestingT, so assertions
// from the testify assert and require packages can be used with it.
type Context struct {
	name        string
	debugLogger CapturingLogger
	failed      bool
	errors      []string
	statusCode  ldvalue.OptionalInt
	preview     ldvalue.OptionalString
	details     map[string]ldvalue.Value
}

// RunTestCase executes a single test case and always returns exactly one Outcome, along with
// whatever debug output the test case captured.
func RunTestCase(tc TestCase) (Outcome, CapturedOutput) {
	c := &Context{name: tc.Name}
	start := time.Now()
	c.run(tc.Action)
	return c.outcome(time.Since(start)), c.debugLogger.Output()
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.failed = true
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					c.errors = append(c.errors, noFailureMessage)
				}
			} else {
				c.errors = append(c.errors, fmt.Sprintf("unexpected panic in test: %+v", r))
				c.debugLogger.Printf("%s", debug.Stack())
			}
		}
	}()
	action(c)
}

func (c *Context) outcome(duration time.Duration) Outcome {
	o := Outcome{
		Name:            c.name,
		Passed:          !c.failed,
		Duration:        duration,
		StatusCode:      c.statusCode,
		ResponsePreview: c.preview,
	}
	if c.failed {
		message := strings.Join(c.errors, "; ")
		if message == "" {
			message = noFailureMessage
		}
		o.Error = ldvalue.NewOptionalString(message)
	}
	if len(c.details) > 0 {
		o.Details = make(map[string]ldvalue.Value, len(c.details))
		for k, v := range c.details {
			o.Details[k] = v
		}
	}
	return o
}

func (c *Context) Name() string {
	return c.name
}

// Errorf records a failure. It does not stop the test case.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// FailNow stops the test case immediately. The methods in the require package call FailNow.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Fatalf is Errorf followed by FailNow.
func (c *Context) Fatalf(format string, args ...interface{}) {
	c.Errorf(format, args...)
	c.FailNow()
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) SetStatusCode(status int) {
	c.statusCode = ldvalue.NewOptionalInt(status)
}

func (c *Context) SetResponsePreview(preview string) {
	c.preview = ldvalue.NewOptionalString(preview)
}

func (c *Context) SetDetail(name string, value ldvalue.Value) {
	if c.details == nil {
		c.details = make(map[string]ldvalue.Value)
	}
	c.details[name] = value
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
