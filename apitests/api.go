package apitests

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/framework"
	"github.com/recruitos/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const bodyPreviewLength = 200

// T represents one running check in our API test suite.
//
// It implements the same basic failure reporting as Go's testing.T, but in an environment that
// is outside of the Go test runner. Those features are provided by our lower-level framework
// package. It also knows how to talk to the API under test: every request made through T is
// logged to the check's debug output, and the status code of the last response is recorded
// on the check's outcome.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if
// it were a *testing.T. Failure messages from those packages are verbose, so the checks in
// this package mostly use the Require methods on T instead.
type T struct {
	context *framework.Context
	client  *client.Client
}

func newT(context *framework.Context, c *client.Client) *T {
	return &T{
		context: context,
		client:  c.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Fatalf logs a test failure and immediately exits.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.context.Fatalf(format, args...)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) SetResponsePreview(preview string) {
	t.context.SetResponsePreview(preview)
}

func (t *T) SetDetail(name string, value ldvalue.Value) {
	t.context.SetDetail(name, value)
}

// Client returns the client used by this check, already wired to the check's debug output.
func (t *T) Client() *client.Client {
	return t.client
}

// Get sends a GET request and returns the response. A transport failure ends the check.
func (t *T) Get(path string, query url.Values, profile client.AuthProfile) *client.Response {
	return t.RequireResponse(t.client.Get(path, query, profile))
}

// Post sends a POST request and returns the response. A transport failure ends the check.
func (t *T) Post(path string, query url.Values, body interface{}, profile client.AuthProfile) *client.Response {
	return t.RequireResponse(t.client.Post(path, query, body, profile))
}

// RequireResponse ends the check with the fault's own message if err is non-nil; otherwise it
// records the response's status code on the outcome.
func (t *T) RequireResponse(resp *client.Response, err error) *client.Response {
	if err != nil {
		t.Fatalf("%s", err)
	}
	t.context.SetStatusCode(resp.StatusCode)
	return resp
}

// RequireStatus ends the check if the response status is not the expected one. The start of
// the response body becomes the response preview so that the report shows what came back.
func (t *T) RequireStatus(resp *client.Response, expected int) {
	if resp.StatusCode == expected {
		return
	}
	if preview := bodyPreview(resp); preview != "" {
		t.SetResponsePreview(preview)
	}
	t.Fatalf("Expected %d, got %d", expected, resp.StatusCode)
}

// RequireJSON decodes the response body, ending the check if it is not valid JSON.
func (t *T) RequireJSON(resp *client.Response) ldvalue.Value {
	body, err := resp.JSON()
	if err != nil {
		if preview := bodyPreview(resp); preview != "" {
			t.SetResponsePreview(preview)
		}
		t.Fatalf("%s", err)
	}
	return body
}

func actionQuery(action string, params ...string) url.Values {
	q := url.Values{servicedef.ParamAction: {action}}
	for i := 0; i+1 < len(params); i += 2 {
		q.Set(params[i], params[i+1])
	}
	return q
}

func bodyPreview(resp *client.Response) string {
	return truncate(string(resp.Body), bodyPreviewLength)
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// valueText renders a JSON value for a preview: strings as-is, anything else as JSON.
func valueText(v ldvalue.Value) string {
	if v.IsString() {
		return v.StringValue()
	}
	return v.JSONString()
}

// firstValueText returns the text of the first of keys present in body, or fallback.
func firstValueText(body ldvalue.Value, fallback string, keys ...string) string {
	for _, k := range keys {
		if v, ok := client.FindField(body, k); ok {
			return valueText(v)
		}
	}
	return fallback
}

func describeMissing(keys ...string) string {
	if len(keys) == 1 {
		return fmt.Sprintf("response body has no %q field", keys[0])
	}
	return fmt.Sprintf("response body has none of the fields %q", keys)
}
