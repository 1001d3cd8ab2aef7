package framework

import (
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Outcome is the result of running one test case. It is never modified after RunTestCase
// returns it.
type Outcome struct {
	Name            string
	Passed          bool
	Duration        time.Duration
	StatusCode      ldvalue.OptionalInt    // defined only if a response was received
	Error           ldvalue.OptionalString // defined iff Passed is false
	ResponsePreview ldvalue.OptionalString
	Details         map[string]ldvalue.Value
}

// DurationMS returns the duration in fractional milliseconds.
func (o Outcome) DurationMS() float64 {
	return float64(o.Duration) / float64(time.Millisecond)
}

// Suite is an ordered collection of Outcomes for one run. Results are kept in execution
// order; the counters are always derived from them.
type Suite struct {
	Name       string
	Results    []Outcome
	StartedAt  time.Time
	FinishedAt time.Time
}

func NewSuite(name string) *Suite {
	return &Suite{Name: name}
}

func (s *Suite) Append(o Outcome) {
	s.Results = append(s.Results, o)
}

func (s Suite) Total() int {
	return len(s.Results)
}

func (s Suite) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Passed {
			n++
		}
	}
	return n
}

func (s Suite) Failed() int {
	return s.Total() - s.Passed()
}

// Duration is the sum of the individual test durations, not the wall-clock span of the run.
func (s Suite) Duration() time.Duration {
	var d time.Duration
	for _, r := range s.Results {
		d += r.Duration
	}
	return d
}

func (s Suite) DurationMS() float64 {
	return float64(s.Duration()) / float64(time.Millisecond)
}

// PassRate returns the percentage of passing tests, or zero for an empty suite.
func (s Suite) PassRate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Passed()) / float64(s.Total()) * 100
}

func (s Suite) Failures() []Outcome {
	var ret []Outcome
	for _, r := range s.Results {
		if !r.Passed {
			ret = append(ret, r)
		}
	}
	return ret
}

func (s Suite) OK() bool {
	return s.Failed() == 0
}
