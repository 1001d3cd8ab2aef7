package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/recruitos/api-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type jsonReport struct {
	Suite       string        `json:"suite"`
	Environment string        `json:"environment"`
	StartedAt   *time.Time    `json:"startedAt,omitempty"`
	FinishedAt  *time.Time    `json:"finishedAt,omitempty"`
	DurationMS  float64       `json:"durationMs"`
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	PassRate    float64       `json:"passRate"`
	Results     []jsonOutcome `json:"results"`
}

type jsonOutcome struct {
	Name            string                   `json:"name"`
	Passed          bool                     `json:"passed"`
	DurationMS      float64                  `json:"durationMs"`
	StatusCode      ldvalue.OptionalInt      `json:"statusCode"`
	Error           ldvalue.OptionalString   `json:"error"`
	ResponsePreview ldvalue.OptionalString   `json:"responsePreview"`
	Details         map[string]ldvalue.Value `json:"details,omitempty"`
}

// JSON renders the suite as an indented JSON document. Optional fields that were never set
// appear as null.
func JSON(suite framework.Suite, envLabel string) ([]byte, error) {
	r := jsonReport{
		Suite:       suite.Name,
		Environment: envLabel,
		StartedAt:   optionalTime(suite.StartedAt),
		FinishedAt:  optionalTime(suite.FinishedAt),
		DurationMS:  suite.DurationMS(),
		Total:       suite.Total(),
		Passed:      suite.Passed(),
		Failed:      suite.Failed(),
		PassRate:    suite.PassRate(),
		Results:     make([]jsonOutcome, 0, len(suite.Results)),
	}
	for _, o := range suite.Results {
		r.Results = append(r.Results, jsonOutcome{
			Name:            o.Name,
			Passed:          o.Passed,
			DurationMS:      o.DurationMS(),
			StatusCode:      o.StatusCode,
			Error:           o.Error,
			ResponsePreview: o.ResponsePreview,
			Details:         o.Details,
		})
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json report: %w", err)
	}
	return b, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
