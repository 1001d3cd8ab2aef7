package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/recruitos/api-contract-tests/framework"
)

const (
	notesLength  = 50
	notAvailable = "N/A"
)

// Markdown renders the suite as a markdown report. The output depends only on the suite and
// the environment label.
func Markdown(suite framework.Suite, envLabel string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# API Test Report\n\n")
	fmt.Fprintf(&b, "**Environment:** %s\n", envLabel)
	fmt.Fprintf(&b, "**Date:** %s\n", formatTime(suite.StartedAt))
	fmt.Fprintf(&b, "**Duration:** %.0fms\n\n", suite.DurationMS())

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n")
	fmt.Fprintf(&b, "|--------|-------|\n")
	fmt.Fprintf(&b, "| Total Tests | %d |\n", suite.Total())
	fmt.Fprintf(&b, "| Passed | %d ✅ |\n", suite.Passed())
	fmt.Fprintf(&b, "| Failed | %d ❌ |\n", suite.Failed())
	fmt.Fprintf(&b, "| Pass Rate | %.1f%% |\n\n", suite.PassRate())

	fmt.Fprintf(&b, "## Results\n\n")
	fmt.Fprintf(&b, "| Test | Status | Duration | Notes |\n")
	fmt.Fprintf(&b, "|------|--------|----------|-------|\n")
	for _, o := range suite.Results {
		fmt.Fprintf(&b, "| %s | %s | %.0fms | %s |\n",
			tableCell(o.Name), statusText(o), o.DurationMS(), tableCell(truncate(notes(o), notesLength)))
	}

	if failures := suite.Failures(); len(failures) > 0 {
		fmt.Fprintf(&b, "\n## Failed Tests Details\n\n")
		for _, o := range failures {
			fmt.Fprintf(&b, "### %s\n\n", o.Name)
			fmt.Fprintf(&b, "- **Status Code:** %s\n", statusCodeText(o))
			fmt.Fprintf(&b, "- **Error:** %s\n", o.Error.OrElse("Unknown"))
			fmt.Fprintf(&b, "- **Response:** %s\n\n", o.ResponsePreview.OrElse(notAvailable))
		}
	}

	return b.String()
}

func statusText(o framework.Outcome) string {
	if o.Passed {
		return "✅ Pass"
	}
	return "❌ Fail"
}

func statusCodeText(o framework.Outcome) string {
	if o.StatusCode.IsDefined() {
		return fmt.Sprint(o.StatusCode.IntValue())
	}
	return notAvailable
}

func notes(o framework.Outcome) string {
	if o.Error.IsDefined() {
		return o.Error.StringValue()
	}
	if o.ResponsePreview.IsDefined() {
		return o.ResponsePreview.StringValue()
	}
	return "-"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.Format(time.RFC3339)
}

// tableCell keeps a value inside its markdown table column.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
