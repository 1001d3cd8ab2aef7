package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/recruitos/api-contract-tests/framework"

	"github.com/fatih/color"
)

var summaryRule = strings.Repeat("=", 50)

// PrintSummary writes a short summary box for the suite. Counts are colored only when the
// color package has not been disabled.
func PrintSummary(w io.Writer, suite framework.Suite) {
	passed := color.New(color.FgGreen)
	failed := color.New(color.FgRed)
	if suite.Failed() == 0 {
		failed = passed
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintf(w, "📊 Test Results: %s\n", suite.Name)
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintf(w, "  Total:  %d\n", suite.Total())
	fmt.Fprintf(w, "  Passed: %s ✅\n", passed.Sprint(suite.Passed()))
	fmt.Fprintf(w, "  Failed: %s ❌\n", failed.Sprint(suite.Failed()))
	fmt.Fprintf(w, "  Rate:   %.1f%%\n", suite.PassRate())
	fmt.Fprintf(w, "  Time:   %.0fms\n", suite.DurationMS())
	fmt.Fprintln(w, summaryRule)
}
