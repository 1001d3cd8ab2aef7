package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/recruitos/api-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(name string) {
	fmt.Fprintf(c.Out, "  Testing: %s... ", name)
}

func (c *ConsoleTestLogger) TestFinished(outcome framework.Outcome, debugOutput framework.CapturedOutput) {
	failed := !outcome.Passed
	if failed {
		fmt.Fprintf(c.Out, "%s (%.0fms)\n", failColor.Sprint("❌"), outcome.DurationMS())
		for _, line := range strings.Split(outcome.Error.StringValue(), "\n") {
			fmt.Fprintf(c.Out, "    Error: %s\n", line)
		}
	} else {
		fmt.Fprintf(c.Out, "%s (%.0fms)\n", passColor.Sprint("✅"), outcome.DurationMS())
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(name string, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  SKIPPED: %s\n", name)
	} else {
		fmt.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", name, reason)
	}
}
