package main

import (
	"fmt"
	"io"
	"os"

	"github.com/recruitos/api-contract-tests/apitests"
	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/config"
	"github.com/recruitos/api-contract-tests/framework"
	"github.com/recruitos/api-contract-tests/report"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status: 0 if every test passed,
// otherwise 1.
func run(args []string, stdout, stderr io.Writer) int {
	var params commandParams
	exitCode := 0

	cmd := &cobra.Command{
		Use:           commandName,
		Short:         "Run API contract tests against a RecruitOS deployment",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ok, err := runTests(&params, stdout)
			if err == nil && !ok {
				exitCode = 1
			}
			return err
		},
	}
	params.addFlags(cmd.Flags())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return exitCode
}

// runTests runs the selected profile and writes any requested reports. It returns an error
// only for problems that prevent a complete run from being reported.
func runTests(params *commandParams, out io.Writer) (bool, error) {
	cfg, err := config.Resolve(params.configOptions())
	if err != nil {
		return false, err
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.NewConsoleLogger(out, color.NoColor)
	}
	mainDebugLogger.Printf("resolved environment %q with base URL %s", cfg.Environment, cfg.BaseURL)

	printBanner(out, cfg)
	if lines := params.filters.Describe(); len(lines) > 0 {
		fmt.Fprintln(out)
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}

	profile := apitests.Full
	if params.smokeOnly {
		profile = apitests.Smoke
	}
	fmt.Fprintf(out, "\nRunning %s...\n\n", profile.SuiteName())

	c := client.New(cfg.BaseURL, client.Credentials{
		BrightDataKey: cfg.BrightDataKey,
		GitHubToken:   cfg.GitHubToken,
	}, mainDebugLogger)
	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	mainDebugLogger.Printf("starting %s with parallelism %d", profile.SuiteName(), params.parallelism)
	suite := apitests.RunTestSuite(c, profile, framework.RunOptions{
		Filter:      params.filters.AsFilter,
		TestLogger:  testLogger,
		Parallelism: params.parallelism,
	})
	mainDebugLogger.Printf("finished %s: %d passed, %d failed in %s",
		suite.Name, suite.Passed(), suite.Failed(), suite.FinishedAt.Sub(suite.StartedAt))

	report.PrintSummary(out, suite)

	if failures := suite.Failures(); len(failures) > 0 {
		var names []string
		for _, o := range failures {
			names = append(names, o.Name)
		}
		fmt.Fprintf(out, "\nTo rerun the failed tests:\n  %s\n", params.rerunCommand(cfg, names))
	}

	if params.reportPath != "" {
		if err := report.WriteFile(params.reportPath, []byte(report.Markdown(suite, cfg.Environment))); err != nil {
			return false, err
		}
		mainDebugLogger.Printf("wrote markdown report to %s", params.reportPath)
		fmt.Fprintf(out, "\n📝 Report saved to: %s\n", params.reportPath)
	}
	if params.jsonReportPath != "" {
		data, err := report.JSON(suite, cfg.Environment)
		if err != nil {
			return false, err
		}
		if err := report.WriteFile(params.jsonReportPath, data); err != nil {
			return false, err
		}
		mainDebugLogger.Printf("wrote JSON report to %s", params.jsonReportPath)
		fmt.Fprintf(out, "\n📝 JSON report saved to: %s\n", params.jsonReportPath)
	}

	return suite.OK(), nil
}

func printBanner(out io.Writer, cfg config.Config) {
	brightData := "✅ Set"
	if cfg.BrightDataKey == "" {
		brightData = "❌ Not set"
	}
	gitHub := "✅ Set"
	if cfg.GitHubToken == "" {
		gitHub = "⚠️  Not set (limited rate)"
	}

	fmt.Fprintf(out, "\n🚀 RecruitOS API Tester\n")
	fmt.Fprintf(out, "   Environment: %s\n", cfg.Environment)
	fmt.Fprintf(out, "   Base URL: %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "   BrightData Key: %s\n", brightData)
	fmt.Fprintf(out, "   GitHub Token: %s\n", gitHub)
}
