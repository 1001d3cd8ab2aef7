package main

import (
	"regexp"
	"strings"

	"github.com/recruitos/api-contract-tests/config"
	"github.com/recruitos/api-contract-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/spf13/pflag"
)

const commandName = "api-contract-tests"

type commandParams struct {
	environment    string
	baseURL        string
	smokeOnly      bool
	reportPath     string
	jsonReportPath string
	brightDataKey  string
	gitHubToken    string
	configFile     string
	filters        framework.RegexFilters
	parallelism    int
	debug          bool
	debugAll       bool
}

func (c *commandParams) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.environment, "env", config.Local, "environment to test against (local, staging, production)")
	fs.StringVar(&c.baseURL, "url", "", "custom API base URL (overrides --env)")
	fs.BoolVar(&c.smokeOnly, "smoke-only", false, "run only smoke tests (quick verification)")
	fs.StringVar(&c.reportPath, "report", "", "output file for markdown report")
	fs.StringVar(&c.jsonReportPath, "json-report", "", "output file for JSON report")
	fs.StringVar(&c.brightDataKey, "brightdata-key", "", "BrightData API key (or set "+config.EnvBrightDataKey+")")
	fs.StringVar(&c.gitHubToken, "github-token", "", "GitHub API token (or set "+config.EnvGitHubToken+")")
	fs.StringVar(&c.configFile, "config", "", "YAML file with additional environments")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.IntVar(&c.parallelism, "parallel", 1, "maximum number of tests to run at once")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
}

func (c *commandParams) configOptions() config.Options {
	return config.Options{
		Environment:   c.environment,
		URL:           c.baseURL,
		ConfigFile:    c.configFile,
		BrightDataKey: c.brightDataKey,
		GitHubToken:   c.gitHubToken,
	}
}

// rerunCommand builds a command line that runs only the named tests against the same API.
// Credentials are never included.
func (c *commandParams) rerunCommand(cfg config.Config, names []string) string {
	var b commandBuilder
	b.add(commandName, "--url", cfg.BaseURL)
	if c.configFile != "" {
		b.add("--config", c.configFile)
	}
	if c.smokeOnly {
		b.add("--smoke-only")
	}
	for _, name := range names {
		b.add("--run", "^"+regexp.QuoteMeta(name)+"$")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
