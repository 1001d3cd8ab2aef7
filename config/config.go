// Package config resolves where the API under test lives and which credentials to send.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment labels. Custom is used whenever the base URL was given explicitly.
const (
	Local      = "local"
	Staging    = "staging"
	Production = "production"
	Custom     = "custom"
)

// Environment variables consulted by Resolve.
const (
	EnvBaseURL       = "RECRUITOS_API_URL"
	EnvStagingURL    = "STAGING_URL"
	EnvProductionURL = "PRODUCTION_URL"
	EnvBrightDataKey = "BRIGHTDATA_API_KEY"
	EnvGitHubToken   = "GITHUB_TOKEN"
)

// DefaultEnvFile is read for environment variables when Options.EnvFile is empty.
const DefaultEnvFile = ".env"

// Config is the resolved configuration for one run.
type Config struct {
	BaseURL     string
	Environment string

	// BrightDataKey is sent on BrightData requests. Empty means not set.
	BrightDataKey string

	// GitHubToken is sent on GitHub requests. Empty means not set.
	GitHubToken string
}

// Options holds the raw inputs to Resolve, normally taken from command-line flags.
type Options struct {
	// Environment selects an entry in the environments table. Empty means Local.
	Environment string

	// URL overrides the environments table entirely.
	URL string

	// ConfigFile is an optional YAML file whose environments table is merged over the
	// built-in one.
	ConfigFile string

	// EnvFile is a dotenv file whose variables are used when the process environment does
	// not define them. A missing file is not an error.
	EnvFile string

	BrightDataKey string
	GitHubToken   string

	// LookupEnv replaces os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

type fileConfig struct {
	Environments map[string]string `yaml:"environments"`
}

// Resolve computes the Config for a run. The base URL comes from Options.URL, then the
// RECRUITOS_API_URL variable, then the environments table. Credentials come from Options,
// then the environment.
func Resolve(opts Options) (Config, error) {
	getenv, err := envLookup(opts)
	if err != nil {
		return Config{}, err
	}

	environments := defaultEnvironments(getenv)
	if opts.ConfigFile != "" {
		if err := mergeConfigFile(environments, opts.ConfigFile); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	switch {
	case opts.URL != "":
		cfg.BaseURL, cfg.Environment = opts.URL, Custom
	case getenv(EnvBaseURL) != "":
		cfg.BaseURL, cfg.Environment = getenv(EnvBaseURL), Custom
	default:
		name := opts.Environment
		if name == "" {
			name = Local
		}
		baseURL, ok := environments[name]
		if !ok {
			return Config{}, fmt.Errorf("unknown environment %q (expected one of %s)",
				name, strings.Join(environmentNames(environments), ", "))
		}
		cfg.BaseURL, cfg.Environment = baseURL, name
	}
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return Config{}, err
	}

	cfg.BrightDataKey = firstNonEmpty(opts.BrightDataKey, getenv(EnvBrightDataKey))
	cfg.GitHubToken = firstNonEmpty(opts.GitHubToken, getenv(EnvGitHubToken))
	return cfg, nil
}

// envLookup returns a getter that prefers the process environment over the dotenv file,
// the same precedence godotenv.Load gives.
func envLookup(opts Options) (func(string) string, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	path := opts.EnvFile
	if path == "" {
		path = DefaultEnvFile
	}
	fileVars, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file %s: %w", path, err)
		}
		fileVars = nil
	}
	return func(name string) string {
		if value, ok := lookup(name); ok {
			return value
		}
		return fileVars[name]
	}, nil
}

func defaultEnvironments(getenv func(string) string) map[string]string {
	return map[string]string{
		Local:      "http://localhost:3000",
		Staging:    firstNonEmpty(getenv(EnvStagingURL), "https://staging.recruitos.app"),
		Production: firstNonEmpty(getenv(EnvProductionURL), "https://recruitos.app"),
	}
}

func mergeConfigFile(environments map[string]string, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("error parsing YAML config file %s: %w", path, err)
	}
	for name, baseURL := range fc.Environments {
		if name == Custom {
			return fmt.Errorf("config file %s: %q is reserved and cannot be an environment name", path, Custom)
		}
		environments[name] = baseURL
	}
	return nil
}

func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", baseURL)
	}
	return nil
}

func environmentNames(environments map[string]string) []string {
	names := make([]string, 0, len(environments))
	for name := range environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
