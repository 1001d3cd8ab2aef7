package apitests

import (
	"fmt"

	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/framework"
)

// Profile selects which list of checks a run executes.
type Profile int

const (
	// Full runs every check: connectivity and negative checks first, then validation, then
	// data fetches.
	Full Profile = iota
	// Smoke runs a short subset for quick verification.
	Smoke
)

func (p Profile) String() string {
	switch p {
	case Full:
		return "full"
	case Smoke:
		return "smoke"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// SuiteName is the name given to a Suite produced with this profile.
func (p Profile) SuiteName() string {
	if p == Smoke {
		return "Smoke Tests"
	}
	return "Full API Tests"
}

type check struct {
	name   string
	action func(*T)
}

var (
	healthCheck        = check{"Health Check", DoHealthCheck}
	invalidActionCheck = check{"Invalid Action Rejection", DoInvalidActionTest}
	triggerMissingURL  = check{"Trigger Validation (missing URL)", DoTriggerMissingURLTest}
	triggerInvalidURL  = check{"Trigger Validation (invalid URL)", DoTriggerInvalidURLTest}
	authRequired       = check{"Auth Required (trigger)", DoAuthRequiredTest}
	scrapeTier1        = check{"Scrape Tier 1 (example.com)", DoScrapeTier1Test}
	githubUser         = check{"GitHub User (octocat)", DoGitHubUserTest}
	githubRepos        = check{"GitHub Repos (octocat)", DoGitHubReposTest}
	githubFullProfile  = check{"GitHub Full Profile (octocat)", DoGitHubFullProfileTest}
)

func (p Profile) checks() []check {
	if p == Smoke {
		return []check{
			healthCheck,
			invalidActionCheck,
			scrapeTier1,
			githubUser,
		}
	}
	return []check{
		healthCheck,
		invalidActionCheck,
		triggerMissingURL,
		triggerInvalidURL,
		authRequired,
		scrapeTier1,
		githubUser,
		githubRepos,
		githubFullProfile,
	}
}

// TestCases returns the profile's checks, in order, bound to the given client.
func TestCases(p Profile, c *client.Client) []framework.TestCase {
	var ret []framework.TestCase
	for _, ch := range p.checks() {
		action := ch.action
		ret = append(ret, framework.TestCase{
			Name: ch.name,
			Action: func(context *framework.Context) {
				action(newT(context, c))
			},
		})
	}
	return ret
}

// RunTestSuite runs the profile's checks against one client and returns the completed Suite.
func RunTestSuite(c *client.Client, p Profile, opts framework.RunOptions) framework.Suite {
	return framework.Run(p.SuiteName(), TestCases(p, c), opts)
}
