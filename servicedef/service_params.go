// Package servicedef describes the API surface under test: paths, action names, header
// names, and request bodies.
package servicedef

const (
	BrightDataPath = "/api/brightdata"
	GitHubPath     = "/api/github"
)

const (
	HeaderBrightDataKey = "X-BrightData-Key"
	HeaderGitHubToken   = "X-GitHub-Token"
)

// Query parameter names.
const (
	ParamAction   = "action"
	ParamURL      = "url"
	ParamUsername = "username"
)

const (
	ActionHealth  = "health"
	ActionTrigger = "trigger"
	ActionScrape  = "scrape"

	ActionUser  = "user"
	ActionRepos = "repos"
	ActionFull  = "full"
)

// ScrapeTierDirect selects the direct-fetch variant of the scrape action.
const ScrapeTierDirect = "1"

// ScrapeParams is the request body for the scrape action.
type ScrapeParams struct {
	URL  string `json:"url"`
	Tier string `json:"tier,omitempty"`
}

// Keys that appear in response bodies.
const (
	KeyData         = "data"
	KeyError        = "error"
	KeyCode         = "code"
	KeyContent      = "content"
	KeyLogin        = "login"
	KeyName         = "name"
	KeyUser         = "user"
	KeyRepos        = "repos"
	KeyTotal        = "total"
	KeyLanguages    = "languages"
	KeyQualityScore = "qualityScore"
)
