// Package mockapi provides an in-process stand-in for the API under test. By default every
// route honors the contracts the checks expect; individual routes can be replaced to
// simulate a misbehaving deployment.
package mockapi

import (
	"net/http"
	"strings"

	"github.com/recruitos/api-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

// Route identifies a handler by path and action query parameter.
type Route struct {
	Path   string
	Action string
}

var (
	BrightDataHealth  = Route{servicedef.BrightDataPath, servicedef.ActionHealth}
	BrightDataTrigger = Route{servicedef.BrightDataPath, servicedef.ActionTrigger}
	BrightDataScrape  = Route{servicedef.BrightDataPath, servicedef.ActionScrape}
	GitHubUser        = Route{servicedef.GitHubPath, servicedef.ActionUser}
	GitHubRepos       = Route{servicedef.GitHubPath, servicedef.ActionRepos}
	GitHubFull        = Route{servicedef.GitHubPath, servicedef.ActionFull}
)

// JSON returns a handler that always responds with the given status and JSON body.
func JSON(status int, body string) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(status, headers, []byte(body))
}

// Status returns a handler that responds with the given status and no body.
func Status(status int) http.Handler {
	return httphelpers.HandlerWithStatus(status)
}

const fullProfileBody = `{"data":{"user":{"login":"octocat"},"repos":[{"name":"Hello-World"}],` +
	`"languages":{"Ruby":1},"qualityScore":87.5}}`

var invalidAction = JSON(400, `{"error":"Invalid action","code":"INVALID_ACTION"}`)

// Handler routes requests by path and action. Unknown actions on a known path get a 400
// error envelope; unknown paths get a 404.
type Handler struct {
	routes map[Route]http.Handler
}

// New returns a Handler whose routes all behave correctly, with the given routes replaced.
func New(overrides map[Route]http.Handler) *Handler {
	h := &Handler{routes: map[Route]http.Handler{
		BrightDataTrigger: http.HandlerFunc(serveTrigger),
		BrightDataScrape:  JSON(200, `{"success":true,"data":{"content":"<html>Example Domain</html>","tier":1}}`),
		GitHubUser:        JSON(200, `{"login":"octocat","name":"The Octocat","public_repos":8}`),
		GitHubRepos:       JSON(200, `{"data":{"repos":[{"name":"Hello-World"},{"name":"Spoon-Knife"}],"total":8}}`),
		GitHubFull:        JSON(200, fullProfileBody),
	}}
	for route, handler := range overrides {
		h.routes[route] = handler
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != servicedef.BrightDataPath && r.URL.Path != servicedef.GitHubPath {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	route := Route{Path: r.URL.Path, Action: r.URL.Query().Get(servicedef.ParamAction)}
	if handler, ok := h.routes[route]; ok {
		handler.ServeHTTP(w, r)
		return
	}
	invalidAction.ServeHTTP(w, r)
}

// serveTrigger validates the URL before checking the API key, so that validation can be
// probed by a harness that has no key.
func serveTrigger(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get(servicedef.ParamURL)
	switch {
	case target == "":
		JSON(400, `{"error":"url is required","code":"MISSING_URL"}`).ServeHTTP(w, r)
	case !strings.Contains(target, "linkedin.com/"):
		JSON(400, `{"error":"Only LinkedIn profile URLs are supported","code":"INVALID_URL"}`).ServeHTTP(w, r)
	case r.Header.Get(servicedef.HeaderBrightDataKey) == "":
		JSON(401, `{"error":"API key required","code":"UNAUTHORIZED"}`).ServeHTTP(w, r)
	default:
		JSON(200, `{"snapshot_id":"s_123"}`).ServeHTTP(w, r)
	}
}
