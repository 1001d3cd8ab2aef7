package apitests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/framework"
	"github.com/recruitos/api-contract-tests/internal/mockapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var testCredentials = client.Credentials{BrightDataKey: "bd-key", GitHubToken: "gh-token"}

func runCheckAgainst(c *client.Client, action func(*T)) framework.Outcome {
	outcome, _ := framework.RunTestCase(framework.TestCase{
		Name:   "check",
		Action: func(context *framework.Context) { action(newT(context, c)) },
	})
	return outcome
}

func runCheck(t *testing.T, action func(*T), overrides map[mockapi.Route]http.Handler) framework.Outcome {
	server := httptest.NewServer(mockapi.New(overrides))
	t.Cleanup(server.Close)
	return runCheckAgainst(client.New(server.URL, testCredentials, nil), action)
}

func assertPassed(t *testing.T, o framework.Outcome, status int, preview string) {
	t.Helper()
	assert.True(t, o.Passed, "unexpected failure: %s", o.Error.StringValue())
	assert.False(t, o.Error.IsDefined())
	assert.Equal(t, ldvalue.NewOptionalInt(status), o.StatusCode)
	if preview != "" {
		assert.Equal(t, preview, o.ResponsePreview.StringValue())
	}
}

func assertFailed(t *testing.T, o framework.Outcome, status int, errorContains string) {
	t.Helper()
	assert.False(t, o.Passed)
	assert.Contains(t, o.Error.StringValue(), errorContains)
	if status == 0 {
		assert.False(t, o.StatusCode.IsDefined())
	} else {
		assert.Equal(t, ldvalue.NewOptionalInt(status), o.StatusCode)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("400 means the API is responding", func(t *testing.T) {
		o := runCheck(t, DoHealthCheck, nil)
		assertPassed(t, o, 400, "API responding correctly (400 for invalid action)")
	})

	t.Run("200 is also accepted", func(t *testing.T) {
		o := runCheck(t, DoHealthCheck, map[mockapi.Route]http.Handler{
			mockapi.BrightDataHealth: mockapi.JSON(200, `{"status":"ok"}`),
		})
		assertPassed(t, o, 200, "")
		assert.False(t, o.ResponsePreview.IsDefined())
	})

	t.Run("other status", func(t *testing.T) {
		o := runCheck(t, DoHealthCheck, map[mockapi.Route]http.Handler{
			mockapi.BrightDataHealth: mockapi.Status(503),
		})
		assertFailed(t, o, 503, "Unexpected status: 503")
	})
}

func TestInvalidActionRejection(t *testing.T) {
	t.Run("error envelope", func(t *testing.T) {
		o := runCheck(t, DoInvalidActionTest, nil)
		assertPassed(t, o, 400, "Invalid action")
	})

	t.Run("400 without error key", func(t *testing.T) {
		o := runCheck(t, DoInvalidActionTest, map[mockapi.Route]http.Handler{
			{Path: "/api/brightdata", Action: invalidAction}: mockapi.JSON(400, `{"code":"BAD"}`),
		})
		assertFailed(t, o, 400, `"error"`)
		assert.Equal(t, `{"code":"BAD"}`, o.ResponsePreview.StringValue())
	})

	t.Run("400 with non-JSON body", func(t *testing.T) {
		o := runCheck(t, DoInvalidActionTest, map[mockapi.Route]http.Handler{
			{Path: "/api/brightdata", Action: invalidAction}: mockapi.Status(400),
		})
		assertFailed(t, o, 400, "not valid JSON")
	})

	t.Run("accepted", func(t *testing.T) {
		o := runCheck(t, DoInvalidActionTest, map[mockapi.Route]http.Handler{
			{Path: "/api/brightdata", Action: invalidAction}: mockapi.JSON(200, `{}`),
		})
		assertFailed(t, o, 200, "Expected 400, got 200")
	})
}

func TestTriggerMissingURL(t *testing.T) {
	t.Run("error key", func(t *testing.T) {
		o := runCheck(t, DoTriggerMissingURLTest, map[mockapi.Route]http.Handler{
			mockapi.BrightDataTrigger: mockapi.JSON(400, `{"error": "url is required"}`),
		})
		assertPassed(t, o, 400, `{"error":"url is required"}`)
	})

	t.Run("code key", func(t *testing.T) {
		o := runCheck(t, DoTriggerMissingURLTest, map[mockapi.Route]http.Handler{
			mockapi.BrightDataTrigger: mockapi.JSON(400, `{"code":"MISSING_URL"}`),
		})
		assertPassed(t, o, 400, "")
	})

	t.Run("no error indicator", func(t *testing.T) {
		o := runCheck(t, DoTriggerMissingURLTest, map[mockapi.Route]http.Handler{
			mockapi.BrightDataTrigger: mockapi.JSON(400, `{"message":"nope"}`),
		})
		assertFailed(t, o, 400, "none of the fields")
		assert.Equal(t, `{"message":"nope"}`, o.ResponsePreview.StringValue())
	})

	t.Run("wrong status", func(t *testing.T) {
		o := runCheck(t, DoTriggerMissingURLTest, map[mockapi.Route]http.Handler{
			mockapi.BrightDataTrigger: mockapi.JSON(500, `{"error":"internal"}`),
		})
		assertFailed(t, o, 500, "Expected 400, got 500")
		assert.Equal(t, `{"error":"internal"}`, o.ResponsePreview.StringValue())
	})
}

func TestTriggerInvalidURL(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		o := runCheck(t, DoTriggerInvalidURLTest, nil)
		assertPassed(t, o, 400, "Correctly rejected non-LinkedIn URL")
	})

	t.Run("accepted", func(t *testing.T) {
		o := runCheck(t, DoTriggerInvalidURLTest, map[mockapi.Route]http.Handler{
			mockapi.BrightDataTrigger: mockapi.JSON(200, `{"snapshot_id":"x"}`),
		})
		assertFailed(t, o, 200, "Should reject non-LinkedIn URLs")
	})
}

func TestAuthRequired(t *testing.T) {
	t.Run("401", func(t *testing.T) {
		o := runCheck(t, DoAuthRequiredTest, nil)
		assertPassed(t, o, 401, "Correctly returns 401 without API key")
	})

	t.Run("request carries no credentials even though the harness has them", func(t *testing.T) {
		var sawKey bool
		o := runCheck(t, DoAuthRequiredTest, map[mockapi.Route]http.Handler{
			mockapi.BrightDataTrigger: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				sawKey = r.Header.Get("X-BrightData-Key") != ""
				w.WriteHeader(401)
			}),
		})
		assert.True(t, o.Passed)
		assert.False(t, sawKey)
	})

	t.Run("200 instead of 401", func(t *testing.T) {
		o := runCheck(t, DoAuthRequiredTest, map[mockapi.Route]http.Handler{
			mockapi.BrightDataTrigger: mockapi.JSON(200, `{"snapshot_id":"x"}`),
		})
		assertFailed(t, o, 200, "Expected 401, got 200")
	})
}

func TestScrapeTier1(t *testing.T) {
	t.Run("content nested under data", func(t *testing.T) {
		o := runCheck(t, DoScrapeTier1Test, nil)
		assertPassed(t, o, 200, "Content length: 27 chars")
	})

	t.Run("content at top level", func(t *testing.T) {
		o := runCheck(t, DoScrapeTier1Test, map[mockapi.Route]http.Handler{
			mockapi.BrightDataScrape: mockapi.JSON(200, `{"content":"héllo"}`),
		})
		assertPassed(t, o, 200, "Content length: 5 chars")
	})

	t.Run("content nested too deeply", func(t *testing.T) {
		o := runCheck(t, DoScrapeTier1Test, map[mockapi.Route]http.Handler{
			mockapi.BrightDataScrape: mockapi.JSON(200, `{"data":{"data":{"content":"x"}}}`),
		})
		assertFailed(t, o, 200, `"content"`)
		assert.Equal(t, "Content length: 0 chars", o.ResponsePreview.StringValue())
	})

	t.Run("malformed body", func(t *testing.T) {
		o := runCheck(t, DoScrapeTier1Test, map[mockapi.Route]http.Handler{
			mockapi.BrightDataScrape: mockapi.JSON(200, `{"content":`),
		})
		assertFailed(t, o, 200, "not valid JSON")
	})

	t.Run("upstream failure", func(t *testing.T) {
		o := runCheck(t, DoScrapeTier1Test, map[mockapi.Route]http.Handler{
			mockapi.BrightDataScrape: mockapi.JSON(502, `{"error":"upstream"}`),
		})
		assertFailed(t, o, 502, "Expected 200, got 502")
	})
}

func TestGitHubUser(t *testing.T) {
	t.Run("login at top level", func(t *testing.T) {
		o := runCheck(t, DoGitHubUserTest, nil)
		assertPassed(t, o, 200, "User: octocat")
	})

	t.Run("login nested under data", func(t *testing.T) {
		o := runCheck(t, DoGitHubUserTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubUser: mockapi.JSON(200, `{"data":{"login":"octocat"}}`),
		})
		assertPassed(t, o, 200, "User: octocat")
	})

	t.Run("user key only", func(t *testing.T) {
		o := runCheck(t, DoGitHubUserTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubUser: mockapi.JSON(200, `{"user":{"name":"x"}}`),
		})
		assertPassed(t, o, 200, "User: unknown")
	})

	t.Run("no identifying keys", func(t *testing.T) {
		o := runCheck(t, DoGitHubUserTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubUser: mockapi.JSON(200, `{"name":"The Octocat"}`),
		})
		assertFailed(t, o, 200, "none of the fields")
		assert.Equal(t, "User: The Octocat", o.ResponsePreview.StringValue())
	})

	t.Run("not found", func(t *testing.T) {
		o := runCheck(t, DoGitHubUserTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubUser: mockapi.JSON(404, `{"error":"not found"}`),
		})
		assertFailed(t, o, 404, "Expected 200, got 404")
	})

	t.Run("sends GitHub token", func(t *testing.T) {
		var token, username string
		runCheck(t, DoGitHubUserTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubUser: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				token = r.Header.Get("X-GitHub-Token")
				username = r.URL.Query().Get("username")
				w.WriteHeader(200)
			}),
		})
		assert.Equal(t, "gh-token", token)
		assert.Equal(t, "octocat", username)
	})
}

func TestGitHubRepos(t *testing.T) {
	t.Run("total", func(t *testing.T) {
		o := runCheck(t, DoGitHubReposTest, nil)
		assertPassed(t, o, 200, "Repos: 8")
	})

	t.Run("repos list only", func(t *testing.T) {
		o := runCheck(t, DoGitHubReposTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubRepos: mockapi.JSON(200, `{"repos":[1,2,3]}`),
		})
		assertPassed(t, o, 200, "Repos: 3")
	})

	t.Run("count nested too deeply", func(t *testing.T) {
		o := runCheck(t, DoGitHubReposTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubRepos: mockapi.JSON(200, `{"data":{"data":{"total":42}}}`),
		})
		assertFailed(t, o, 200, "none of the fields")
		assert.Equal(t, "Repos: 0", o.ResponsePreview.StringValue())
	})

	t.Run("neither", func(t *testing.T) {
		o := runCheck(t, DoGitHubReposTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubRepos: mockapi.JSON(200, `{"data":{}}`),
		})
		assertFailed(t, o, 200, "none of the fields")
	})
}

func TestGitHubFullProfile(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		o := runCheck(t, DoGitHubFullProfileTest, nil)
		assertPassed(t, o, 200, "Quality score: 87.5")
		assert.Equal(t, map[string]ldvalue.Value{
			"hasUser":      ldvalue.Bool(true),
			"hasRepos":     ldvalue.Bool(true),
			"hasLanguages": ldvalue.Bool(true),
		}, o.Details)
	})

	t.Run("languages are optional", func(t *testing.T) {
		o := runCheck(t, DoGitHubFullProfileTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubFull: mockapi.JSON(200, `{"user":{},"repos":[]}`),
		})
		assertPassed(t, o, 200, "Quality score: N/A")
		assert.Equal(t, ldvalue.Bool(false), o.Details["hasLanguages"])
	})

	t.Run("quality score nested too deeply", func(t *testing.T) {
		o := runCheck(t, DoGitHubFullProfileTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubFull: mockapi.JSON(200, `{"data":{"user":{},"repos":[],"data":{"qualityScore":99}}}`),
		})
		assertPassed(t, o, 200, "Quality score: N/A")
	})

	t.Run("missing repos", func(t *testing.T) {
		o := runCheck(t, DoGitHubFullProfileTest, map[mockapi.Route]http.Handler{
			mockapi.GitHubFull: mockapi.JSON(200, `{"data":{"user":{},"languages":{}}}`),
		})
		assertFailed(t, o, 200, `response body has no "repos" field`)
		assert.Equal(t, ldvalue.Bool(false), o.Details["hasRepos"])
	})
}

func TestEveryCheckSurvivesTransportFailure(t *testing.T) {
	server := httptest.NewServer(mockapi.New(nil))
	server.Close()
	c := client.New(server.URL, testCredentials, nil)

	for _, p := range []Profile{Full, Smoke} {
		for _, ch := range p.checks() {
			o := runCheckAgainst(c, ch.action)
			assert.False(t, o.Passed, ch.name)
			assert.False(t, o.StatusCode.IsDefined(), ch.name)
			require.True(t, o.Error.IsDefined(), ch.name)
			assert.NotEmpty(t, o.Error.StringValue(), ch.name)
			assert.NotContains(t, o.Error.StringValue(), "unexpected panic", ch.name)
		}
	}
}
