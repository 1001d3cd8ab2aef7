package apitests

import (
	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// GitHub's mascot account always exists.
const testGitHubUsername = "octocat"

func requireGitHubBody(t *T, action string) ldvalue.Value {
	resp := t.Get(servicedef.GitHubPath,
		actionQuery(action, servicedef.ParamUsername, testGitHubUsername),
		client.GitHub)
	t.RequireStatus(resp, 200)
	return t.RequireJSON(resp)
}

// DoGitHubUserTest verifies that the user action returns an identifiable account.
func DoGitHubUserTest(t *T) {
	body := requireGitHubBody(t, servicedef.ActionUser)

	t.SetResponsePreview("User: " + firstValueText(body, "unknown", servicedef.KeyLogin, servicedef.KeyName))
	if !client.HasField(body, servicedef.KeyLogin) && !client.HasKey(body, servicedef.KeyUser) {
		t.Errorf("%s", describeMissing(servicedef.KeyLogin, servicedef.KeyUser))
	}
}

// DoGitHubReposTest verifies that the repos action returns a repository list or count.
func DoGitHubReposTest(t *T) {
	body := requireGitHubBody(t, servicedef.ActionRepos)
	repoData := client.Envelope(body)

	count := "0"
	if total, ok := client.Lookup(repoData, servicedef.KeyTotal); ok {
		count = valueText(total)
	} else if repos, ok := client.Lookup(repoData, servicedef.KeyRepos); ok {
		count = valueText(ldvalue.Int(repos.Count()))
	}
	t.SetResponsePreview("Repos: " + count)

	if !client.HasKey(repoData, servicedef.KeyRepos) && !client.HasKey(repoData, servicedef.KeyTotal) {
		t.Errorf("%s", describeMissing(servicedef.KeyRepos, servicedef.KeyTotal))
	}
}

// DoGitHubFullProfileTest verifies that the full action returns both the user and their
// repositories. Languages are recorded but not required.
func DoGitHubFullProfileTest(t *T) {
	body := requireGitHubBody(t, servicedef.ActionFull)
	profile := client.Envelope(body)

	hasUser := client.HasKey(profile, servicedef.KeyUser)
	hasRepos := client.HasKey(profile, servicedef.KeyRepos)
	hasLanguages := client.HasKey(profile, servicedef.KeyLanguages)
	t.SetDetail("hasUser", ldvalue.Bool(hasUser))
	t.SetDetail("hasRepos", ldvalue.Bool(hasRepos))
	t.SetDetail("hasLanguages", ldvalue.Bool(hasLanguages))

	score := "N/A"
	if v, ok := client.Lookup(profile, servicedef.KeyQualityScore); ok {
		score = valueText(v)
	}
	t.SetResponsePreview("Quality score: " + score)

	if !hasUser {
		t.Errorf("%s", describeMissing(servicedef.KeyUser))
	}
	if !hasRepos {
		t.Errorf("%s", describeMissing(servicedef.KeyRepos))
	}
}
