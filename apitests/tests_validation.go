package apitests

import (
	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/servicedef"
)

const (
	testLinkedInURL    = "https://www.linkedin.com/in/test-profile-12345/"
	testNonLinkedInURL = "https://google.com"
)

// DoTriggerMissingURLTest verifies that a trigger request without a URL is rejected with an
// error envelope.
func DoTriggerMissingURLTest(t *T) {
	resp := t.Post(servicedef.BrightDataPath, actionQuery(servicedef.ActionTrigger), nil, client.BrightData)
	t.RequireStatus(resp, 400)

	body := t.RequireJSON(resp)
	t.SetResponsePreview(truncate(body.JSONString(), bodyPreviewLength))
	if !client.HasKey(body, servicedef.KeyCode) && !client.HasKey(body, servicedef.KeyError) {
		t.Errorf("%s", describeMissing(servicedef.KeyCode, servicedef.KeyError))
	}
}

// DoTriggerInvalidURLTest verifies that a well-formed URL outside LinkedIn is rejected.
func DoTriggerInvalidURLTest(t *T) {
	resp := t.Post(servicedef.BrightDataPath,
		actionQuery(servicedef.ActionTrigger, servicedef.ParamURL, testNonLinkedInURL),
		nil, client.BrightData)

	if resp.StatusCode != 400 {
		t.SetResponsePreview(bodyPreview(resp))
		t.Fatalf("Should reject non-LinkedIn URLs (expected 400, got %d)", resp.StatusCode)
	}
	t.SetResponsePreview("Correctly rejected non-LinkedIn URL")
}

// DoAuthRequiredTest verifies that the trigger action refuses a request with no API key. It
// uses its own client with no credentials at all, regardless of what the harness was given.
func DoAuthRequiredTest(t *T) {
	anonymous := t.Client().WithoutCredentials()
	resp := t.RequireResponse(anonymous.Post(servicedef.BrightDataPath,
		actionQuery(servicedef.ActionTrigger, servicedef.ParamURL, testLinkedInURL),
		nil, client.BrightData))

	t.RequireStatus(resp, 401)
	t.SetResponsePreview("Correctly returns 401 without API key")
}
