package apitests

import (
	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/servicedef"
)

const invalidAction = "invalid_action"

// DoHealthCheck verifies that the API is reachable. The health action is not one the API
// implements, so a 400 is as good a sign of life as a 200.
func DoHealthCheck(t *T) {
	resp := t.Get(servicedef.BrightDataPath, actionQuery(servicedef.ActionHealth), client.BrightData)

	switch resp.StatusCode {
	case 400:
		t.SetResponsePreview("API responding correctly (400 for invalid action)")
	case 200:
	default:
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}
}

// DoInvalidActionTest verifies that an unknown action is rejected with an error message.
func DoInvalidActionTest(t *T) {
	resp := t.Get(servicedef.BrightDataPath, actionQuery(invalidAction), client.BrightData)
	t.RequireStatus(resp, 400)

	body := t.RequireJSON(resp)
	if !client.HasKey(body, servicedef.KeyError) {
		t.SetResponsePreview(bodyPreview(resp))
		t.Fatalf("%s", describeMissing(servicedef.KeyError))
	}
	t.SetResponsePreview(truncate(valueText(body.GetByKey(servicedef.KeyError)), 100))
}
