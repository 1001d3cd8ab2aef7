package apitests

import (
	"fmt"
	"unicode/utf8"

	"github.com/recruitos/api-contract-tests/client"
	"github.com/recruitos/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const testScrapeURL = "https://example.com"

// DoScrapeTier1Test fetches a public page through the direct-fetch tier and verifies that
// some content came back.
func DoScrapeTier1Test(t *T) {
	params := servicedef.ScrapeParams{URL: testScrapeURL, Tier: servicedef.ScrapeTierDirect}
	resp := t.Post(servicedef.BrightDataPath, actionQuery(servicedef.ActionScrape), params, client.BrightData)
	t.RequireStatus(resp, 200)

	body := t.RequireJSON(resp)
	content, ok := client.FindField(body, servicedef.KeyContent)
	t.SetResponsePreview(fmt.Sprintf("Content length: %d chars", contentLength(content)))
	if !ok {
		t.Errorf("%s", describeMissing(servicedef.KeyContent))
	}
}

func contentLength(v ldvalue.Value) int {
	switch v.Type() {
	case ldvalue.StringType:
		return utf8.RuneCountInString(v.StringValue())
	case ldvalue.ArrayType, ldvalue.ObjectType:
		return v.Count()
	default:
		return 0
	}
}
