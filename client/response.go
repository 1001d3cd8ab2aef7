package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/recruitos/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the response body. Unlike ldvalue.Parse, it reports malformed JSON as an
// error rather than returning a null value.
func (r *Response) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), fmt.Errorf("response body is not valid JSON: %w", err)
	}
	return v, nil
}

// FindField looks up key at the top level of an object body, then under its "data" object.
// No deeper levels are searched.
func FindField(body ldvalue.Value, key string) (ldvalue.Value, bool) {
	if v, ok := Lookup(body, key); ok {
		return v, true
	}
	if data, ok := Lookup(body, servicedef.KeyData); ok {
		return Lookup(data, key)
	}
	return ldvalue.Null(), false
}

// HasField reports whether FindField would find key.
func HasField(body ldvalue.Value, key string) bool {
	_, ok := FindField(body, key)
	return ok
}

// Envelope returns the "data" object of a body if there is one, or else the body itself.
func Envelope(body ldvalue.Value) ldvalue.Value {
	if data, ok := Lookup(body, servicedef.KeyData); ok && data.Type() == ldvalue.ObjectType {
		return data
	}
	return body
}

// HasKey reports whether body is an object with the given top-level key.
func HasKey(body ldvalue.Value, key string) bool {
	_, ok := Lookup(body, key)
	return ok
}

// lookupKey distinguishes a key that is present with a null value from one that is absent,
// which GetByKey does not.
func Lookup(body ldvalue.Value, key string) (ldvalue.Value, bool) {
	if body.Type() != ldvalue.ObjectType {
		return ldvalue.Null(), false
	}
	for _, k := range body.Keys() {
		if k == key {
			return body.GetByKey(key), true
		}
	}
	return ldvalue.Null(), false
}
