// Package apitests contains the API contract checks themselves and their supporting API.
//
// Test harness infrastructure that does not know about any particular endpoint, such as
// running test cases and aggregating their outcomes, is in the lower-level framework package.
package apitests
