// Package framework contains the low-level implementation of the contract test harness that
// is not specific to any one API surface.
//
// The general model is:
//
// 1. A test case is a named action that receives a *Context. The action performs one
// interaction with the service under test and records what it observed (status code, a
// response preview, auxiliary details) on the Context.
//
// 2. The Context is similar to Go's *testing.T: failures are recorded with Errorf, and
// FailNow stops the action immediately. Nothing the action does can escape RunTestCase; a
// panic of any kind is turned into a failed Outcome.
//
// 3. Run executes an ordered list of test cases and collects their Outcomes into a Suite,
// which preserves execution order and derives the pass/fail counters.
//
// The domain-specific code that knows which endpoints are being probed and what their
// contracts are lives in the apitests package.
package framework
