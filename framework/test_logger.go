package framework

// TestLogger receives progress notifications while a suite is running. Calls for one test
// case are never interleaved with calls for another.
type TestLogger interface {
	TestStarted(name string)
	TestFinished(outcome Outcome, debugOutput CapturedOutput)
	TestSkipped(name string, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(string) {}
func (n nullTestLogger) TestFinished(Outcome, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(string, string) {}
