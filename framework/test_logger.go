package framework

// TestLogger receives notifications about the progress of a test run. The console implementation
// lives in the main package; tests use their own recording implementation.
type TestLogger interface {
	TestStarted(id TestID)
	// TestError is called once for every assertion failure, as it happens.
	TestError(id TestID, err error)
	// TestFinished receives everything the test wrote to its debug logger.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}
