// Package framework contains the low-level implementation of test harness infrastructure
// that is shared by the API and UI suites.
//
// The general model is:
//
// 1. The test harness knows a set of named targets (base URLs of the systems under test) and
// checks at startup that each of them is reachable.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Assertions from testify's assert and require packages can be
// used against it.
//
// 3. Each test has its own capturing debug logger; what it captured is handed to the
// TestLogger when the test finishes, so it can be shown only for failed tests if desired.
//
// The domain-specific code that knows what is being tested is responsible for building a
// domain-specific test API on top of the test context.
package framework
