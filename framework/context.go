package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the framework's equivalent of *testing.T. It implements the TestingT interfaces of
// the testify assert and require packages, so those can be used directly inside a test.
type Context struct {
	env         *environment
	id          TestID
	isGroup     bool
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	defers      []func()
}

// Run executes a root-level action that will normally call Context.Run for each test, and
// returns the accumulated results.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if len(c.id.Path) == 0 {
			return // the root context is not a test
		}
		if c.isGroup && !c.failed {
			return // a group is only reported if something outside its subtests failed
		}
		result := TestResult{TestID: c.id, Errors: c.errors}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()
	defer c.runDeferred()

	action(c)
}

func (c *Context) runDeferred() {
	for i := len(c.defers) - 1; i >= 0; i-- {
		c.defers[i]()
	}
	c.defers = nil
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest, equivalent to the Run method of testing.T. The subtest is skipped without
// being started if the filter excludes its ID.
func (c *Context) Run(name string, action func(*Context)) {
	c.runSubtest(name, false, action)
}

// RunGroup is like Run, but for a subtest whose only purpose is to run other subtests. Filters
// let a group through if any of its subtests might be selected.
func (c *Context) RunGroup(name string, action func(*Context)) {
	c.runSubtest(name, true, action)
}

func (c *Context) runSubtest(name string, isGroup bool, action func(*Context)) {
	id := c.id.Plus(name)

	if c.env.filter != nil && !c.env.filter(id, isGroup) {
		c.env.results.Skipped = append(c.env.results.Skipped, TestResult{TestID: id, Skipped: true})
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c.env.testLogger.TestStarted(id)
	c1 := &Context{
		id:      id,
		isGroup: isGroup,
		env:     c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.results.Skipped = append(c.env.results.Skipped, TestResult{TestID: id, Skipped: true})
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Defer schedules a function to be called when the test ends, whether it passed or not.
// Deferred functions run in reverse order of registration.
func (c *Context) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
