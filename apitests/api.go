package apitests

import (
	"net/http"
	"strings"
	"time"

	"github.com/sogeti/site-contract-tests/framework"
	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Config holds the settings of the API suite.
type Config struct {
	// BaseURL is the postal-code service. A trailing slash is ignored.
	BaseURL string

	// LatencyBudget is the time within which every response must have arrived.
	LatencyBudget time.Duration

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

type environment struct {
	config Config
	client *http.Client
}

// T represents a test or subtest in the API suite.
//
// It can be passed to the assert and require packages as if it were a *testing.T. It also has
// methods for making requests to the postal-code service that fail the test immediately when
// the request itself cannot be made.
type T struct {
	context *framework.Context
	env     *environment
}

// DoAllTests runs the whole API suite as subtests of the given context.
func DoAllTests(c *framework.Context, config Config) {
	if config.BaseURL == "" {
		config.BaseURL = sitedef.DefaultAPIBaseURL
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	if config.LatencyBudget <= 0 {
		config.LatencyBudget = sitedef.DefaultLatencyBudget
	}
	env := &environment{config: config, client: config.HTTPClient}
	if env.client == nil {
		env.client = http.DefaultClient
	}
	t := &T{context: c, env: env}

	t.Run("stuttgart", DoStuttgartTest)
	t.RunGroup("multiple places", DoMultiplePlacesTests)
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// RunGroup runs a subtest that only contains other subtests.
func (t *T) RunGroup(name string, action func(*T)) {
	t.context.RunGroup(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// RequireGet requests a path of the postal-code service. The test fails and immediately exits
// if the request cannot be made or the body cannot be read.
func (t *T) RequireGet(path string) *Response {
	url := t.env.config.BaseURL + path
	resp, err := get(t.env.client, url)
	require.NoError(t, err)
	t.Debug("The request to visit %s has completed with status %d", url, resp.StatusCode)
	return resp
}

// RequireGoodJSONResponse checks the status, content type and latency of a response, then
// parses its body. It fails and immediately exits if the status is not 200 or the body is not
// valid JSON.
func (t *T) RequireGoodJSONResponse(resp *Response) {
	require.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status for %s", resp.URL)
	assert.True(t, resp.IsJSON(), "content type %q of %s is not JSON", resp.ContentType, resp.URL)
	assert.Less(t, resp.Elapsed.Milliseconds(), t.env.config.LatencyBudget.Milliseconds(),
		"response from %s took %s; budget is %s", resp.URL, resp.Elapsed, t.env.config.LatencyBudget)
	require.NoError(t, resp.ParseBody(), "body of %s", resp.URL)

	t.Debug("The content type is categorized as %q", resp.ContentType)
	t.Debug("The response has taken %d milliseconds", resp.Elapsed.Milliseconds())
}
