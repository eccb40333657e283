package apitests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sogeti/site-contract-tests/framework"
	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	PlaceName string `json:"place name"`
	PostCode  string `json:"post code"`
}

type lookupResult struct {
	Country string  `json:"country"`
	State   string  `json:"state"`
	Places  []place `json:"places"`
}

func stuttgartHandler() http.Handler {
	return httphelpers.HandlerWithJSONResponse(lookupResult{
		Country: "Germany",
		State:   "Baden-Württemberg",
		Places: []place{
			{PlaceName: "Stuttgart Mitte", PostCode: "70173"},
			{PlaceName: "Stuttgart Degerloch", PostCode: "70597"},
		},
	}, nil)
}

func placeHandler(name string) http.Handler {
	return httphelpers.HandlerWithJSONResponse(lookupResult{Places: []place{{PlaceName: name}}}, nil)
}

// mockPostalService answers the Stuttgart lookup and every known place case, with overrides.
func mockPostalService(overrides map[string]http.Handler) http.Handler {
	handlers := map[string]http.Handler{sitedef.StuttgartPath: stuttgartHandler()}
	for _, pc := range sitedef.PlaceCases {
		handlers[pc.Path()] = placeHandler(pc.PlaceName)
	}
	for path, h := range overrides {
		handlers[path] = h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
}

func runSuite(t *testing.T, handler http.Handler, config Config) framework.Results {
	var results framework.Results
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		config.BaseURL = server.URL
		results = framework.Run(nil, nil, func(c *framework.Context) {
			DoAllTests(c, config)
		})
	})
	return results
}

func failedPaths(results framework.Results) []string {
	var ret []string
	for _, id := range results.FailedIDs() {
		ret = append(ret, id.String())
	}
	return ret
}

func TestSuitePassesAgainstConformingService(t *testing.T) {
	results := runSuite(t, mockPostalService(nil), Config{})

	assert.True(t, results.OK(), "failures: %v", failedPaths(results))
	var ran []string
	for _, r := range results.Tests {
		ran = append(ran, r.TestID.String())
	}
	assert.Equal(t, []string{
		"stuttgart",
		"multiple places/us 90210",
		"multiple places/us 12345",
		"multiple places/ca B2R",
	}, ran)
}

func TestStuttgartFailsOnWrongState(t *testing.T) {
	wrongState := httphelpers.HandlerWithJSONResponse(lookupResult{
		Country: "Germany",
		State:   "Bayern",
		Places:  []place{{PlaceName: "Stuttgart Degerloch", PostCode: "70597"}},
	}, nil)
	results := runSuite(t, mockPostalService(map[string]http.Handler{sitedef.StuttgartPath: wrongState}), Config{})

	assert.Equal(t, []string{"stuttgart"}, failedPaths(results))
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "Bayern")
}

func TestStuttgartFailsWhenDistrictHasOtherPostCode(t *testing.T) {
	moved := httphelpers.HandlerWithJSONResponse(lookupResult{
		Country: "Germany",
		State:   "Baden-Württemberg",
		Places:  []place{{PlaceName: "Stuttgart Degerloch", PostCode: "70599"}},
	}, nil)
	results := runSuite(t, mockPostalService(map[string]http.Handler{sitedef.StuttgartPath: moved}), Config{})

	assert.Equal(t, []string{"stuttgart"}, failedPaths(results))
}

func TestPlaceCaseFailureDoesNotHideOtherCases(t *testing.T) {
	results := runSuite(t, mockPostalService(map[string]http.Handler{
		"/us/90210": httphelpers.HandlerWithStatus(404),
		"/ca/B2R":   placeHandler("Halifax"),
	}), Config{})

	assert.Equal(t, []string{"multiple places/us 90210", "multiple places/ca B2R"}, failedPaths(results))
}

func TestNonJSONContentTypeFails(t *testing.T) {
	text := httphelpers.HandlerWithResponse(200, http.Header{"Content-Type": []string{"text/plain"}},
		[]byte(`{"places": [{"place name": "Schenectady"}]}`))
	results := runSuite(t, mockPostalService(map[string]http.Handler{"/us/12345": text}), Config{})

	assert.Equal(t, []string{"multiple places/us 12345"}, failedPaths(results))
}

func TestSlowResponseFails(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		placeHandler("Waverley").ServeHTTP(w, r)
	})
	results := runSuite(t, mockPostalService(map[string]http.Handler{"/ca/B2R": slow}),
		Config{LatencyBudget: 20 * time.Millisecond})

	assert.Equal(t, []string{"multiple places/ca B2R"}, failedPaths(results))
}

func TestMalformedBodyFails(t *testing.T) {
	broken := httphelpers.HandlerWithResponse(200, http.Header{"Content-Type": []string{"application/json"}},
		[]byte(`{"places": [`))
	results := runSuite(t, mockPostalService(map[string]http.Handler{"/us/90210": broken}), Config{})

	assert.Equal(t, []string{"multiple places/us 90210"}, failedPaths(results))
}

func TestResponseIsJSON(t *testing.T) {
	for contentType, expected := range map[string]bool{
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"application/problem+json":        true,
		"text/html":                       false,
		"":                                false,
	} {
		assert.Equal(t, expected, (&Response{ContentType: contentType}).IsJSON(), contentType)
	}
}
