package apitests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestFieldQuerySelectsMatchingEntries(t *testing.T) {
	doc := ldvalue.Parse([]byte(`{"places": [
		{"place name": "Stuttgart Mitte", "post code": "70173"},
		{"place name": "Stuttgart Degerloch", "post code": "70597"},
		{"place name": "Stuttgart Hoffeld", "post code": "70597"},
		"not an object",
		{"place name": "Stuttgart Nord", "post code": 70597}
	]}`))

	matches := FieldQuery{Array: "places", Field: "post code", Equals: "70597"}.Select(doc)

	assert.Equal(t, []string{"Stuttgart Degerloch", "Stuttgart Hoffeld"}, Strings(matches, "place name"))
}

func TestFieldQuerySelectsNothingFromMissingOrNonArrayProperty(t *testing.T) {
	q := FieldQuery{Array: "places", Field: "post code", Equals: "70597"}
	assert.Empty(t, q.Select(ldvalue.Parse([]byte(`{}`))))
	assert.Empty(t, q.Select(ldvalue.Parse([]byte(`{"places": {"post code": "70597"}}`))))
	assert.Empty(t, q.Select(ldvalue.Null()))
}

func TestFieldQueryString(t *testing.T) {
	q := FieldQuery{Array: "places", Field: "place name", Equals: "Beverly Hills"}
	assert.Equal(t, "$.places[?(@['place name']=='Beverly Hills')]", q.String())
}
