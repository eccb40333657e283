package framework

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathID(path string) TestID {
	return TestID{Path: strings.Split(path, "/")}
}

func makeFilters(t *testing.T, run, skip []string) RegexFilters {
	var f RegexFilters
	for _, p := range run {
		require.NoError(t, f.MustMatch.Set(p))
	}
	for _, p := range skip {
		require.NoError(t, f.MustNotMatch.Set(p))
	}
	return f
}

func TestEmptyFiltersAllowEverything(t *testing.T) {
	f := makeFilters(t, nil, nil)
	assert.True(t, f.AsFilter(pathID("api/stuttgart"), false))
	assert.True(t, f.AsFilter(pathID("ui"), true))
}

func TestSkipPattern(t *testing.T) {
	f := makeFilters(t, nil, []string{"worldwide"})
	assert.False(t, f.AsFilter(pathID("ui/worldwide links"), false))
	assert.True(t, f.AsFilter(pathID("ui/fill contact form"), false))
}

func TestRunPatternEntersMatchingGroups(t *testing.T) {
	f := makeFilters(t, []string{"^api/multiple places/us "}, nil)

	assert.True(t, f.AsFilter(pathID("api"), true))
	assert.True(t, f.AsFilter(pathID("api/multiple places"), true))
	assert.True(t, f.AsFilter(pathID("api/multiple places/us 90210"), false))
	assert.False(t, f.AsFilter(pathID("api/multiple places/ca B2R"), false))
	assert.False(t, f.AsFilter(pathID("api/stuttgart"), false))
	assert.False(t, f.AsFilter(pathID("ui"), true))
}

func TestUnanchoredRunPatternEntersEveryGroup(t *testing.T) {
	f := makeFilters(t, []string{"contact"}, nil)

	assert.True(t, f.AsFilter(pathID("api"), true))
	assert.True(t, f.AsFilter(pathID("ui"), true))
	assert.False(t, f.AsFilter(pathID("api/stuttgart"), false))
	assert.True(t, f.AsFilter(pathID("ui/fill contact form"), false))
}

func TestSkipWinsOverRun(t *testing.T) {
	f := makeFilters(t, []string{"^ui"}, []string{"^ui$"})
	assert.False(t, f.AsFilter(pathID("ui"), true))
}

func TestInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("(unclosed"))
	assert.False(t, r.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, makeFilters(t, nil, nil))
	assert.Empty(t, buf.String())

	PrintFilterDescription(&buf, makeFilters(t, []string{"^api", "links"}, []string{"90210"}))
	out := buf.String()
	assert.Contains(t, out, `skip any not matching "^api" or "links"`)
	assert.Contains(t, out, `skip any matching "90210"`)
}
