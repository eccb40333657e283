package apitests

import (
	"fmt"

	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoStuttgartTest looks up the Stuttgart districts and checks that post code 70597 is
// Stuttgart Degerloch.
func DoStuttgartTest(t *T) {
	resp := t.RequireGet(sitedef.StuttgartPath)
	t.RequireGoodJSONResponse(resp)

	assert.Equal(t, sitedef.StuttgartCountry, resp.Field(sitedef.FieldCountry), "country")
	assert.Equal(t, sitedef.StuttgartState, resp.Field(sitedef.FieldState), "state")
	t.Debug("The country is %s and the state is %s", resp.Field(sitedef.FieldCountry), resp.Field(sitedef.FieldState))

	query := FieldQuery{Array: sitedef.FieldPlaces, Field: sitedef.FieldPostCode, Equals: sitedef.StuttgartPostCode}
	matches := query.Select(resp.Document)
	t.Debug("%s selected %d places", query, len(matches))

	placeNames := Strings(matches, sitedef.FieldPlaceName)
	require.Contains(t, placeNames, sitedef.StuttgartDistrict,
		"no place named %q has post code %q", sitedef.StuttgartDistrict, sitedef.StuttgartPostCode)
	t.Debug("The district %q corresponds to the post code %q", sitedef.StuttgartDistrict, sitedef.StuttgartPostCode)
}

// DoMultiplePlacesTests looks up each of the known place cases as a separate subtest.
func DoMultiplePlacesTests(t *T) {
	for _, pc := range sitedef.PlaceCases {
		pc := pc
		t.Run(fmt.Sprintf("%s %s", pc.Country, pc.PostCode), func(t *T) {
			doPlaceCaseTest(t, pc)
		})
	}
}

func doPlaceCaseTest(t *T, pc sitedef.PlaceCase) {
	resp := t.RequireGet(pc.Path())
	t.RequireGoodJSONResponse(resp)

	query := FieldQuery{Array: sitedef.FieldPlaces, Field: sitedef.FieldPlaceName, Equals: pc.PlaceName}
	matches := query.Select(resp.Document)
	t.Debug("%s selected %d places", query, len(matches))
	require.NotEmpty(t, matches, "no place named %q for %s %s", pc.PlaceName, pc.Country, pc.PostCode)

	t.Debug("The district %q corresponds to the country %q and the post code %q",
		pc.PlaceName, pc.Country, pc.PostCode)
}
