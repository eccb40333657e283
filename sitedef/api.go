package sitedef

import "time"

// DefaultAPIBaseURL is the postal-code lookup service.
const DefaultAPIBaseURL = "http://api.zippopotam.us"

const (
	StuttgartPath        = "/de/bw/stuttgart"
	StuttgartCountry     = "Germany"
	StuttgartState       = "Baden-Württemberg"
	StuttgartPostCode    = "70597"
	StuttgartDistrict    = "Stuttgart Degerloch"
	DefaultLatencyBudget = 1300 * time.Millisecond
)

// Field names in the postal-code service's JSON documents.
const (
	FieldCountry   = "country"
	FieldState     = "state"
	FieldPlaces    = "places"
	FieldPlaceName = "place name"
	FieldPostCode  = "post code"
)

// PlaceCase is a lookup by country and post code that must return the named place.
type PlaceCase struct {
	Country   string
	PostCode  string
	PlaceName string
}

// Path is the request path for this lookup.
func (p PlaceCase) Path() string {
	return "/" + p.Country + "/" + p.PostCode
}

var PlaceCases = []PlaceCase{
	{Country: "us", PostCode: "90210", PlaceName: "Beverly Hills"},
	{Country: "us", PostCode: "12345", PlaceName: "Schenectady"},
	{Country: "ca", PostCode: "B2R", PlaceName: "Waverley"},
}
