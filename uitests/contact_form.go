package uitests

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sogeti/site-contract-tests/randdata"
	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/stretchr/testify/require"
)

// FillMode is how values are entered into text fields.
type FillMode string

const (
	// FillTyped sends the value as keystrokes.
	FillTyped FillMode = "typed"
	// FillScript assigns the value to the element directly.
	FillScript FillMode = "script"
)

func ParseFillMode(s string) (FillMode, error) {
	switch FillMode(s) {
	case FillTyped, FillScript:
		return FillMode(s), nil
	case "":
		return FillTyped, nil
	}
	return "", fmt.Errorf("unknown fill mode %q (expected %q or %q)", s, FillTyped, FillScript)
}

// Generator produces a random value whose length is in [minLen, maxLen).
type Generator func(r *rand.Rand, minLen, maxLen int) string

// FieldDescriptor describes how to produce a valid random value for a form field and where
// to put it.
type FieldDescriptor struct {
	Label     string
	Locator   Locator
	Generate  Generator
	MinLength int
	MaxLength int
}

// Value generates a value for the field.
func (f FieldDescriptor) Value(r *rand.Rand) string {
	return f.Generate(r, f.MinLength, f.MaxLength)
}

// InBounds reports whether a value has a length the field accepts.
func (f FieldDescriptor) InBounds(value string) bool {
	return len(value) >= f.MinLength && len(value) < f.MaxLength
}

func lowerAlphanumeric(r *rand.Rand, minLen, maxLen int) string {
	return strings.ToLower(randdata.Alphanumeric(r, minLen, maxLen))
}

func lowerAlphabetic(r *rand.Rand, minLen, maxLen int) string {
	return strings.ToLower(randdata.Alphabetic(r, minLen, maxLen))
}

// emailAddress builds user@host.suffix from its own part bounds; the overall bounds of the
// email field descriptor are derived from them.
func emailAddress(r *rand.Rand, _, _ int) string {
	return lowerAlphanumeric(r, sitedef.MinUsernameLength, sitedef.MaxUsernameLength) +
		"@" + lowerAlphanumeric(r, sitedef.MinHostnameLength, sitedef.MaxHostnameLength) +
		"." + lowerAlphabetic(r, sitedef.MinSuffixLength, sitedef.MaxSuffixLength)
}

const (
	minEmailLength = sitedef.MinUsernameLength + 1 + sitedef.MinHostnameLength + 1 + sitedef.MinSuffixLength
	maxEmailLength = (sitedef.MaxUsernameLength - 1) + 1 + (sitedef.MaxHostnameLength - 1) + 1 +
		(sitedef.MaxSuffixLength - 1) + 1
)

// ContactFormFields are the text fields of the contact form, in the order they are filled.
var ContactFormFields = []FieldDescriptor{
	{
		Label:     "first name",
		Locator:   Name(sitedef.NameFirstName),
		Generate:  randdata.Alphabetic,
		MinLength: sitedef.MinFirstNameLength,
		MaxLength: sitedef.MaxFirstNameLength,
	},
	{
		Label:     "last name",
		Locator:   Name(sitedef.NameLastName),
		Generate:  randdata.Alphabetic,
		MinLength: sitedef.MinLastNameLength,
		MaxLength: sitedef.MaxLastNameLength,
	},
	{
		Label:     "Email address",
		Locator:   Name(sitedef.NameEmail),
		Generate:  emailAddress,
		MinLength: minEmailLength,
		MaxLength: maxEmailLength,
	},
	{
		Label:     "phone number",
		Locator:   Name(sitedef.NamePhone),
		Generate:  randdata.Numeric,
		MinLength: sitedef.MinPhoneLength,
		MaxLength: sitedef.MaxPhoneLength,
	},
	{
		Label:     "message",
		Locator:   Name(sitedef.NameMessage),
		Generate:  randdata.Alphanumeric,
		MinLength: sitedef.MinMessageLength,
		MaxLength: sitedef.MaxMessageLength,
	},
}

// RequireFill generates a value for the field and enters it, returning the value.
func (t *T) RequireFill(f FieldDescriptor) string {
	value := f.Value(t.env.rand)
	require.True(t, f.InBounds(value), "generated %s %q is outside [%d, %d)", f.Label, value, f.MinLength, f.MaxLength)
	require.NoError(t, t.session.Fill(f.Locator, value, t.env.config.FillMode))
	t.Debug("Input the %s: %s", f.Label, value)
	return value
}

// RequireSelectRandomOption selects a uniformly chosen option of a dropdown and returns it.
func (t *T) RequireSelectRandomOption(l Locator) Option {
	options, err := t.session.Options(l)
	require.NoError(t, err)
	require.NotEmpty(t, options, "%s has no options", l)

	option := options[randdata.Pick(t.env.rand, len(options))]
	require.NoError(t, t.session.SelectIndex(l, option.Index))
	return option
}

// FillContactForm fills every field of the contact form, picks a country, agrees to the terms
// and submits. It returns the values that were entered, by field label.
func FillContactForm(t *T) map[string]string {
	values := make(map[string]string, len(ContactFormFields))
	for _, f := range ContactFormFields {
		values[f.Label] = t.RequireFill(f)
	}

	country := t.RequireSelectRandomOption(Name(sitedef.NameCountry))
	values["country"] = country.Value
	t.Debug("Choose the country: %s", strings.TrimSpace(country.Label))

	t.RequireClick(Name(sitedef.NameAgreement))
	t.Debug(`Check the "I Agree" box`)

	// The form is protected by a reCAPTCHA, so the submission itself is not verified.
	t.RequireClick(Name(sitedef.NameSubmit))
	t.Debug(`Click the "Submit" button`)
	return values
}

// DoContactFormTest fills in the contact form on the automation page with random valid data.
func DoContactFormTest(t *T) {
	VisitAutomationPage(t)
	FillContactForm(t)
}
