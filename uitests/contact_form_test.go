package uitests

import (
	"regexp"
	"strings"
	"testing"

	"github.com/sogeti/site-contract-tests/randdata"
	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var emailPattern = regexp.MustCompile(`^([a-z0-9]+)@([a-z0-9]+)\.([a-z]+)$`)

func isOnly(s, charset string) bool {
	for _, ch := range s {
		if !strings.ContainsRune(charset, ch) {
			return false
		}
	}
	return true
}

func TestContactFormValuesAreInBounds(t *testing.T) {
	charsets := map[string]string{
		"first name":   randdata.Letters,
		"last name":    randdata.Letters,
		"phone number": randdata.Digits,
		"message":      randdata.Alphanumerics,
	}
	rapid.Check(t, func(t *rapid.T) {
		r, _ := randdata.NewRand(rapid.Uint64Min(1).Draw(t, "seed"))
		for _, f := range ContactFormFields {
			value := f.Value(r)
			if !f.InBounds(value) {
				t.Fatalf("%s %q has length %d, outside [%d, %d)", f.Label, value, len(value), f.MinLength, f.MaxLength)
			}
			if charset, ok := charsets[f.Label]; ok && !isOnly(value, charset) {
				t.Fatalf("%s %q has characters outside %q", f.Label, value, charset)
			}
		}
	})
}

func TestEmailAddressParts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r, _ := randdata.NewRand(rapid.Uint64Min(1).Draw(t, "seed"))
		email := emailAddress(r, 0, 0)
		m := emailPattern.FindStringSubmatch(email)
		if m == nil {
			t.Fatalf("%q is not a well-formed address", email)
		}
		for _, part := range []struct {
			value    string
			min, max int
		}{
			{m[1], sitedef.MinUsernameLength, sitedef.MaxUsernameLength},
			{m[2], sitedef.MinHostnameLength, sitedef.MaxHostnameLength},
			{m[3], sitedef.MinSuffixLength, sitedef.MaxSuffixLength},
		} {
			if len(part.value) < part.min || len(part.value) >= part.max {
				t.Fatalf("%q in %q has length outside [%d, %d)", part.value, email, part.min, part.max)
			}
		}
	})
}

func TestEmailBoundsCoverAllParts(t *testing.T) {
	assert.Equal(t, 12, minEmailLength)
	assert.Equal(t, 82, maxEmailLength)
}

func TestContactFormFieldOrder(t *testing.T) {
	var names []string
	for _, f := range ContactFormFields {
		require.Equal(t, ByName, f.Locator.By)
		names = append(names, f.Locator.Value)
	}
	assert.Equal(t, []string{
		sitedef.NameFirstName,
		sitedef.NameLastName,
		sitedef.NameEmail,
		sitedef.NamePhone,
		sitedef.NameMessage,
	}, names)
}

func TestParseFillMode(t *testing.T) {
	for in, expected := range map[string]FillMode{"": FillTyped, "typed": FillTyped, "script": FillScript} {
		mode, err := ParseFillMode(in)
		require.NoError(t, err)
		assert.Equal(t, expected, mode)
	}

	_, err := ParseFillMode("paste")
	assert.Error(t, err)
}
