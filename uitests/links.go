package uitests

import (
	"fmt"
	"io"
	"net/http"

	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/stretchr/testify/require"
)

// LinkRecord is one outbound link found in the page.
type LinkRecord struct {
	URL  string
	Text string
}

// LinkChecker fetches links one at a time.
type LinkChecker struct {
	client *http.Client
}

func NewLinkChecker(client *http.Client) *LinkChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &LinkChecker{client: client}
}

// Check fetches the link and returns an error unless the final response status is 200.
// Redirects are followed.
func (c *LinkChecker) Check(link LinkRecord) error {
	resp, err := c.client.Get(link.URL)
	if err != nil {
		return fmt.Errorf("GET %s: %w", link.URL, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned HTTP %d", link.URL, resp.StatusCode)
	}
	return nil
}

// OpenWorldwideList hovers over and clicks the "Worldwide" navigation, and requires the
// country list to be displayed.
func OpenWorldwideList(t *T) {
	nav := ClassName(sitedef.ClassWorldwideNav)
	t.RequireHover(nav)
	t.Debug(`Mouse hover over the navigation bar "Worldwide"`)

	t.RequireClick(nav)
	t.Debug(`Click the navigation bar "Worldwide"`)

	t.RequireDisplayed(ClassName(sitedef.ClassWorldwideList))
	t.Debug(`Display the drop-down list "Worldwide"`)
}

// DoWorldwideLinksTest checks that every country site linked from the "Worldwide" list
// responds with 200. The links are checked in order and the first bad one ends the test.
func DoWorldwideLinksTest(t *T) {
	OpenWorldwideList(t)

	links, err := t.session.Links(ClassName(sitedef.ClassWorldwideList))
	require.NoError(t, err)
	require.NotEmpty(t, links, "the Worldwide list has no links")

	for _, link := range links {
		require.NoError(t, t.env.links.Check(link))
		t.Debug("%q (%s) is a valid link", link.URL, link.Text)
	}
}
