package uitests

import (
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/sogeti/site-contract-tests/framework"
	"github.com/sogeti/site-contract-tests/randdata"
	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/stretchr/testify/require"
)

// Config holds the settings of the UI suite.
type Config struct {
	// SiteURL is the home page of the site, ending with a slash.
	SiteURL string

	Session  SessionConfig
	FillMode FillMode

	// Rand generates the form values. If nil, a time-seeded generator is used.
	Rand *rand.Rand

	// LinkClient is used to fetch the outbound links; it defaults to http.DefaultClient.
	LinkClient *http.Client
}

type environment struct {
	config Config
	rand   *rand.Rand
	links  *LinkChecker
}

// T represents a test or subtest in the UI suite.
//
// Every subtest started with Run gets its own browser session, which has already loaded the
// home page and accepted the cookie banner when the test function is called, and which is
// closed when the test ends whether it passed or not.
//
// T can be passed to the assert and require packages as if it were a *testing.T. Its Require
// methods wrap the Session methods and fail the test immediately on any error.
type T struct {
	context *framework.Context
	env     *environment
	session *Session
}

// DoAllTests runs the whole UI suite as subtests of the given context.
func DoAllTests(c *framework.Context, config Config) {
	t := &T{context: c, env: newEnvironment(config)}

	t.Run("click and display menu item", DoMenuItemTest)
	t.Run("fill contact form", DoContactFormTest)
	t.Run("worldwide links", DoWorldwideLinksTest)
}

func newEnvironment(config Config) *environment {
	if config.SiteURL == "" {
		config.SiteURL = sitedef.DefaultSiteBaseURL
	}
	if !strings.HasSuffix(config.SiteURL, "/") {
		config.SiteURL += "/"
	}
	env := &environment{config: config, rand: config.Rand}
	if env.rand == nil {
		env.rand, _ = randdata.NewRand(0)
	}
	env.links = NewLinkChecker(config.LinkClient)
	return env
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

// Run runs a subtest in a new browser session.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		t1 := &T{context: c, env: t.env}
		t1.startSession()
		action(t1)
	})
}

func (t *T) startSession() {
	s, err := NewSession(t.env.config.Session, t.context.DebugLogger())
	require.NoError(t, err)
	t.session = s
	t.context.Defer(s.Close)

	require.NoError(t, s.Navigate(t.env.config.SiteURL))
	t.Debug("Display the homepage at %s", t.env.config.SiteURL)

	t.RequireClick(ClassName(sitedef.ClassAcceptCookie))
	t.Debug("Allow all the cookies")
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Session returns the browser session of the current test.
func (t *T) Session() *Session {
	return t.session
}

// SiteURL resolves a path relative to the site's home page.
func (t *T) SiteURL(path string) string {
	return t.env.config.SiteURL + strings.TrimPrefix(path, "/")
}

func (t *T) RequireHover(l Locator) {
	require.NoError(t, t.session.Hover(l))
}

func (t *T) RequireClick(l Locator) {
	require.NoError(t, t.session.Click(l))
}

// RequireArrivalAt waits for the browser to reach a URL and fails the test immediately if it
// does not get there within the wait timeout.
func (t *T) RequireArrivalAt(expected string) {
	location, err := t.session.WaitLocation(expected)
	require.NoError(t, err)
	require.Equal(t, expected, location)
}

func (t *T) RequireAttribute(l Locator, name string) string {
	value, err := t.session.Attribute(l, name)
	require.NoError(t, err)
	return value
}

func (t *T) RequireText(l Locator) string {
	text, err := t.session.Text(l)
	require.NoError(t, err)
	return text
}

// RequireDisplayed fails the test immediately unless the element becomes visible within the
// wait timeout.
func (t *T) RequireDisplayed(l Locator) {
	visible, err := t.session.IsDisplayed(l)
	require.NoError(t, err)
	require.True(t, visible, "%s is not displayed", l)
}
