package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sogeti/site-contract-tests/framework"
	"github.com/sogeti/site-contract-tests/sitedef"
	"github.com/sogeti/site-contract-tests/uitests"

	"github.com/alessio/shellescape"
)

const (
	defaultProbeTimeout = time.Second * 10
	defaultLinkTimeout  = time.Second * 10
)

type commandParams struct {
	program          string
	flags            *flag.FlagSet
	apiURL           string
	siteURL          string
	filters          framework.RegexFilters
	debug            bool
	debugAll         bool
	headless         bool
	noSandbox        bool
	chromePath       string
	waitTimeout      time.Duration
	testTimeout      time.Duration
	latencyThreshold time.Duration
	linkTimeout      time.Duration
	fillMode         uitests.FillMode
	seed             uint64
	probeTimeout     time.Duration
}

func (c *commandParams) Read(args []string) bool {
	var fillMode string

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.apiURL, "api-url", sitedef.DefaultAPIBaseURL, "base URL of the postal-code service")
	fs.StringVar(&c.siteURL, "site-url", sitedef.DefaultSiteBaseURL, "home page of the website")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.headless, "headless", true, "run the browser without a window")
	fs.BoolVar(&c.noSandbox, "no-sandbox", false, "disable the browser sandbox, e.g. when running as root in a container")
	fs.StringVar(&c.chromePath, "chrome", "", "path of the Chrome or Chromium executable")
	fs.DurationVar(&c.waitTimeout, "wait-timeout", uitests.DefaultWaitTimeout, "how long to wait for a page element")
	fs.DurationVar(&c.testTimeout, "test-timeout", uitests.DefaultTestTimeout, "how long a browser session may last")
	fs.DurationVar(&c.latencyThreshold, "latency-threshold", sitedef.DefaultLatencyBudget,
		"maximum response time of the postal-code service")
	fs.DurationVar(&c.linkTimeout, "link-timeout", defaultLinkTimeout, "timeout for fetching each Worldwide link")
	fs.StringVar(&fillMode, "fill-mode", string(uitests.FillTyped), `how to enter form values: "typed" or "script"`)
	fs.Uint64Var(&c.seed, "seed", 0, "seed for the random form values; 0 picks one")
	fs.DurationVar(&c.probeTimeout, "probe-timeout", defaultProbeTimeout,
		"how long to wait for each target to respond before running tests; 0 skips the check")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	c.program, c.flags = args[0], fs

	mode, err := uitests.ParseFillMode(fillMode)
	if err != nil {
		return usageError(fs, err)
	}
	c.fillMode = mode

	for name, value := range map[string]string{"-api-url": c.apiURL, "-site-url": c.siteURL} {
		if err := validateURL(value); err != nil {
			return usageError(fs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return true
}

func usageError(fs *flag.FlagSet, err error) bool {
	fmt.Fprintln(os.Stderr, err)
	fs.Usage()
	return false
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http or https URL", s)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", s)
	}
	return nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand rebuilds the command line from the parsed flags so that it runs only the given
// tests with the same random seed, keeping every other parameter that was set.
func (c *commandParams) rerunCommand(seed uint64, failed []framework.TestID) string {
	var b commandBuilder
	b.add(c.program)
	c.flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "run", "seed":
			return
		}
		if list, ok := f.Value.(*framework.RegexList); ok {
			for _, p := range list.Patterns() {
				b.add("-"+f.Name, p)
			}
			return
		}
		b.add("-" + f.Name + "=" + f.Value.String())
	})
	b.add("-seed", strconv.FormatUint(seed, 10))
	for _, id := range failed {
		b.add("-run", "^"+regexp.QuoteMeta(id.String())+"$")
	}
	return b.String()
}
