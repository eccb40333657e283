package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not. isGroup is
// true for tests that only exist to contain subtests.
type Filter func(id TestID, isGroup bool) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter tests a full test path against the filters. A group is not excluded by MustMatch
// when one of the patterns could still match one of its subtests, so "-run ^api/stuttgart"
// still enters the "api" group.
func (r RegexFilters) AsFilter(id TestID, isGroup bool) bool {
	name := id.String()
	if r.MustNotMatch.AnyMatch(name) {
		return false
	}
	if !r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name) {
		return true
	}
	return isGroup && r.MustMatch.AnyMatchDescendantOf(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

// Patterns returns the source of each pattern, in the order they were given.
func (r RegexList) Patterns() []string {
	ret := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		ret = append(ret, p.String())
	}
	return ret
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyMatchDescendantOf is true if some pattern could match a subtest of the given test path.
// An unanchored pattern may match anywhere, so it always could.
func (r RegexList) AnyMatchDescendantOf(s string) bool {
	for _, p := range r.patterns {
		src := p.String()
		if !strings.HasPrefix(src, "^") {
			return true
		}
		rest, err := regexp.Compile(strings.TrimPrefix(src, "^"))
		if err != nil {
			return true
		}
		prefix, _ := rest.LiteralPrefix()
		if strings.HasPrefix(prefix, s+"/") || strings.HasPrefix(s+"/", prefix) {
			return true
		}
	}
	return false
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
