package uitests

import (
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
)

// By is the strategy used by a Locator to find elements.
type By int

const (
	ByName By = iota
	ByXPath
	ByClassName
	ByLinkText
	ByTagName
)

// Locator finds an element in the current page.
type Locator struct {
	By    By
	Value string
}

func Name(name string) Locator { return Locator{By: ByName, Value: name} }

func XPath(xpath string) Locator { return Locator{By: ByXPath, Value: xpath} }

func ClassName(class string) Locator { return Locator{By: ByClassName, Value: class} }

func LinkText(text string) Locator { return Locator{By: ByLinkText, Value: text} }

func TagName(tag string) Locator { return Locator{By: ByTagName, Value: tag} }

func (l Locator) String() string {
	switch l.By {
	case ByName:
		return "name=" + l.Value
	case ByXPath:
		return "xpath=" + l.Value
	case ByClassName:
		return "class=" + l.Value
	case ByLinkText:
		return "link=" + l.Value
	default:
		return "tag=" + l.Value
	}
}

// query returns the selector and query option that find the first matching element. XPath
// searches are narrowed with [1]; chromedp waits on every node a search returns.
func (l Locator) query() (string, chromedp.QueryOption) {
	if l.isXPath() {
		return "(" + l.xpath() + ")[1]", chromedp.BySearch
	}
	return l.css(), chromedp.ByQuery
}

// descendants returns the selector and query option that find every element with the given
// tag under any element matched by this locator.
func (l Locator) descendants(tag string) (string, chromedp.QueryOption) {
	if l.isXPath() {
		return "(" + l.xpath() + ")//" + tag, chromedp.BySearch
	}
	return l.css() + " " + tag, chromedp.ByQueryAll
}

func (l Locator) xpath() string {
	if l.By == ByLinkText {
		return fmt.Sprintf(`//a[normalize-space(.)=%s]`, xpathLiteral(l.Value))
	}
	return l.Value
}

func (l Locator) css() string {
	switch l.By {
	case ByName:
		return fmt.Sprintf(`[name="%s"]`, attrEscape(l.Value))
	case ByClassName:
		return "." + classEscape(l.Value)
	default:
		return l.Value
	}
}

func (l Locator) isXPath() bool {
	return l.By == ByXPath || l.By == ByLinkText
}

func attrEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func classEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, ".", `\.`, ":", `\:`).Replace(s)
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		quoted = append(quoted, `"`+p+`"`)
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
