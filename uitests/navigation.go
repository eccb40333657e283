package uitests

import (
	"strings"

	"github.com/sogeti/site-contract-tests/sitedef"

	"github.com/stretchr/testify/assert"
)

// VisitAutomationPage goes to the automation page through the "Services" menu: hover the
// primary item, hover the secondary item, then click it once it is clickable.
func VisitAutomationPage(t *T) {
	t.RequireHover(XPath(sitedef.XPathServices))
	t.Debug(`Mouse hover over the primary menu item "Services"`)

	automation := LinkText(sitedef.LinkTextAutomation)
	t.RequireHover(automation)
	t.Debug(`Mouse hover over the secondary menu item "Automation"`)

	t.RequireClick(automation)
	t.Debug(`Click the secondary menu item "Automation"`)
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}

// DoMenuItemTest checks that the menu leads to the automation page and marks both menu levels
// as selected.
func DoMenuItemTest(t *T) {
	VisitAutomationPage(t)

	t.RequireArrivalAt(t.SiteURL(sitedef.AutomationPath))
	t.Debug("Display the Automation screen")

	assert.Contains(t, t.RequireText(TagName("body")), sitedef.LinkTextAutomation)
	t.Debug("Confirm the visibility of the Automation text")

	servicesClass := t.RequireAttribute(XPath(sitedef.XPathSelectedServices), "class")
	assert.True(t, hasClass(servicesClass, sitedef.ClassSelected),
		`"Services" is not selected; class is %q`, servicesClass)
	t.Debug(`"Services" is selected`)

	automationClass := t.RequireAttribute(XPath(sitedef.XPathSelectedAutomation), "class")
	assert.True(t, hasClass(automationClass, sitedef.ClassSelected),
		`"Automation" is not selected; class is %q`, automationClass)
	t.Debug(`"Automation" is selected`)
}
