package sitedef

// DefaultSiteBaseURL is the home page of the marketing site. It must end with a slash.
const DefaultSiteBaseURL = "https://www.sogeti.com/"

// AutomationPath is where the "Services > Automation" menu item leads, relative to the site.
const AutomationPath = "services/automation/"

const (
	XPathServices           = `//*[@id="header"]/div[1]/nav/ul/li[3]/div[1]/span`
	XPathSelectedServices   = `//*[@id="header"]/div[1]/nav/ul/li[3]`
	XPathSelectedAutomation = `//*[@id="header"]/div[1]/nav/ul/li[3]/div[2]/ul/li[4]`
	LinkTextAutomation      = "Automation"
	ClassAcceptCookie       = "acceptCookie"
	ClassWorldwideNav       = "navbar-global"
	ClassWorldwideList      = "country-list"
	ClassSelected           = "selected"
)

// Element names of the contact form on the automation page.
const (
	NameFirstName = "__field_123927"
	NameLastName  = "__field_123938"
	NameEmail     = "__field_123928"
	NamePhone     = "__field_123929"
	NameMessage   = "__field_123931"
	NameCountry   = "__field_132596"
	NameAgreement = "__field_123935"
	NameSubmit    = "submit"
)

// Length bounds of the generated form values. Minimums are inclusive, maximums exclusive.
const (
	MinFirstNameLength = 2
	MaxFirstNameLength = 38
	MinLastNameLength  = 2
	MaxLastNameLength  = 726
	MinUsernameLength  = 6
	MaxUsernameLength  = 30
	MinHostnameLength  = 2
	MaxHostnameLength  = 48
	MinSuffixLength    = 2
	MaxSuffixLength    = 4
	MinPhoneLength     = 10
	MaxPhoneLength     = 15
	MinMessageLength   = 1
	MaxMessageLength   = 256
)
