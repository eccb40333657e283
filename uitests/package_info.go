// Package uitests contains the website tests and their supporting test API.
//
// The browser is driven over the Chrome DevTools protocol by chromedp. Session wraps a single
// browser and provides the element operations the tests need (hover, wait until clickable,
// click, fill, select); T builds on the framework's test context to give each test its own
// Session. The element locators are tied to the site's current markup and live in sitedef.
package uitests
