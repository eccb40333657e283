// Package sitedef contains the fixed facts about the systems under test: URLs, expected values,
// and the element locators that are coupled to the website's current markup.
package sitedef
