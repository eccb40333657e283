// Package apitests contains the postal-code API tests and their supporting test API.
//
// Each test makes a single GET request, checks the status, content type and latency of the
// response, and then queries the JSON body.
package apitests
