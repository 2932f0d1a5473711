package api

import (
	"net/url"
	"strings"
)

// PercentEncode escapes s for form and query values, spaces as %20.
func PercentEncode(s string) string {
	s = url.QueryEscape(s)
	return strings.ReplaceAll(s, "+", "%20")
}
