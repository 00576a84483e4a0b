package utils

import (
	"net/http"
	"regexp"
	"strings"
)

// matches the organization segment of app paths like /o/acme-inc/dashboard.
// The whole segment must be a valid identifier: /o/acme_inc has no organization.
var orgSegment = regexp.MustCompile(`(?i)(?:^|/)o/([a-z0-9-]+)(?:/|$)`)

// OrgFromPath returns the lower-cased organization identifier found in a path of the form .../o/<org>/...
// or an empty string when the path has no organization segment.
func OrgFromPath(path string) string {
	path = strings.TrimRight(path, "/")

	m := orgSegment.FindStringSubmatch(path)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// OrgFromRequest extracts the organization from the path of the current request
func OrgFromRequest(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return OrgFromPath(r.URL.Path)
}
