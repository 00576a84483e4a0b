package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify converts s into a URL-safe identifier: lower case letters, digits and hyphens only.
// Runs of any other characters are collapsed into a single hyphen and leading/trailing hyphens are removed.
//
// The empty string is returned unchanged, and Slugify(Slugify(s)) == Slugify(s) for every s.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugifyPtr is Slugify for optional values - a nil pointer produces an empty slug.
func SlugifyPtr(s *string) string {
	if s == nil {
		return ""
	}
	return Slugify(*s)
}

// IsSlug reports whether s is already in canonical slug form
func IsSlug(s string) bool {
	return s != "" && Slugify(s) == s
}

// HelpTitle derives a display title from a help article slug, e.g "getting-started" -> "Getting Started"
func HelpTitle(slug string) string {
	words := strings.Fields(strings.ReplaceAll(Slugify(slug), "-", " "))
	return cases.Title(language.English).String(strings.Join(words, " "))
}
