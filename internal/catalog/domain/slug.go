package domain

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultStoreName is assigned when a submitted name contains nothing but
// markup or whitespace.
const DefaultStoreName = "Default Store"

var stripPolicy = bluemonday.StrictPolicy()

// SanitizeName strips HTML tags from a submitted store name and trims
// surrounding whitespace. Falls back to DefaultStoreName when nothing
// survives the stripping.
func SanitizeName(name string) string {
	cleaned := html.UnescapeString(stripPolicy.Sanitize(name))
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return DefaultStoreName
	}
	return cleaned
}

// MakeSlug derives the URL-safe base slug for a name: transliterated,
// lowercased, non-alphanumeric runs collapsed to single hyphens.
func MakeSlug(name string) string {
	return slug.Make(name)
}

// SlugPattern builds the case-insensitive regular expression that matches
// a base slug and every numbered variant of it (base, base-2, base-3, ...).
func SlugPattern(base string) string {
	return "^" + regexp.QuoteMeta(base) + "(-[0-9]+)?$"
}

// NextSlug resolves a collision by counting: with no existing matches the
// base is used as-is, otherwise the suffix is the match count plus one.
// This mirrors the directory's historical numbering, not max-suffix+1; the
// unique index on slug is the backstop for the gaps that scheme can leave.
func NextSlug(base string, taken []string) string {
	if len(taken) == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, len(taken)+1)
}
