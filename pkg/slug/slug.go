// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Product pages are addressed as /products/<id>-<slug> by UI components, e.g.
// "p1-oversized-sweater". The id prefix is authoritative; the slug is cosmetic.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiHyphen collapses multiple consecutive hyphens into one.
var multiHyphen = regexp.MustCompile(`-{2,}`)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// Accents are stripped via NFD decomposition, everything else that is not
// an ASCII letter or digit becomes a hyphen.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, result)

	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// ProductPath joins a product id and its name into "<id>-<slug>".
func ProductPath(id, name string) string {
	s := From(name)
	if s == "" {
		return id
	}
	return id + "-" + s
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
