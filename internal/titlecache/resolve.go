// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package titlecache

import (
	"strings"
	"unicode/utf8"
)

// Length guards against spurious matches on a lone short word.
const (
	minSubstringLen = 10 // tier 1: cached title must be longer than this
	minPrefixLen    = 5  // tier 2: pre-colon segment must be longer than this
)

// Resolve matches a canonical title against the cache and returns the
// download count of the first matching entry, or 0.
//
// Tier 1 accepts the first entry (in scrape order) whose normalized title
// contains, or is contained in, the normalized canonical title, provided
// the cached title is longer than 10 runes. Tier 2 falls back to exact
// equality of the pre-colon segments when the canonical segment is longer
// than 5 runes; a title with no colon compares as a whole.
//
// A miss returns 0, which conflates "no match" with "zero downloads". That
// is the documented contract, not a bug to fix here.
func Resolve(canonicalTitle string, cache *Cache) int {
	if cache.Len() == 0 {
		return 0
	}

	target := normalize(canonicalTitle)

	for _, e := range cache.Entries() {
		cached := normalize(e.Title)
		if strings.Contains(cached, target) || strings.Contains(target, cached) {
			if utf8.RuneCountInString(cached) > minSubstringLen {
				return e.Downloads
			}
		}
	}

	targetBase := preColon(target)
	for _, e := range cache.Entries() {
		cachedBase := preColon(strings.ToLower(e.Title))
		if targetBase == cachedBase && utf8.RuneCountInString(targetBase) > minPrefixLen {
			return e.Downloads
		}
	}

	return 0
}

// normalize lowercases and trims whitespace. Punctuation and diacritics
// stay significant.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// preColon returns the trimmed text before the first colon; the whole
// string when there is none.
func preColon(s string) string {
	return strings.TrimSpace(strings.SplitN(s, ":", 2)[0])
}
