// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"regexp"
	"strings"
)

// Platform identifies the hosting platform of a tracked publication.
type Platform string

const (
	// PlatformZenodo is the registry with an authoritative per-record
	// stats API (unique views and downloads per DOI).
	PlatformZenodo Platform = "Zenodo"

	// PlatformEngrxiv has no per-record API; download counts are
	// recovered from a scraped search-results cache.
	PlatformEngrxiv Platform = "engrXiv"
)

// Known reports whether the platform is one of the supported tags.
func (p Platform) Known() bool {
	return p == PlatformZenodo || p == PlatformEngrxiv
}

// doiPattern matches DOIs: "10.31224/5289", "10.5281/zenodo.17428600".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// IsDOI reports whether s looks like a DOI.
func IsDOI(s string) bool {
	return doiPattern.MatchString(strings.TrimSpace(s))
}

// Publication is one tracked work. The list of publications is fixed for
// a run: it is loaded once at startup and never mutated.
type Publication struct {
	// DOI is the persistent identifier (e.g. "10.31224/5289").
	DOI string `json:"doi" yaml:"doi"`

	// Title is the canonical title as registered with the platform.
	Title string `json:"title" yaml:"title"`

	// Platform is the hosting platform tag.
	Platform Platform `json:"platform" yaml:"platform"`
}

// Validate checks that the publication has a DOI-shaped identifier, a
// title, and a known platform tag.
func (p Publication) Validate() error {
	if !IsDOI(p.DOI) {
		return fmt.Errorf("identifier %q is not a DOI", p.DOI)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("publication %s has no title", p.DOI)
	}
	if !p.Platform.Known() {
		return fmt.Errorf("publication %s has unknown platform %q", p.DOI, p.Platform)
	}
	return nil
}

// ShortTitle returns the text before the first colon, truncated to max
// characters with an ellipsis. Used for table rows and chart labels.
func (p Publication) ShortTitle(max int) string {
	return ShortenTitle(p.Title, max)
}

// ShortenTitle truncates the pre-colon segment of title to max runes.
func ShortenTitle(title string, max int) string {
	main := strings.SplitN(title, ":", 2)[0]
	runes := []rune(main)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return main
}
