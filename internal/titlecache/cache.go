// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package titlecache builds and queries the scraped title index used to
// recover download counts for the platform without a per-record API.
//
// The cache is built once per run from a single bulk search-page scrape
// and is read-only afterwards. It is passed explicitly into Resolve;
// construction and lookup are separate phases and nothing mutates the
// cache between them.
package titlecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// searchBase is the search endpoint scraped to populate the cache.
// Declared as a var so tests can substitute an httptest server.
var searchBase = "https://engrxiv.org/search/search"

// browserUserAgent is sent with the scrape request; the search page
// blocks obvious non-browser agents.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var downloadsPattern = regexp.MustCompile(`Downloads:\s*(\d+)`)

// Entry is one scraped title with its observed download count.
type Entry struct {
	Title     string
	Downloads int
}

// Cache is an ordered title → download-count index. Iteration order is
// the document order of the bulk scrape; Resolve depends on it because
// the first matching entry wins.
type Cache struct {
	entries []Entry
}

// Add appends an entry. Entries are never removed or updated.
func (c *Cache) Add(title string, downloads int) {
	c.entries = append(c.entries, Entry{Title: title, Downloads: downloads})
}

// Len returns the number of cached titles.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the entries in scrape order.
func (c *Cache) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Prefetch performs the one-time bulk scrape and returns the populated
// cache. Any failure (transport, status, parse) yields an empty cache
// and a warning on w: the reconciler then returns 0 for every title that
// run, which degrades precision but never aborts collection.
func Prefetch(ctx context.Context, client *http.Client, query string, w io.Writer) *Cache {
	cache := &Cache{}

	reqURL := searchBase + "?" + url.Values{"query": {query}}.Encode()
	fmt.Fprintf(w, "prefetching title cache from %s\n", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		fmt.Fprintf(w, "warning: title cache prefetch: %v\n", err)
		return cache
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(w, "warning: title cache prefetch: %v\n", err)
		return cache
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(w, "warning: title cache prefetch: HTTP %d\n", resp.StatusCode)
		return cache
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		fmt.Fprintf(w, "warning: title cache prefetch: parsing search page: %v\n", err)
		return cache
	}

	doc.Find("div.details").Each(func(_ int, det *goquery.Selection) {
		m := downloadsPattern.FindStringSubmatch(det.Text())
		if m == nil {
			return
		}
		downloads, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}

		title := findTitle(det)
		if title == "" {
			return
		}
		cache.Add(title, downloads)
	})

	fmt.Fprintf(w, "cached %d titles from bulk scrape\n", cache.Len())
	return cache
}

// findTitle locates the title element for a details block. The primary
// layout places an h3.title immediately before the enclosing div.meta;
// older result layouts nest both under an li or div.search-result.
func findTitle(det *goquery.Selection) string {
	var titleSel *goquery.Selection

	if meta := det.Closest("div.meta"); meta.Length() > 0 {
		titleSel = meta.PrevFiltered("h3.title")
	}

	if titleSel == nil || titleSel.Length() == 0 {
		container := det.Closest("li")
		if container.Length() == 0 {
			container = det.Closest("div.search-result")
		}
		if container.Length() > 0 {
			titleSel = container.Find("h3.title")
			if titleSel.Length() == 0 {
				titleSel = container.Find("a.title")
			}
		}
	}

	if titleSel == nil || titleSel.Length() == 0 {
		return ""
	}

	title := strings.TrimSpace(titleSel.First().Text())
	title = strings.TrimSpace(strings.ReplaceAll(title, "Preprint / Version 1", ""))
	return title
}
