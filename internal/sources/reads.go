// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// readsSearchBase is the HTML web-search endpoint scraped for reads
// figures. Declared as a var so tests can substitute an httptest server.
var readsSearchBase = "https://html.duckduckgo.com/html/"

// readsSite restricts the search to the profile-hosting site.
const readsSite = "site:researchgate.net"

// maxReadsResults caps how many result snippets are inspected.
const maxReadsResults = 2

var readsPattern = regexp.MustCompile(`(\d+)\s*Reads`)

// ReadsClient estimates third-party reads from web-search snippets.
type ReadsClient struct {
	Client    *http.Client
	UserAgent string
}

// Estimate searches for the title restricted to the third-party site and
// scans up to 2 result snippets for an "N Reads" figure. The first match
// wins. No match, or any search failure, yields the Protected sentinel:
// the figure exists but is not visible, which downstream handling keeps
// distinct from both a number and "unknown".
func (c *ReadsClient) Estimate(ctx context.Context, title string) types.ReadsEstimate {
	params := url.Values{"q": {readsSite + " " + title}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readsSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return types.ProtectedReads()
	}
	setUserAgent(req, c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return types.ProtectedReads()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.ProtectedReads()
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return types.ProtectedReads()
	}

	estimate := types.ProtectedReads()
	doc.Find("a.result__snippet").EachWithBreak(func(i int, snippet *goquery.Selection) bool {
		if i >= maxReadsResults {
			return false
		}
		m := readsPattern.FindStringSubmatch(snippet.Text())
		if m == nil {
			return true
		}
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			estimate = types.ReadsOf(n)
			return false
		}
		return true
	})

	return estimate
}
