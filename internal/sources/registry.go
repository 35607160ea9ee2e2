// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// registryAPIBase is the Zenodo records search endpoint. Declared as a
// var so tests can substitute an httptest server.
var registryAPIBase = "https://zenodo.org/api/records"

// RegistryClient fetches authoritative per-record view and download
// counts from the registry API.
type RegistryClient struct {
	Client    *http.Client
	UserAgent string
}

// Stats returns the unique view and download counts for a DOI. Any
// failure, or a DOI with no matching record, yields two absent Counts.
func (c *RegistryClient) Stats(ctx context.Context, doi string) (views, downloads types.Count) {
	params := url.Values{"q": {fmt.Sprintf("doi:%q", doi)}}
	reqURL := registryAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Count{}, types.Count{}
	}
	setUserAgent(req, c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return types.Count{}, types.Count{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Count{}, types.Count{}
	}

	var body registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.Count{}, types.Count{}
	}

	if body.Hits.Total == 0 || len(body.Hits.Hits) == 0 {
		return types.Count{}, types.Count{}
	}

	stats := body.Hits.Hits[0].Stats
	return types.KnownCount(stats.UniqueViews), types.KnownCount(stats.UniqueDownloads)
}

// Registry API JSON structures.
type registryResponse struct {
	Hits struct {
		Total int `json:"total"`
		Hits  []struct {
			Stats struct {
				UniqueViews     int `json:"unique_views"`
				UniqueDownloads int `json:"unique_downloads"`
			} `json:"stats"`
		} `json:"hits"`
	} `json:"hits"`
}
