// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// mentionAPIBase is the Altmetric per-DOI endpoint. Declared as a var so
// tests can substitute an httptest server.
var mentionAPIBase = "https://api.altmetric.com/v1/doi/"

// MentionClient fetches the social-mention bundle for a DOI.
type MentionClient struct {
	Client    *http.Client
	UserAgent string
}

// Mentions returns the mention bundle for a DOI. The API answers 404 for
// a work with no attention data; that and every other failure yield the
// zero-value bundle (score 0).
func (c *MentionClient) Mentions(ctx context.Context, doi string) types.SocialSignal {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mentionAPIBase+doi, nil)
	if err != nil {
		return types.SocialSignal{}
	}
	setUserAgent(req, c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return types.SocialSignal{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SocialSignal{}
	}

	var body mentionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.SocialSignal{}
	}

	return types.SocialSignal{
		Score:         body.Score,
		PostMentions:  body.CitedByPostsCount,
		TweetMentions: body.CitedByTweetersCount,
		DetailsURL:    body.DetailsURL,
	}
}

type mentionResponse struct {
	Score                float64 `json:"score"`
	CitedByPostsCount    int     `json:"cited_by_posts_count"`
	CitedByTweetersCount int     `json:"cited_by_tweeters_count"`
	DetailsURL           string  `json:"details_url"`
}
