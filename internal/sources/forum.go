// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// forumAPIBase is the HN Algolia search endpoint. Declared as a var so
// tests can substitute an httptest server.
var forumAPIBase = "http://hn.algolia.com/api/v1/search"

const (
	// maxCommentPreviews caps the comments fetched for the top thread.
	maxCommentPreviews = 3

	// previewRunes is the truncation length for comment text.
	previewRunes = 150
)

// markupPattern strips HTML tags from comment bodies.
var markupPattern = regexp.MustCompile(`<[^<]+?>`)

// ForumClient finds the top-ranked discussion thread for a publication
// and collects a few comment previews.
type ForumClient struct {
	Client    *http.Client
	UserAgent string
}

// Discussion searches by the pre-colon segment of the title and returns
// the top hit with up to 3 comment previews, or nil when no thread was
// found or the search failed. A nil result is distinct from a present
// bundle with zero points; callers branch on it.
func (c *ForumClient) Discussion(ctx context.Context, title string) *types.ForumSignal {
	query := strings.TrimSpace(strings.SplitN(title, ":", 2)[0])

	params := url.Values{
		"query": {fmt.Sprintf("%q", query)},
		"tags":  {"story"},
	}

	var body forumSearchResponse
	if !c.getJSON(ctx, forumAPIBase+"?"+params.Encode(), &body) {
		return nil
	}
	if len(body.Hits) == 0 {
		return nil
	}

	best := body.Hits[0]
	signal := &types.ForumSignal{
		StoryID:  best.ObjectID,
		Title:    best.Title,
		Points:   best.Points,
		Comments: best.NumComments,
	}

	// Comment fetch failures degrade to a bundle without previews.
	commentParams := url.Values{
		"tags":        {"comment,story_" + best.ObjectID},
		"hitsPerPage": {fmt.Sprintf("%d", maxCommentPreviews)},
	}
	var comments forumSearchResponse
	if c.getJSON(ctx, forumAPIBase+"?"+commentParams.Encode(), &comments) {
		for _, hit := range comments.Hits {
			signal.Previews = append(signal.Previews, types.CommentPreview{
				Author: hit.Author,
				Text:   cleanComment(hit.CommentText),
			})
		}
	}

	return signal
}

func (c *ForumClient) getJSON(ctx context.Context, reqURL string, v any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false
	}
	setUserAgent(req, c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	return json.NewDecoder(resp.Body).Decode(v) == nil
}

// cleanComment strips markup and truncates to 150 runes with an ellipsis.
func cleanComment(text string) string {
	clean := markupPattern.ReplaceAllString(text, "")
	runes := []rune(clean)
	if len(runes) > previewRunes {
		return string(runes[:previewRunes]) + "..."
	}
	return clean
}

// Forum API JSON structures.
type forumSearchResponse struct {
	Hits []forumHit `json:"hits"`
}

type forumHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	Author      string `json:"author"`
	CommentText string `json:"comment_text"`
}
