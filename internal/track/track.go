// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package track runs the sequential collection pipeline: every source is
// queried for every publication, one publication at a time, with a fixed
// pause between publications as a courtesy to the third-party rate
// limits. Nothing runs in parallel and nothing is retried; the only
// shared state across publications is the read-only title cache built
// before the loop starts.
package track

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aichikawa/pubtrack/internal/aggregate"
	"github.com/aichikawa/pubtrack/internal/sentiment"
	"github.com/aichikawa/pubtrack/internal/titlecache"
	"github.com/aichikawa/pubtrack/pkg/types"
)

// RegistryStats fetches authoritative view/download counts for a DOI.
type RegistryStats interface {
	Stats(ctx context.Context, doi string) (views, downloads types.Count)
}

// MentionSource fetches the social-mention bundle for a DOI.
type MentionSource interface {
	Mentions(ctx context.Context, doi string) types.SocialSignal
}

// ForumSource finds the top discussion thread for a title.
type ForumSource interface {
	Discussion(ctx context.Context, title string) *types.ForumSignal
}

// ReadsSource estimates third-party reads for a title.
type ReadsSource interface {
	Estimate(ctx context.Context, title string) types.ReadsEstimate
}

// Tracker holds the collectors and the per-run title cache.
type Tracker struct {
	Registry   RegistryStats
	Mentions   MentionSource
	Forum      ForumSource
	Reads      ReadsSource
	Cache      *titlecache.Cache
	Classifier *sentiment.Classifier

	// Pause is the delay after each publication.
	Pause time.Duration
}

// Collect runs the pipeline over the fixed publication list and returns
// one MetricRecord per publication, in input order. Individual source
// failures surface as sentinel values inside the records; Collect itself
// never fails.
func (t *Tracker) Collect(ctx context.Context, pubs []types.Publication, w io.Writer) []types.MetricRecord {
	records := make([]types.MetricRecord, 0, len(pubs))

	for i, pub := range pubs {
		fmt.Fprintf(w, "[%d/%d] %s (%s)\n", i+1, len(pubs), pub.ShortTitle(60), pub.Platform)

		var in aggregate.Inputs

		switch pub.Platform {
		case types.PlatformZenodo:
			in.Views, in.Downloads = t.Registry.Stats(ctx, pub.DOI)
		case types.PlatformEngrxiv:
			// No per-record API: downloads come from the scraped cache.
			// The resolved value conflates "no match" with zero, and
			// views stay absent.
			in.Downloads = types.KnownCount(titlecache.Resolve(pub.Title, t.Cache))
		}

		in.Social = t.Mentions.Mentions(ctx, pub.DOI)
		in.Forum = t.Forum.Discussion(ctx, pub.Title)
		in.Reads = t.Reads.Estimate(ctx, pub.Title)

		records = append(records, aggregate.BuildRecord(pub, in, t.Classifier))

		if t.Pause > 0 {
			select {
			case <-ctx.Done():
				return records
			case <-time.After(t.Pause):
			}
		}
	}

	return records
}
