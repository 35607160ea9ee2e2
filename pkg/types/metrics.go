// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strconv"

// Count is an integer metric that may be absent. A zero value is the
// "no data" sentinel; a present zero (Known with Value 0) is a genuine
// zero from the source and the two are never mixed.
type Count struct {
	Value int
	Known bool
}

// KnownCount returns a present count.
func KnownCount(n int) Count {
	return Count{Value: n, Known: true}
}

// OrZero returns the value with "no data" coerced to 0. Used by the
// corpus total, which zero-fills missing values.
func (c Count) OrZero() int {
	if !c.Known {
		return 0
	}
	return c.Value
}

// String renders the count for tables: the number, or "-" when absent.
func (c Count) String() string {
	if !c.Known {
		return "-"
	}
	return strconv.Itoa(c.Value)
}

// SentimentLabel is a coarse display annotation for a text snippet.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNA       SentimentLabel = "N/A"
)

// Icon returns the report marker for the label: (+), (-) or (=).
func (s SentimentLabel) Icon() string {
	switch s {
	case SentimentPositive:
		return "(+)"
	case SentimentNegative:
		return "(-)"
	default:
		return "(=)"
	}
}

// ReadsKind tags a ReadsEstimate variant.
type ReadsKind int

const (
	// ReadsUnknown means no estimate was attempted.
	ReadsUnknown ReadsKind = iota

	// ReadsNumber means a numeric estimate was recovered.
	ReadsNumber

	// ReadsProtected means the search ran but no number was visible,
	// either because the profile hides its stats or because the search
	// itself failed. Distinct from ReadsUnknown and never coerced to 0.
	ReadsProtected
)

// ReadsEstimate is the rough third-party reads figure recovered from web
// search snippets.
type ReadsEstimate struct {
	Kind  ReadsKind
	Value int
}

// ReadsOf returns a numeric estimate.
func ReadsOf(n int) ReadsEstimate {
	return ReadsEstimate{Kind: ReadsNumber, Value: n}
}

// ProtectedReads returns the "Protected" sentinel.
func ProtectedReads() ReadsEstimate {
	return ReadsEstimate{Kind: ReadsProtected}
}

// String renders the estimate for tables and the dataset.
func (r ReadsEstimate) String() string {
	switch r.Kind {
	case ReadsNumber:
		return strconv.Itoa(r.Value)
	case ReadsProtected:
		return "Protected"
	default:
		return "-"
	}
}

// SocialSignal is the mention-aggregator bundle. The zero value is the
// "no data" result (score 0, no mentions, no link).
type SocialSignal struct {
	// Score is the aggregator's attention score.
	Score float64

	// PostMentions counts mentioning posts across tracked outlets.
	PostMentions int

	// TweetMentions counts mentioning micro-blog accounts.
	TweetMentions int

	// DetailsURL links to the aggregator's detail page, when available.
	DetailsURL string
}

// CommentPreview is one truncated forum comment with its sentiment label.
type CommentPreview struct {
	// Author is the comment author; may be empty when the source omits it.
	Author string

	// Text is the markup-stripped comment text, truncated to 150 runes
	// with a trailing ellipsis when cut.
	Text string

	// Sentiment is the derived display label for Text.
	Sentiment SentimentLabel
}

// ForumSignal is the forum-discussion bundle for the top-ranked thread
// matching a publication. Callers receive a nil *ForumSignal when no
// thread was found, which is distinct from a present bundle with zero
// points.
type ForumSignal struct {
	// StoryID is the forum's thread identifier.
	StoryID string

	// Title is the thread title as posted.
	Title string

	// Points is the thread score.
	Points int

	// Comments is the total comment count.
	Comments int

	// Previews holds up to 3 top comments.
	Previews []CommentPreview
}

// MetricRecord is the per-publication aggregation result. Exactly one
// record exists per input publication, in input order. Records are
// created once by the aggregator and consumed read-only by renderers.
type MetricRecord struct {
	DOI      string
	Title    string
	Platform Platform

	// Views and Downloads are the raw platform figures. For the scraped
	// platform, Downloads is always present but conflates "no match"
	// with zero, and Views is never present.
	Views     Count
	Downloads Count

	// DLRate is the computed downloads/views percentage ("25.0%") or
	// "-" when not computable.
	DLRate string

	Social SocialSignal
	Forum  *ForumSignal
	Reads  ReadsEstimate
}

// DisplayRate returns the rate as shown in reports. For platforms other
// than the authoritative registry the views figure is not a comparable
// denominator, so the rate is presented as "N/A" regardless of DLRate.
func (r MetricRecord) DisplayRate() string {
	if r.Platform != PlatformZenodo {
		return "N/A"
	}
	return r.DLRate
}

// CorpusStats summarizes download counts across all records of a run.
type CorpusStats struct {
	// TotalDownloads sums all download counts, zero-filling missing values.
	TotalDownloads int

	// AverageDownloads is the mean over included records. Missing values
	// are dropped, and records whose title matches the exclusion pattern
	// are left out entirely.
	AverageDownloads float64

	// Averaged is the number of records included in the average.
	Averaged int
}
