// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentiment maps short text snippets to coarse display labels.
// The labels annotate comment previews in the report; they are not a
// scored or calibrated signal.
package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// Polarity thresholds on the analyzer's compound score in [-1, 1].
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Classifier wraps a lexicon/rule-based polarity analyzer.
type Classifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// New returns a ready classifier.
func New() *Classifier {
	return &Classifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Classify returns the label for text. Empty input and an unconstructed
// classifier both yield N/A, matching the fail-soft policy of the source
// adapters.
func (c *Classifier) Classify(text string) types.SentimentLabel {
	if text == "" {
		return types.SentimentNA
	}
	if c == nil || c.analyzer == nil {
		return types.SentimentNA
	}

	polarity := c.analyzer.PolarityScores(text).Compound
	switch {
	case polarity > positiveThreshold:
		return types.SentimentPositive
	case polarity < negativeThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}
