// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aichikawa/pubtrack/pkg/types"
)

func TestClassifyEmptyInput(t *testing.T) {
	c := New()
	assert.Equal(t, types.SentimentNA, c.Classify(""))
}

func TestClassifyNilClassifier(t *testing.T) {
	var c *Classifier
	assert.Equal(t, types.SentimentNA, c.Classify("anything"))
	assert.Equal(t, types.SentimentNA, (&Classifier{}).Classify("anything"))
}

func TestClassifyPolarity(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want types.SentimentLabel
	}{
		{"clearly positive", "This paper is brilliant, I love the approach and the results are great.", types.SentimentPositive},
		{"clearly negative", "This is terrible, awful work and a horrible waste of time.", types.SentimentNegative},
		{"neutral statement", "The paper has twelve pages and three tables.", types.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}
