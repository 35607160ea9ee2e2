// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deliver

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aichikawa/pubtrack/pkg/types"
)

func TestDisabledWithoutCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.DeliveryConfig
	}{
		{"no token", types.DeliveryConfig{ChannelID: "C123"}},
		{"no channel", types.DeliveryConfig{BotToken: "xoxb-test"}},
		{"nothing", types.DeliveryConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.cfg)
			assert.False(t, c.Enabled())
			assert.Error(t, c.Upload(context.Background(), "x.csv", "Raw Data"))
		})
	}
}

func TestDiagnoseWithoutToken(t *testing.T) {
	var out bytes.Buffer
	c := New(types.DeliveryConfig{ChannelID: "C123"})

	assert.False(t, c.Diagnose(context.Background(), &out))
	assert.Contains(t, out.String(), "token is missing")
}

func TestUploadAllSkipsEmptyPaths(t *testing.T) {
	var out bytes.Buffer
	c := New(types.DeliveryConfig{BotToken: "xoxb-test", ChannelID: "C123"})

	// The PNG slot is empty (image generation failed); the CSV path does
	// not exist, which fails soft with a warning.
	c.UploadAll(context.Background(), []Artifact{
		{Path: "", Title: "Impact Graph"},
		{Path: "does-not-exist.csv", Title: "Raw Data (CSV)"},
	}, &out)

	assert.NotContains(t, out.String(), "Impact Graph")
	assert.Contains(t, out.String(), "warning: upload failed for Raw Data (CSV)")
}
