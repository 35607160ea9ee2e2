// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "slack-bot-token", "  xoxb-abc123  \n")
				writeFile(t, dir, "slack-channel-id", "C0123456789\n")
				return dir
			},
			want: map[string]string{
				"slack-bot-token":  "xoxb-abc123",
				"slack-channel-id": "C0123456789",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "slack-bot-token", "xoxb-valid")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"slack-bot-token": "xoxb-valid",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "slack-channel-id", "C0REAL")
				return dir
			},
			want: map[string]string{
				"slack-channel-id": "C0REAL",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "slack-bot-token", "xoxb-123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"slack-bot-token": "xoxb-123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestGet(t *testing.T) {
	secrets := map[string]string{"slack-bot-token": "xoxb-from-file"}

	t.Run("falls back to file value", func(t *testing.T) {
		assert.Equal(t, "xoxb-from-file", Get(secrets, "slack-bot-token"))
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("PUBTRACK_SLACK_BOT_TOKEN", "xoxb-from-env")
		assert.Equal(t, "xoxb-from-env", Get(secrets, "slack-bot-token"))
	})

	t.Run("blank environment value is ignored", func(t *testing.T) {
		t.Setenv("PUBTRACK_SLACK_BOT_TOKEN", "   ")
		assert.Equal(t, "xoxb-from-file", Get(secrets, "slack-bot-token"))
	})

	t.Run("missing key yields empty string", func(t *testing.T) {
		assert.Empty(t, Get(secrets, "slack-channel-id"))
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
