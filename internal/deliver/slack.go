// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deliver uploads finished report artifacts to a Slack channel.
//
// Delivery is an optional capability: a missing token or channel simply
// disables it, and one failed upload never blocks the remaining ones or
// the run itself.
package deliver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// Client wraps the Slack API for artifact uploads.
type Client struct {
	api       *slack.Client
	channelID string
}

// New builds a delivery client from the delivery configuration. The
// returned client is disabled (but safe to call) when the token or
// channel is absent.
func New(cfg types.DeliveryConfig) *Client {
	c := &Client{channelID: cfg.ChannelID}
	if cfg.BotToken != "" {
		c.api = slack.New(cfg.BotToken)
	}
	return c
}

// Enabled reports whether uploads can be attempted.
func (c *Client) Enabled() bool {
	return c != nil && c.api != nil && c.channelID != ""
}

// Diagnose checks the connection before a run: token validity, bot
// identity, channel access, and channel membership. It writes a readable
// transcript to w and returns whether delivery is expected to work. A
// negative diagnosis downgrades delivery; it never aborts collection.
func (c *Client) Diagnose(ctx context.Context, w io.Writer) bool {
	fmt.Fprintln(w, "slack connection diagnosis...")

	if c == nil || c.api == nil {
		fmt.Fprintln(w, "  token is missing; delivery disabled")
		return false
	}

	auth, err := c.api.AuthTestContext(ctx)
	if err != nil {
		fmt.Fprintf(w, "  auth failed: %v\n", err)
		fmt.Fprintln(w, "  token is invalid; reinstall the app and check the token")
		return false
	}
	fmt.Fprintf(w, "  authenticated as %s (ID %s)\n", auth.User, auth.UserID)

	if c.channelID == "" {
		fmt.Fprintln(w, "  channel ID is missing; skipping channel check")
		return true
	}

	info, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: c.channelID,
	})
	if err != nil {
		fmt.Fprintf(w, "  channel check failed: %v\n", err)
		return false
	}

	if !info.IsMember {
		fmt.Fprintf(w, "  bot is not a member of #%s; invite it with /invite @%s\n", info.Name, auth.User)
		return false
	}

	fmt.Fprintf(w, "  bot is a member of #%s; ready to post\n", info.Name)
	return true
}

// Upload sends one artifact file to the channel as a titled file upload.
func (c *Client) Upload(ctx context.Context, path, title string) error {
	if !c.Enabled() {
		return fmt.Errorf("delivery not configured")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("artifact %s: %w", path, err)
	}

	_, err = c.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:  c.channelID,
		File:     path,
		FileSize: int(info.Size()),
		Filename: filepath.Base(path),
		Title:    title,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", title, err)
	}
	return nil
}

// UploadAll sends each present artifact in order, logging per-file
// outcomes to w. A failed or missing artifact does not block the rest.
func (c *Client) UploadAll(ctx context.Context, artifacts []Artifact, w io.Writer) {
	for _, a := range artifacts {
		if a.Path == "" {
			continue
		}
		if err := c.Upload(ctx, a.Path, a.Title); err != nil {
			fmt.Fprintf(w, "warning: upload failed for %s: %v\n", a.Title, err)
			continue
		}
		fmt.Fprintf(w, "uploaded %s\n", a.Title)
	}
}

// Artifact pairs a file path with its upload title.
type Artifact struct {
	Path  string
	Title string
}
