// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aichikawa/pubtrack/internal/deliver"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Check the Slack connection and channel membership",
	Long: `Diagnose verifies the configured Slack credentials: it authenticates
with the bot token, looks up the configured channel, and checks that the
bot is a member. Use it to debug delivery before a scheduled run.`,
	RunE: runDiagnose,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	client := deliver.New(cfg.Delivery)
	if !client.Enabled() {
		return fmt.Errorf("slack bot token or channel ID not configured (set PUBTRACK_SLACK_BOT_TOKEN and PUBTRACK_SLACK_CHANNEL_ID, or .secrets/ files)")
	}

	if !client.Diagnose(cmd.Context(), os.Stdout) {
		return fmt.Errorf("slack diagnosis failed")
	}
	return nil
}
