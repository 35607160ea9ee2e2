// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubtrack CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aichikawa/pubtrack/internal/secrets"
	"github.com/aichikawa/pubtrack/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds delivery credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pubtrack CLI.
var rootCmd = &cobra.Command{
	Use:   "pubtrack",
	Short: "Engagement metrics tracker for research publications",
	Long: `pubtrack collects engagement metrics for a fixed list of research
publications: platform download and view counts, social-mention scores,
forum discussions with comment sentiment, and rough third-party read
estimates. Each run produces a CSV dataset, a Markdown report, and
impact charts, optionally delivered to a Slack channel.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local .env files supply credentials in development; absence
		// is normal everywhere else.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubtrack.yaml or ~/.config/pubtrack/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubtrack")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubtrack"))
		}
	}

	viper.SetDefault("sources.user_agent", "pubtrack/0.1")
	viper.SetDefault("sources.registry_timeout", 10*time.Second)
	viper.SetDefault("sources.mention_timeout", 5*time.Second)
	viper.SetDefault("sources.forum_timeout", 5*time.Second)
	viper.SetDefault("sources.search_timeout", 5*time.Second)
	viper.SetDefault("sources.scrape_timeout", 15*time.Second)
	viper.SetDefault("sources.cache_query", "Aoi Ichikawa")
	viper.SetDefault("tracker.publications_file", "")
	viper.SetDefault("tracker.output_dir", ".")
	viper.SetDefault("tracker.timezone", "Asia/Tokyo")
	viper.SetDefault("tracker.publication_pause", time.Second)
	viper.SetDefault("history.path", "")

	viper.SetEnvPrefix("PUBTRACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration from viper settings and
// the loaded secrets. Delivery credentials come from the environment or
// the secrets directory, never the config file.
func loadConfig() types.Config {
	return types.Config{
		Sources: types.SourcesConfig{
			HTTPConfig: types.HTTPConfig{
				UserAgent: viper.GetString("sources.user_agent"),
			},
			RegistryTimeout: viper.GetDuration("sources.registry_timeout"),
			MentionTimeout:  viper.GetDuration("sources.mention_timeout"),
			ForumTimeout:    viper.GetDuration("sources.forum_timeout"),
			SearchTimeout:   viper.GetDuration("sources.search_timeout"),
			ScrapeTimeout:   viper.GetDuration("sources.scrape_timeout"),
			CacheQuery:      viper.GetString("sources.cache_query"),
		},
		Tracker: types.TrackerConfig{
			PublicationsFile: viper.GetString("tracker.publications_file"),
			OutputDir:        viper.GetString("tracker.output_dir"),
			Timezone:         viper.GetString("tracker.timezone"),
			PublicationPause: viper.GetDuration("tracker.publication_pause"),
		},
		Delivery: types.DeliveryConfig{
			BotToken:  secrets.Get(loadedSecrets, "slack-bot-token"),
			ChannelID: secrets.Get(loadedSecrets, "slack-channel-id"),
		},
		History: types.HistoryConfig{
			Path: viper.GetString("history.path"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
