// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubtrack/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourcesConfig holds settings for the per-publication source adapters.
// Each adapter enforces its own timeout; on expiry the call is treated
// like any other failure and yields the adapter's no-data result.
type SourcesConfig struct {
	HTTPConfig `yaml:",inline"`

	// RegistryTimeout bounds the registry stats API call (default 10s).
	RegistryTimeout time.Duration `json:"registry_timeout" yaml:"registry_timeout"`

	// MentionTimeout bounds the mention-aggregator API call (default 5s).
	MentionTimeout time.Duration `json:"mention_timeout" yaml:"mention_timeout"`

	// ForumTimeout bounds each forum API call (default 5s).
	ForumTimeout time.Duration `json:"forum_timeout" yaml:"forum_timeout"`

	// SearchTimeout bounds the reads-estimate web search (default 5s).
	SearchTimeout time.Duration `json:"search_timeout" yaml:"search_timeout"`

	// ScrapeTimeout bounds the one-time bulk scrape that builds the
	// title cache (default 15s).
	ScrapeTimeout time.Duration `json:"scrape_timeout" yaml:"scrape_timeout"`

	// CacheQuery is the fixed search query for the bulk scrape.
	CacheQuery string `json:"cache_query" yaml:"cache_query"`
}

// TrackerConfig holds settings for the collection pipeline.
type TrackerConfig struct {
	// PublicationsFile is an optional YAML file listing the tracked
	// publications. When empty the built-in list is used.
	PublicationsFile string `json:"publications_file" yaml:"publications_file"`

	// OutputDir is the directory for generated artifacts (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Timezone names the zone for date labels and artifact filenames
	// (default "Asia/Tokyo"; falls back to UTC when unavailable).
	Timezone string `json:"timezone" yaml:"timezone"`

	// PublicationPause is the pause after each publication, a courtesy
	// to the third-party rate limits (default 1s).
	PublicationPause time.Duration `json:"publication_pause" yaml:"publication_pause"`
}

// DeliveryConfig holds the messaging-channel settings. Absence of either
// value disables delivery without aborting the run.
type DeliveryConfig struct {
	// BotToken authenticates against the messaging API.
	BotToken string `json:"bot_token,omitempty" yaml:"bot_token,omitempty"`

	// ChannelID is the destination channel identifier.
	ChannelID string `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
}

// HistoryConfig holds settings for the optional per-run snapshot store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Config groups all component configurations.
type Config struct {
	Sources  SourcesConfig  `json:"sources" yaml:"sources"`
	Tracker  TrackerConfig  `json:"tracker" yaml:"tracker"`
	Delivery DeliveryConfig `json:"delivery" yaml:"delivery"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}
