// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources implements the per-publication collectors for the
// external engagement services.
//
// Every collector follows the same contract: one bounded network call
// per invocation, and a documented no-data result instead of an error.
// Transport failures, timeouts, non-success statuses, and malformed or
// incomplete payloads are all absorbed at the collector boundary; the
// system deliberately does not distinguish "service down" from "service
// changed its response shape". A single unreachable service never aborts
// the run for other publications.
package sources

import (
	"net/http"

	"github.com/aichikawa/pubtrack/internal/httputil"
	"github.com/aichikawa/pubtrack/pkg/types"
)

// Set bundles one collector per source, each with its configured timeout.
type Set struct {
	Registry *RegistryClient
	Mentions *MentionClient
	Forum    *ForumClient
	Reads    *ReadsClient
}

// NewSet builds all collectors from the sources configuration.
func NewSet(cfg types.SourcesConfig) *Set {
	return &Set{
		Registry: &RegistryClient{
			Client:    httputil.NewClient(cfg.RegistryTimeout),
			UserAgent: cfg.UserAgent,
		},
		Mentions: &MentionClient{
			Client:    httputil.NewClient(cfg.MentionTimeout),
			UserAgent: cfg.UserAgent,
		},
		Forum: &ForumClient{
			Client:    httputil.NewClient(cfg.ForumTimeout),
			UserAgent: cfg.UserAgent,
		},
		Reads: &ReadsClient{
			Client:    httputil.NewClient(cfg.SearchTimeout),
			UserAgent: cfg.UserAgent,
		},
	}
}

func setUserAgent(req *http.Request, ua string) {
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}
}
