// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads delivery credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: slack-bot-token, slack-channel-id.
//
// Environment variables override files: Get maps a key like slack-bot-token to
// PUBTRACK_SLACK_BOT_TOKEN and prefers the environment value when it is set.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envPrefix = "PUBTRACK_"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Get returns the value for key, preferring the environment variable form
// (PUBTRACK_ prefix, upper-cased, dashes to underscores) over the file-based
// map. Returns an empty string when neither source has the key.
func Get(secrets map[string]string, key string) string {
	env := envPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return secrets[key]
}
