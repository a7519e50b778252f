// Package config provides repository configuration management,
// including reading and writing the hgsc configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultCountDelay is the wait before an authoritative incoming/outgoing
// recount confirms an optimistic counter update
const DefaultCountDelay = 3 * time.Second

// Config represents the hgsc configuration for one repository
type Config struct {
	// UseBookmarks selects bookmarks instead of named branches as the
	// current-ref naming scheme. The two are mutually exclusive.
	UseBookmarks bool `json:"useBookmarks,omitempty"`
	// AutoInOut enables background incoming/outgoing counting
	AutoInOut bool `json:"autoInOut,omitempty"`
	// AutoRefresh enables filesystem-watch driven refresh
	AutoRefresh bool `json:"autoRefresh,omitempty"`
	// HgBinary overrides the hg executable
	HgBinary string `json:"hgBinary,omitempty"`
	// CountDelayMs overrides the optimistic-count confirmation delay
	CountDelayMs int `json:"countDelayMs,omitempty"`
}

// CountDelay returns the configured confirmation delay
func (c *Config) CountDelay() time.Duration {
	if c.CountDelayMs > 0 {
		return time.Duration(c.CountDelayMs) * time.Millisecond
	}
	return DefaultCountDelay
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".hg", "hgsc.json")
}

// Load reads the repository configuration, applying environment overrides.
// A missing file yields the default configuration.
func Load(repoRoot string) (*Config, error) {
	cfg := &Config{AutoInOut: true, AutoRefresh: true}

	data, err := os.ReadFile(configPath(repoRoot))
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if v := os.Getenv("HGSC_USE_BOOKMARKS"); v != "" {
		cfg.UseBookmarks = v == "1" || v == "true"
	}
	if v := os.Getenv("HGSC_HG_BINARY"); v != "" {
		cfg.HgBinary = v
	}
	if v := os.Getenv("HGSC_COUNT_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.CountDelayMs = ms
		}
	}
	if v := os.Getenv("HGSC_AUTO_REFRESH"); v != "" {
		cfg.AutoRefresh = v == "1" || v == "true"
	}

	return cfg, nil
}

// Save writes the repository configuration
func Save(repoRoot string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath(repoRoot), data, 0600)
}
