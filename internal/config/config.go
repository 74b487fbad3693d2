// Package config holds the runtime configuration for lazystage.
//
// Everything here is populated from command-line flags. The application
// deliberately keeps no configuration file and no cache across runs; the
// repository's own on-disk metadata is the only persisted state it touches.
package config

import (
	"fmt"

	"github.com/chmouel/lazystage/internal/theme"
)

// AppConfig defines the lazystage runtime options.
type AppConfig struct {
	RepoPath     string // worktree to open; empty means current directory
	Theme        string // theme name, see internal/theme
	HistoryLimit int    // max commits fetched for the History view
	AutoRefresh  bool   // watch the git dir and refresh on changes
	DebugLog     string // debug log file path, empty disables logging
	ShowIcons    bool   // render Nerd Font file icons in the Files view
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:        theme.DraculaName,
		HistoryLimit: 100,
		ShowIcons:    true,
	}
}

// Validate normalizes and checks flag-derived settings.
func (c *AppConfig) Validate() error {
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 100
	}
	if c.Theme == "" {
		c.Theme = theme.DraculaName
	}
	if theme.ByName(c.Theme) == nil {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}
