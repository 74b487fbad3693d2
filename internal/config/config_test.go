package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazystage/internal/theme"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, theme.DraculaName, cfg.Theme)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.True(t, cfg.ShowIcons)
	require.NoError(t, cfg.Validate())
}

func TestValidateNormalizes(t *testing.T) {
	cfg := &AppConfig{Theme: "", HistoryLimit: -5}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, theme.DraculaName, cfg.Theme)
	assert.Equal(t, 100, cfg.HistoryLimit)
}

func TestValidateRejectsUnknownTheme(t *testing.T) {
	cfg := &AppConfig{Theme: "neon-unicorn", HistoryLimit: 10}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neon-unicorn")
}
