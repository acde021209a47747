package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFullConfig(t *testing.T) {
	content := `
[llm]
provider = "openai"
model = "gpt-4o-mini"
embedding_model = "text-embedding-3-small"

[dedup]
strategy = "llm"
threshold = 0.85
batch_size = 25

[contrast]
replace_defaults = true

[[contrast.rules]]
a = "locked"
b = "unlocked"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "llm", cfg.Dedup.Strategy)
	assert.Equal(t, 0.85, cfg.Dedup.Threshold)
	assert.Equal(t, 25, cfg.Dedup.BatchSize)
	assert.True(t, cfg.Contrast.ReplaceDefaults)
	require.Len(t, cfg.Contrast.Rules, 1)
	assert.Equal(t, "locked", cfg.Contrast.Rules[0].A)

	// Values the file omits keep their defaults.
	assert.Equal(t, 0.6, cfg.Dedup.PrefilterThreshold)
	assert.Equal(t, 3, cfg.Dedup.MaxRetries)
	assert.Equal(t, 4, cfg.Dedup.ConcurrencyLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "cosine", cfg.Dedup.Strategy)
	assert.Equal(t, 0.9, cfg.Dedup.Threshold)
	assert.Equal(t, 50, cfg.Dedup.BatchSize)
	assert.False(t, cfg.Dedup.AutoRemove)
	assert.Equal(t, 60, cfg.Dedup.RequestTimeoutSeconds)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("LLM_MODEL", "claude-sonnet-4-20250514")
	t.Setenv("DEDUP_STRATEGY", "llm")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.Equal(t, "llm", cfg.Dedup.Strategy)
}
