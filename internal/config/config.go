package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/quillforge/winnow/internal/core/model"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type DedupConfig struct {
	// Strategy is one of "cosine", "cosine_nli", "llm".
	Strategy string `toml:"strategy"`

	// Threshold is the whole-scenario cosine cutoff for the cosine strategy.
	Threshold float64 `toml:"threshold"`

	// PrefilterThreshold discards clearly-unrelated clause pairs before the
	// NLI classification step runs.
	PrefilterThreshold float64 `toml:"prefilter_threshold"`

	// NLIThreshold is the stricter similarity cutoff a clause pair must also
	// clear to be called a duplicate by the NLI strategy.
	NLIThreshold float64 `toml:"nli_threshold"`

	// AutoRemove lets the NLI strategy collapse entailment duplicates instead
	// of only reporting them. Off by default.
	AutoRemove bool `toml:"auto_remove"`

	BatchSize             int `toml:"batch_size"`
	MaxRetries            int `toml:"max_retries"`
	ConcurrencyLimit      int `toml:"concurrency_limit"`
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

type ContrastConfig struct {
	// Rules extends the built-in contrast pairs. With ReplaceDefaults set,
	// Rules stands alone.
	Rules           []model.ContrastRule `toml:"rules"`
	ReplaceDefaults bool                 `toml:"replace_defaults"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Dedup    DedupConfig    `toml:"dedup"`
	Contrast ContrastConfig `toml:"contrast"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Dedup: DedupConfig{
			Strategy:              "cosine",
			Threshold:             0.9,
			PrefilterThreshold:    0.6,
			NLIThreshold:          0.8,
			BatchSize:             50,
			MaxRetries:            3,
			ConcurrencyLimit:      4,
			RequestTimeoutSeconds: 60,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	cfg.applyFloors()

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables where set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		c.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("DEDUP_STRATEGY"); v != "" {
		c.Dedup.Strategy = v
	}
}

// applyFloors backfills zero values left by a sparse config file.
func (c *Config) applyFloors() {
	d := Default().Dedup
	if c.Dedup.Strategy == "" {
		c.Dedup.Strategy = d.Strategy
	}
	if c.Dedup.Threshold == 0 {
		c.Dedup.Threshold = d.Threshold
	}
	if c.Dedup.PrefilterThreshold == 0 {
		c.Dedup.PrefilterThreshold = d.PrefilterThreshold
	}
	if c.Dedup.NLIThreshold == 0 {
		c.Dedup.NLIThreshold = d.NLIThreshold
	}
	if c.Dedup.BatchSize <= 0 {
		c.Dedup.BatchSize = d.BatchSize
	}
	if c.Dedup.MaxRetries == 0 {
		c.Dedup.MaxRetries = d.MaxRetries
	}
	if c.Dedup.ConcurrencyLimit <= 0 {
		c.Dedup.ConcurrencyLimit = d.ConcurrencyLimit
	}
	if c.Dedup.RequestTimeoutSeconds <= 0 {
		c.Dedup.RequestTimeoutSeconds = d.RequestTimeoutSeconds
	}
}
