package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/quillforge/winnow/internal/config"
	"github.com/quillforge/winnow/internal/core/assemble"
	"github.com/quillforge/winnow/internal/core/contrast"
	"github.com/quillforge/winnow/internal/core/embed"
	"github.com/quillforge/winnow/internal/core/model"
	"github.com/quillforge/winnow/internal/core/store"
	"github.com/quillforge/winnow/internal/core/strategy"
	"github.com/quillforge/winnow/internal/llm"
)

// Engine wires the scenario store, the configured similarity strategy, the
// contrast guard, and the result assembler into one deduplication run.
// Providers are injected; the engine holds no global model state.
type Engine struct {
	LLM      llm.LLMClient
	Embedder *embed.Provider
	NLI      llm.NLIClient
	Guard    *contrast.Guard
	Cfg      *config.Config
}

// NewEngine builds an engine from provider clients and configuration.
// A nil embedder client restricts the engine to the LLM review strategy.
func NewEngine(llmClient llm.LLMClient, embedder llm.EmbedderClient, cfg *config.Config) *Engine {
	e := &Engine{
		LLM:   llmClient,
		NLI:   llm.NewLLMNLIClassifier(llmClient),
		Guard: contrast.NewGuard(cfg.Contrast.Rules, cfg.Contrast.ReplaceDefaults),
		Cfg:   cfg,
	}
	if embedder != nil {
		e.Embedder = embed.NewProvider(embedder, cfg.Dedup.ConcurrencyLimit)
	}
	return e
}

// Run deduplicates the raw scenarios with the named strategy (empty name
// means the configured one). The returned outcome carries the raw verdicts
// for reporting; the DedupResult is always a complete partition of the
// input.
func (e *Engine) Run(ctx context.Context, strategyName string, raw []model.Scenario) (model.DedupResult, strategy.Outcome, error) {
	if strategyName == "" {
		strategyName = e.Cfg.Dedup.Strategy
	}
	st, err := e.buildStrategy(strategyName)
	if err != nil {
		return model.DedupResult{}, strategy.Outcome{}, err
	}

	s := store.New(raw)
	out, err := st.Evaluate(ctx, s.All())
	if err != nil {
		return model.DedupResult{}, strategy.Outcome{}, fmt.Errorf("strategy %s failed: %w", st.Name(), err)
	}

	result := assemble.Assemble(uuid.New().String(), s.All(), out)

	rate := 0.0
	if s.Len() > 0 {
		rate = float64(len(result.Removed)) / float64(s.Len()) * 100
	}
	log.Printf("dedup run %s (%s): %d scenarios in, %d kept, %d removed (%.1f%%), %d review notes",
		result.RunID, st.Name(), s.Len(), len(result.Kept), len(result.Removed), rate, len(result.NeedsReview))

	return result, out, nil
}

func (e *Engine) buildStrategy(name string) (strategy.Strategy, error) {
	d := e.Cfg.Dedup
	timeout := time.Duration(d.RequestTimeoutSeconds) * time.Second

	switch name {
	case "cosine":
		if e.Embedder == nil {
			return nil, fmt.Errorf("strategy cosine requires an embedding-capable provider")
		}
		return &strategy.Cosine{
			Embedder:   e.Embedder,
			Guard:      e.Guard,
			Threshold:  d.Threshold,
			Timeout:    timeout,
			MaxRetries: d.MaxRetries,
		}, nil

	case "cosine_nli":
		if e.Embedder == nil {
			return nil, fmt.Errorf("strategy cosine_nli requires an embedding-capable provider")
		}
		return &strategy.NLI{
			Embedder:   e.Embedder,
			Classifier: e.NLI,
			Prefilter:  d.PrefilterThreshold,
			Threshold:  d.NLIThreshold,
			AutoRemove: d.AutoRemove,
			Timeout:    timeout,
			MaxRetries: d.MaxRetries,
		}, nil

	case "llm":
		return &strategy.BatchReview{
			LLM:              e.LLM,
			BatchSize:        d.BatchSize,
			MaxRetries:       d.MaxRetries,
			ConcurrencyLimit: d.ConcurrencyLimit,
			Timeout:          timeout,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported dedup strategy: %s", name)
	}
}
