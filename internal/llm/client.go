package llm

import (
	"context"

	"github.com/quillforge/winnow/internal/core/model"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch must be semantically identical to per-item Embed calls;
	// it exists purely for throughput.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type NLIClient interface {
	// Classify labels the (premise, hypothesis) pair as entailment,
	// contradiction, or neutral with a confidence score.
	Classify(ctx context.Context, premise, hypothesis string) (model.NLIJudgment, error)
}
