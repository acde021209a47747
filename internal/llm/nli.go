package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillforge/winnow/internal/core/common"
	"github.com/quillforge/winnow/internal/core/model"
)

// LLMNLIClassifier does zero-shot natural language inference through a chat
// model, standing in for a dedicated NLI model.
type LLMNLIClassifier struct {
	LLM LLMClient
}

func NewLLMNLIClassifier(client LLMClient) *LLMNLIClassifier {
	return &LLMNLIClassifier{LLM: client}
}

func (c *LLMNLIClassifier) Classify(ctx context.Context, premise, hypothesis string) (model.NLIJudgment, error) {
	prompt := fmt.Sprintf(`You are a natural language inference classifier.
Given a premise and a hypothesis, decide whether the hypothesis is entailed
by, contradicts, or is neutral with respect to the premise.

Premise: %s
Hypothesis: %s

Return a JSON object with "label" (one of "ENTAILMENT", "CONTRADICTION",
"NEUTRAL") and "confidence" (float between 0 and 1).
Example: {"label": "ENTAILMENT", "confidence": 0.92}
Return only valid JSON, no commentary.`, premise, hypothesis)

	response, err := c.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.NLIJudgment{}, fmt.Errorf("failed to generate NLI judgment: %w", err)
	}

	result, err := common.ParseJSON[model.NLIJudgment](response)
	if err != nil {
		return model.NLIJudgment{}, fmt.Errorf("failed to parse NLI judgment: %w", err)
	}

	result.Label = strings.ToUpper(strings.TrimSpace(result.Label))
	switch result.Label {
	case model.NLIEntailment, model.NLIContradiction, model.NLINeutral:
	default:
		return model.NLIJudgment{}, fmt.Errorf("%w: unknown NLI label %q", common.ErrResponseValidation, result.Label)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return model.NLIJudgment{}, fmt.Errorf("%w: confidence %f out of range", common.ErrResponseValidation, result.Confidence)
	}

	return result, nil
}
