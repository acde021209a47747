package strategy

import (
	"context"
	"fmt"
	"sync"

	"github.com/quillforge/winnow/internal/core/model"
)

// MockEmbedder serves fixed vectors keyed by exact input text.
type MockEmbedder struct {
	Vectors map[string][]float32
	Err     error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := m.Vectors[t]
		if !ok {
			return nil, fmt.Errorf("no vector configured for %q", t)
		}
		vecs[i] = v
	}
	return vecs, nil
}

// MockLLM records prompts and delegates responses to GenerateFunc.
type MockLLM struct {
	mu           sync.Mutex
	GenerateFunc func(prompt string) (string, error)
	Calls        []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, prompt)
	f := m.GenerateFunc
	m.mu.Unlock()

	if f == nil {
		return "", fmt.Errorf("no response configured")
	}
	return f(prompt)
}

func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockNLI returns Default for every clause pair unless Judgments overrides
// the premise/hypothesis combination.
type MockNLI struct {
	mu        sync.Mutex
	Judgments map[string]model.NLIJudgment
	Default   model.NLIJudgment
	Err       error
	Calls     int
}

func nliKey(premise, hypothesis string) string {
	return premise + "\x1f" + hypothesis
}

func (m *MockNLI) Classify(ctx context.Context, premise, hypothesis string) (model.NLIJudgment, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.Err != nil {
		return model.NLIJudgment{}, m.Err
	}
	if j, ok := m.Judgments[nliKey(premise, hypothesis)]; ok {
		return j, nil
	}
	return m.Default, nil
}

func (m *MockNLI) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
