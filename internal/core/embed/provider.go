package embed

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quillforge/winnow/internal/core/common"
	"github.com/quillforge/winnow/internal/llm"
)

// backendBatchSize bounds how many texts go into one upstream request.
const backendBatchSize = 64

// Provider wraps an EmbedderClient with an exact-text cache and bounded
// parallel batch dispatch. Embedding is a pure function of the input text,
// so caching and fan-out are safe.
type Provider struct {
	backend llm.EmbedderClient
	limit   int

	mu    sync.RWMutex
	cache map[string][]float32
}

func NewProvider(backend llm.EmbedderClient, concurrencyLimit int) *Provider {
	if concurrencyLimit < 1 {
		concurrencyLimit = 1
	}
	return &Provider{
		backend: backend,
		limit:   concurrencyLimit,
		cache:   make(map[string][]float32),
	}
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch resolves each text from cache or backend. Repeated texts hit
// the backend once.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	for _, t := range texts {
		if t == "" {
			return nil, fmt.Errorf("%w: empty embedding input", common.ErrEncoding)
		}
	}

	// Collect cache misses, unique.
	p.mu.RLock()
	var misses []string
	seen := make(map[string]bool)
	for _, t := range texts {
		if _, ok := p.cache[t]; !ok && !seen[t] {
			seen[t] = true
			misses = append(misses, t)
		}
	}
	p.mu.RUnlock()

	if len(misses) > 0 {
		if err := p.fill(ctx, misses); err != nil {
			return nil, err
		}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := p.cache[t]
		if !ok {
			return nil, fmt.Errorf("embedding missing for text %q", t)
		}
		vecs[i] = v
	}
	return vecs, nil
}

// fill fetches embeddings for texts in backend-sized slices, in parallel up
// to the concurrency limit, and stores them in the cache.
func (p *Provider) fill(ctx context.Context, texts []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for start := 0; start < len(texts); start += backendBatchSize {
		end := start + backendBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		slice := texts[start:end]

		g.Go(func() error {
			vecs, err := p.backend.EmbedBatch(gctx, slice)
			if err != nil {
				return err
			}
			if len(vecs) != len(slice) {
				return fmt.Errorf("backend returned %d embeddings for %d texts", len(vecs), len(slice))
			}

			p.mu.Lock()
			for i, t := range slice {
				p.cache[t] = vecs[i]
			}
			p.mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}
