package strategy

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/quillforge/winnow/internal/core/common"
	"github.com/quillforge/winnow/internal/core/contrast"
	"github.com/quillforge/winnow/internal/core/embed"
	"github.com/quillforge/winnow/internal/core/model"
)

// Cosine is the whole-scenario cosine-threshold strategy: embed every
// scenario once, scan all unordered pairs, and call a pair duplicate when
// similarity clears the threshold and the contrast guard stays silent.
type Cosine struct {
	Embedder   *embed.Provider
	Guard      *contrast.Guard
	Threshold  float64
	Timeout    time.Duration
	MaxRetries int
}

func (s *Cosine) Name() string { return "cosine" }

func (s *Cosine) Evaluate(ctx context.Context, scenarios []model.Scenario) (Outcome, error) {
	out := Outcome{Removals: make(map[int]Removal)}

	// Empty scenarios cannot be embedded; they are kept, never merged.
	var embeddable []model.Scenario
	var texts []string
	for _, sc := range scenarios {
		if sc.Given == "" && sc.When == "" && sc.Then == "" {
			log.Printf("scenario %d has no text, skipping comparison", sc.ID)
			out.NeedsReview = append(out.NeedsReview,
				fmt.Sprintf("scenario %d skipped: empty text", sc.ID))
			continue
		}
		embeddable = append(embeddable, sc)
		texts = append(texts, sc.Text())
	}
	if len(embeddable) < 2 {
		return out, nil
	}

	vecs, err := s.embedAll(ctx, texts)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to embed scenarios: %w", err)
	}

	for i := 0; i < len(embeddable); i++ {
		for j := i + 1; j < len(embeddable); j++ {
			sim := common.Cosine(vecs[i], vecs[j])
			if sim <= s.Threshold {
				continue
			}

			a, b := embeddable[i], embeddable[j]
			if hit, rule := s.Guard.IsContrast(a, b); hit {
				out.Verdicts = append(out.Verdicts, model.PairVerdict{
					A: a.ID, B: b.ID, Score: sim,
					Relation: model.RelationContradiction,
					Reason:   fmt.Sprintf("opposite outcome markers %q/%q", rule.A, rule.B),
				})
				continue
			}

			out.Verdicts = append(out.Verdicts, model.PairVerdict{
				A: a.ID, B: b.ID, Score: sim,
				Relation: model.RelationDuplicate,
				Reason:   fmt.Sprintf("cosine similarity %.3f above threshold %.2f", sim, s.Threshold),
			})
		}
	}

	for member, c := range collapseDuplicates(out.Verdicts) {
		out.Removals[member] = Removal{
			KeptID: c.Rep,
			Reason: fmt.Sprintf("semantic duplicate of scenario %d (similarity %.3f)", c.Rep, c.Score),
		}
	}

	return out, nil
}

func (s *Cosine) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	var vecs [][]float32
	err := common.Retry(ctx, s.MaxRetries, func() error {
		cctx, cancel := context.WithTimeout(ctx, s.Timeout)
		defer cancel()

		v, err := s.Embedder.EmbedBatch(cctx, texts)
		if err != nil {
			return err
		}
		vecs = v
		return nil
	})
	return vecs, err
}
