package strategy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/quillforge/winnow/internal/core/common"
	"github.com/quillforge/winnow/internal/core/embed"
	"github.com/quillforge/winnow/internal/core/model"
	"github.com/quillforge/winnow/internal/llm"
)

var clauseKinds = []string{"given", "when", "then"}

// NLI compares scenarios clause by clause (Given-Given, When-When,
// Then-Then). Cosine similarity over clause embeddings prefilters the pairs,
// then an NLI classifier labels the survivors. Contradiction labels
// supersede the keyword contrast guard entirely. By default the strategy
// reports likely duplicates for confirmation instead of removing them;
// AutoRemove opts in to collapsing.
type NLI struct {
	Embedder   *embed.Provider
	Classifier llm.NLIClient

	// Prefilter discards clause pairs below this similarity without paying
	// for classification. Threshold is the stricter cutoff a pair must also
	// clear to count as a duplicate.
	Prefilter  float64
	Threshold  float64
	AutoRemove bool
	Timeout    time.Duration
	MaxRetries int
}

func (s *NLI) Name() string { return "cosine_nli" }

func (s *NLI) Evaluate(ctx context.Context, scenarios []model.Scenario) (Outcome, error) {
	out := Outcome{Removals: make(map[int]Removal)}

	clauseVecs, err := s.embedClauses(ctx, scenarios)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to embed clauses: %w", err)
	}

	for i := 0; i < len(scenarios); i++ {
		for j := i + 1; j < len(scenarios); j++ {
			verdict, ok, err := s.judgePair(ctx, scenarios[i], scenarios[j], clauseVecs)
			if err != nil {
				return Outcome{}, err
			}
			if ok {
				out.Verdicts = append(out.Verdicts, verdict)
			}
		}
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
	}

	if s.AutoRemove {
		for member, c := range collapseDuplicates(out.Verdicts) {
			out.Removals[member] = Removal{
				KeptID: c.Rep,
				Reason: fmt.Sprintf("entailment duplicate of scenario %d (similarity %.3f)", c.Rep, c.Score),
			}
		}
	} else {
		for _, v := range out.Verdicts {
			if v.Relation == model.RelationDuplicate {
				out.NeedsReview = append(out.NeedsReview, fmt.Sprintf(
					"scenarios %d and %d likely duplicates (similarity %.3f) - confirm before removal",
					v.A, v.B, v.Score))
			}
		}
	}

	return out, nil
}

// judgePair compares the three clause pairs of two scenarios and folds the
// clause-level labels into one relation. The bool is false for pairs that
// never cleared the prefilter (implicitly distinct, no verdict recorded).
// A clause below the prefilter short-circuits the whole pair, so a
// contradiction in a later clause behind a dissimilar earlier one is never
// surfaced as CONTRADICTION. A dead classification backend is the only
// error surfaced; per-pair failures degrade to UNCERTAIN.
func (s *NLI) judgePair(ctx context.Context, a, b model.Scenario, vecs map[string][]float32) (model.PairVerdict, bool, error) {
	aClauses := [3]string{a.Given, a.When, a.Then}
	bClauses := [3]string{b.Given, b.When, b.Then}

	compared := 0
	entailed := 0
	minSim, maxSim := 1.0, 0.0
	minConf := 1.0
	uncertain := false

	for k, kind := range clauseKinds {
		ca, cb := aClauses[k], bClauses[k]
		if ca == "" || cb == "" {
			continue
		}

		sim := common.Cosine(vecs[clauseKey(a.ID, kind)], vecs[clauseKey(b.ID, kind)])
		if sim <= s.Prefilter {
			// Clearly unrelated clause; the pair cannot be a duplicate.
			return model.PairVerdict{}, false, nil
		}
		compared++
		if sim < minSim {
			minSim = sim
		}
		if sim > maxSim {
			maxSim = sim
		}

		judgment, err := s.classify(ctx, ca, cb)
		if err != nil {
			if classifyFatal(err) {
				return model.PairVerdict{}, false, fmt.Errorf("NLI backend unavailable: %w", err)
			}
			log.Printf("NLI classification failed for scenarios %d/%d (%s): %v", a.ID, b.ID, kind, err)
			uncertain = true
			continue
		}

		switch judgment.Label {
		case model.NLIContradiction:
			return model.PairVerdict{
				A: a.ID, B: b.ID, Score: sim,
				Relation: model.RelationContradiction,
				Reason: fmt.Sprintf("%s clauses contradict (confidence %.2f)",
					kind, judgment.Confidence),
			}, true, nil
		case model.NLIEntailment:
			entailed++
			if judgment.Confidence < minConf {
				minConf = judgment.Confidence
			}
		default:
			uncertain = true
		}
	}

	if compared == 0 {
		return model.PairVerdict{}, false, nil
	}

	if !uncertain && entailed == compared && minSim > s.Threshold {
		return model.PairVerdict{
			A: a.ID, B: b.ID, Score: minSim,
			Relation: model.RelationDuplicate,
			Reason: fmt.Sprintf("all clauses entailed (similarity %.3f, confidence %.2f)",
				minSim, minConf),
		}, true, nil
	}

	return model.PairVerdict{
		A: a.ID, B: b.ID, Score: maxSim,
		Relation: model.RelationUncertain,
		Reason:   "similar but unclear",
	}, true, nil
}

func (s *NLI) classify(ctx context.Context, premise, hypothesis string) (model.NLIJudgment, error) {
	var judgment model.NLIJudgment
	err := common.Retry(ctx, s.MaxRetries, func() error {
		cctx, cancel := context.WithTimeout(ctx, s.Timeout)
		defer cancel()

		j, err := s.Classifier.Classify(cctx, premise, hypothesis)
		if err != nil {
			return err
		}
		judgment = j
		return nil
	})
	return judgment, err
}

// embedClauses embeds every non-empty clause of every scenario in one
// cached batch, keyed by scenario ID and clause kind.
func (s *NLI) embedClauses(ctx context.Context, scenarios []model.Scenario) (map[string][]float32, error) {
	var keys []string
	var texts []string
	for _, sc := range scenarios {
		for k, clause := range [3]string{sc.Given, sc.When, sc.Then} {
			if clause == "" {
				continue
			}
			keys = append(keys, clauseKey(sc.ID, clauseKinds[k]))
			texts = append(texts, clause)
		}
	}
	if len(texts) == 0 {
		return map[string][]float32{}, nil
	}

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
	if err != nil {
		return nil, err
	}

	byKey := make(map[string][]float32, len(keys))
	for i, k := range keys {
		byKey[k] = vecs[i]
	}
	return byKey, nil
}

func clauseKey(id int, kind string) string {
	return fmt.Sprintf("%d:%s", id, kind)
}

// classifyFatal reports whether an NLI failure should abort the run rather
// than degrade one pair.
func classifyFatal(err error) bool {
	return errors.Is(err, common.ErrProviderUnavailable)
}
