package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quillforge/winnow/internal/core/common"
	"github.com/quillforge/winnow/internal/core/model"
	"github.com/quillforge/winnow/internal/llm"
)

// BatchReview drives the LLM review strategy: contiguous chunks of at most
// BatchSize scenarios, one structured decision request per chunk, strict
// partition validation of the response, and fail-open on chunks that never
// validate. Duplicates spanning two chunks are not detected; the decision
// procedure is chunk-local.
type BatchReview struct {
	LLM              llm.LLMClient
	BatchSize        int
	MaxRetries       int
	ConcurrencyLimit int
	Timeout          time.Duration
}

func (s *BatchReview) Name() string { return "llm" }

type chunkResult struct {
	removals map[int]Removal
	note     string
}

func (s *BatchReview) Evaluate(ctx context.Context, scenarios []model.Scenario) (Outcome, error) {
	out := Outcome{Removals: make(map[int]Removal)}
	if len(scenarios) == 0 {
		return out, nil
	}

	batch := s.BatchSize
	if batch < 1 {
		batch = 50
	}
	var chunks [][]model.Scenario
	for start := 0; start < len(scenarios); start += batch {
		end := start + batch
		if end > len(scenarios) {
			end = len(scenarios)
		}
		chunks = append(chunks, scenarios[start:end])
	}

	// Chunks are independent; review them concurrently under the
	// configured limit. A cancelled run applies no partial verdicts.
	results := make([]chunkResult, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.ConcurrencyLimit
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for ci, chunk := range chunks {
		ci, chunk := ci, chunk
		g.Go(func() error {
			res, err := s.reviewChunk(gctx, ci, chunk)
			if err != nil {
				return err
			}
			results[ci] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	for _, res := range results {
		for id, r := range res.removals {
			out.Removals[id] = r
		}
		if res.note != "" {
			out.NeedsReview = append(out.NeedsReview, res.note)
		}
	}
	return out, nil
}

// reviewChunk issues the decision request for one chunk, retrying transient
// failures and invalid responses with backoff. After the retry budget the
// chunk fails open: every scenario kept, flagged for manual follow-up.
// Only an unreachable backend or run cancellation is returned as an error.
func (s *BatchReview) reviewChunk(ctx context.Context, ci int, chunk []model.Scenario) (chunkResult, error) {
	prompt, err := buildReviewPrompt(chunk)
	if err != nil {
		return chunkResult{}, err
	}

	var review model.ChunkReview
	err = common.Retry(ctx, s.MaxRetries, func() error {
		cctx, cancel := context.WithTimeout(ctx, s.Timeout)
		defer cancel()

		response, err := s.LLM.Generate(cctx, prompt)
		if err != nil {
			return fmt.Errorf("failed to generate chunk review: %w", err)
		}

		r, err := common.ParseJSON[model.ChunkReview](response)
		if err != nil {
			return err
		}
		if err := validatePartition(chunk, r); err != nil {
			return err
		}
		review = r
		return nil
	})

	first, last := chunk[0].ID, chunk[len(chunk)-1].ID
	if err != nil {
		if errors.Is(err, common.ErrProviderUnavailable) || ctx.Err() != nil {
			return chunkResult{}, err
		}
		log.Printf("chunk %d (scenarios %d-%d) failed review, keeping all: %v", ci, first, last, err)
		return chunkResult{note: fmt.Sprintf(
			"chunk %d (scenarios %d-%d) kept unmodified, review failed: %v", ci, first, last, err)}, nil
	}

	return chunkResult{removals: matchRemoved(chunk, review.Removed)}, nil
}

func buildReviewPrompt(chunk []model.Scenario) (string, error) {
	scenarioJSON, err := json.MarshalIndent(chunk, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize chunk: %w", err)
	}

	return fmt.Sprintf(`You are a software quality analyst reviewing BDD (Behavior Driven Development) scenarios for duplicates.

Identify and remove scenarios that are semantically duplicate or very similar to others in the list.

IMPORTANT RULES:
1. Consider scenarios duplicates if they describe the SAME behavior or requirement, even if worded differently
2. DO NOT remove scenarios that test opposite outcomes (e.g., success vs. error cases)
3. DO NOT remove scenarios that test different user roles or permissions
4. DO NOT remove scenarios that test different input variations (valid vs. invalid)
5. PRESERVE edge cases and boundary conditions
6. Keep scenarios that test the same feature but with different preconditions

Every input scenario must appear exactly once, either under "features" (kept) or under "removed" with a reason.

Input JSON with %d scenarios:
%s

Output JSON format:
{
  "features": [
    {"given": "...", "when": "...", "then": "..."}
  ],
  "removed": [
    {"given": "...", "when": "...", "then": "...", "reason": "Duplicate of scenario X - same behavior"}
  ]
}

Return only valid JSON, no commentary.`, len(chunk), scenarioJSON), nil
}

// validatePartition rejects a response unless features plus removed is
// exactly the input chunk: no missing, duplicated, or foreign scenarios.
func validatePartition(chunk []model.Scenario, review model.ChunkReview) error {
	counts := make(map[string]int, len(chunk))
	for _, sc := range chunk {
		counts[sc.Key()]++
	}

	spend := func(key, origin string) error {
		if counts[key] == 0 {
			return fmt.Errorf("%w: %s entry not in chunk input (or repeated)", common.ErrResponseValidation, origin)
		}
		counts[key]--
		return nil
	}

	for _, sc := range review.Features {
		if err := spend(reviewKey(sc.Given, sc.When, sc.Then), "kept"); err != nil {
			return err
		}
	}
	for _, r := range review.Removed {
		if err := spend(reviewKey(r.Given, r.When, r.Then), "removed"); err != nil {
			return err
		}
	}

	for _, left := range counts {
		if left != 0 {
			return fmt.Errorf("%w: response dropped %d input scenario(s)", common.ErrResponseValidation, left)
		}
	}
	return nil
}

// matchRemoved resolves each removed response entry back to a scenario ID
// within the chunk. Identical texts resolve first-unused, which is stable
// because chunk order is ingestion order.
// reviewKey normalizes response whitespace before comparing against chunk
// input, which was trimmed at ingestion.
func reviewKey(given, when, then string) string {
	return (model.Scenario{
		Given: strings.TrimSpace(given),
		When:  strings.TrimSpace(when),
		Then:  strings.TrimSpace(then),
	}).Key()
}

func matchRemoved(chunk []model.Scenario, removed []model.ReviewedScenario) map[int]Removal {
	used := make(map[int]bool)
	removals := make(map[int]Removal, len(removed))

	for _, r := range removed {
		key := reviewKey(r.Given, r.When, r.Then)
		for _, sc := range chunk {
			if used[sc.ID] || sc.Key() != key {
				continue
			}
			used[sc.ID] = true

			reason := r.Reason
			if reason == "" {
				reason = "judged duplicate within batch"
			}
			removals[sc.ID] = Removal{KeptID: -1, Reason: "batch-determined: " + reason}
			break
		}
	}
	return removals
}
