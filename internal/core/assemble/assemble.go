package assemble

import (
	"github.com/quillforge/winnow/internal/core/model"
	"github.com/quillforge/winnow/internal/core/strategy"
)

// Assemble merges a strategy outcome into the final DedupResult. Scenarios
// are walked in ingestion order, so both kept and removed preserve original
// relative order, and every scenario lands in exactly one of the two sets
// regardless of how the strategy behaved (a failed-open chunk simply has no
// removals, leaving its scenarios kept).
func Assemble(runID string, scenarios []model.Scenario, out strategy.Outcome) model.DedupResult {
	result := model.DedupResult{
		RunID:       runID,
		Kept:        make([]model.Scenario, 0, len(scenarios)),
		Removed:     []model.RemovedScenario{},
		NeedsReview: out.NeedsReview,
	}

	for _, sc := range scenarios {
		removal, removed := out.Removals[sc.ID]
		if !removed {
			result.Kept = append(result.Kept, sc)
			continue
		}

		reason := removal.Reason
		if reason == "" {
			reason = "judged duplicate"
		}
		result.Removed = append(result.Removed, model.RemovedScenario{
			Scenario: sc,
			Reason:   reason,
			KeptID:   removal.KeptID,
		})
	}

	return result
}
