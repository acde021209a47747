package model

// RemovedScenario is a scenario judged redundant, with the human-readable
// justification and the ID of the kept scenario it duplicates. KeptID is -1
// when the authority was a chunk-level LLM judgment rather than a pairwise
// match.
type RemovedScenario struct {
	Scenario
	Reason string `json:"reason"`
	KeptID int    `json:"-"`
}

// DedupResult is the final partition of the input set. Kept and Removed
// together always cover the original scenarios exactly once each, and both
// preserve original relative order.
type DedupResult struct {
	RunID       string            `json:"run_id,omitempty"`
	Kept        []Scenario        `json:"features"`
	Removed     []RemovedScenario `json:"removed"`
	NeedsReview []string          `json:"needs_review,omitempty"`
}
