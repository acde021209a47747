package model

// ReviewedScenario is one entry in the "removed" list of an LLM review
// response.
type ReviewedScenario struct {
	Given  string `json:"given"`
	When   string `json:"when"`
	Then   string `json:"then"`
	Reason string `json:"reason"`
}

// ChunkReview matches the structured response the LLM is instructed to
// return for one chunk of scenarios: the ones to keep under "features"
// and the ones to drop under "removed".
type ChunkReview struct {
	Features []Scenario         `json:"features"`
	Removed  []ReviewedScenario `json:"removed"`
}

// NLIJudgment matches the structured response of the zero-shot NLI
// classification call.
type NLIJudgment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

const (
	NLIEntailment    = "ENTAILMENT"
	NLIContradiction = "CONTRADICTION"
	NLINeutral       = "NEUTRAL"
)
