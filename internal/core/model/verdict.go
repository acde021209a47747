package model

// Relation classifies what a strategy concluded about an unordered
// scenario pair. A pair never examined is implicitly Distinct.
type Relation string

const (
	RelationDuplicate     Relation = "DUPLICATE"
	RelationContradiction Relation = "CONTRADICTION"
	RelationDistinct      Relation = "DISTINCT"
	RelationUncertain     Relation = "UNCERTAIN"
)

// PairVerdict is the per-pair output of a similarity strategy.
// A and B are scenario IDs with A < B.
type PairVerdict struct {
	A        int      `json:"a"`
	B        int      `json:"b"`
	Score    float64  `json:"score"`
	Relation Relation `json:"relation"`
	Reason   string   `json:"reason"`
}

// ContrastRule is an unordered pair of outcome markers. If one scenario's
// When+Then contains one marker and the other scenario's contains the
// opposite marker, the pair is treated as contradictory regardless of
// similarity score.
type ContrastRule struct {
	A string `toml:"a" json:"a"`
	B string `toml:"b" json:"b"`
}
