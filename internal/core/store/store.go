package store

import (
	"strings"

	"github.com/quillforge/winnow/internal/core/model"
)

// Store is the canonical in-memory scenario collection for one
// deduplication run. IDs are dense ordinals assigned at ingestion and the
// store is read-only afterwards, so concurrent reads during the scan phase
// need no locking.
type Store struct {
	scenarios []model.Scenario
}

// New ingests raw scenarios in order, trimming clause whitespace and
// assigning ordinal IDs. Identity is the ID, not the text: duplicated
// wording still produces distinct entries.
func New(raw []model.Scenario) *Store {
	scenarios := make([]model.Scenario, len(raw))
	for i, s := range raw {
		scenarios[i] = model.Scenario{
			ID:    i,
			Given: strings.TrimSpace(s.Given),
			When:  strings.TrimSpace(s.When),
			Then:  strings.TrimSpace(s.Then),
		}
	}
	return &Store{scenarios: scenarios}
}

func (s *Store) Len() int {
	return len(s.scenarios)
}

func (s *Store) Get(id int) (model.Scenario, bool) {
	if id < 0 || id >= len(s.scenarios) {
		return model.Scenario{}, false
	}
	return s.scenarios[id], true
}

// All returns the scenarios in ingestion order. Callers must not mutate
// the returned slice.
func (s *Store) All() []model.Scenario {
	return s.scenarios
}
