package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillforge/winnow/internal/core/model"
)

func TestNewAssignsDenseIDs(t *testing.T) {
	s := New([]model.Scenario{
		{Given: "a", When: "b", Then: "c"},
		{Given: "a", When: "b", Then: "c"}, // identical text, distinct entity
		{Given: "x", When: "y", Then: "z"},
	})

	assert.Equal(t, 3, s.Len())
	for i, sc := range s.All() {
		assert.Equal(t, i, sc.ID)
	}
}

func TestNewTrimsClauses(t *testing.T) {
	s := New([]model.Scenario{
		{Given: "  user logged in ", When: "\tclick logout", Then: "session ends\n"},
	})

	sc, ok := s.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "user logged in", sc.Given)
	assert.Equal(t, "click logout", sc.When)
	assert.Equal(t, "session ends", sc.Then)
}

func TestGetOutOfRange(t *testing.T) {
	s := New(nil)
	_, ok := s.Get(0)
	assert.False(t, ok)
	_, ok = s.Get(-1)
	assert.False(t, ok)
}

func TestScenarioText(t *testing.T) {
	s := New([]model.Scenario{{Given: "a", When: "b", Then: "c"}})
	sc, _ := s.Get(0)
	assert.Equal(t, "Given a When b Then c", sc.Text())
	assert.Equal(t, "b c", sc.OutcomeText())
}
