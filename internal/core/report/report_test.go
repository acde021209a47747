package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillforge/winnow/internal/core/model"
)

func TestWriteDuplicateCSV(t *testing.T) {
	scenarios := []model.Scenario{
		{ID: 0, Given: "a", When: "b", Then: "c"},
		{ID: 1, Given: "d", When: "e", Then: "f"},
		{ID: 2, Given: "g", When: "h", Then: "i"},
	}
	verdicts := []model.PairVerdict{
		{A: 0, B: 1, Score: 0.91, Relation: model.RelationDuplicate},
		{A: 0, B: 2, Score: 0.88, Relation: model.RelationContradiction},
		{A: 1, B: 2, Score: 0.97, Relation: model.RelationDuplicate},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDuplicateCSV(&buf, scenarios, verdicts))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per duplicate pair")

	assert.Equal(t, []string{"original_index", "duplicate_index", "similarity", "scenario_A", "scenario_B"}, rows[0])

	// Highest similarity first; non-duplicate verdicts excluded.
	assert.Equal(t, []string{"1", "2", "0.9700", "Given d When e Then f", "Given g When h Then i"}, rows[1])
	assert.Equal(t, "0.9100", rows[2][2])
}

func TestWriteDuplicateCSVNoDuplicates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDuplicateCSV(&buf, nil, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
