package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/quillforge/winnow/internal/core/model"
)

// WriteDuplicateCSV writes the tabular merge report for the cosine-based
// strategies: one row per duplicate pair, highest similarity first. The
// report is informational and independent of the primary output.
func WriteDuplicateCSV(w io.Writer, scenarios []model.Scenario, verdicts []model.PairVerdict) error {
	var dups []model.PairVerdict
	for _, v := range verdicts {
		if v.Relation == model.RelationDuplicate {
			dups = append(dups, v)
		}
	}
	sort.SliceStable(dups, func(i, j int) bool {
		return dups[i].Score > dups[j].Score
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"original_index", "duplicate_index", "similarity", "scenario_A", "scenario_B"}); err != nil {
		return err
	}

	for _, v := range dups {
		a, b := scenarios[v.A], scenarios[v.B]
		row := []string{
			fmt.Sprintf("%d", v.A),
			fmt.Sprintf("%d", v.B),
			fmt.Sprintf("%.4f", v.Score),
			a.Text(),
			b.Text(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
