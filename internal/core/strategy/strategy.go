package strategy

import (
	"context"
	"sort"

	"github.com/quillforge/winnow/internal/core/model"
)

// Removal marks one scenario for the removed set. KeptID is the scenario it
// duplicates, or -1 when the judgment was chunk-level rather than pairwise.
type Removal struct {
	Reason string
	KeptID int
}

// Outcome is what a strategy hands to the result assembler: the verdicts it
// recorded, the removals it authorizes, and notes for human follow-up.
// Strategies that only report (NLI by default) leave Removals empty.
type Outcome struct {
	Verdicts    []model.PairVerdict
	Removals    map[int]Removal
	NeedsReview []string
}

// Strategy is a pluggable deduplication decision procedure over the full
// scenario set.
type Strategy interface {
	Name() string
	Evaluate(ctx context.Context, scenarios []model.Scenario) (Outcome, error)
}

// dupCluster is a removed member's resolution: the representative kept in
// its place and the strongest duplicate-edge score touching the member.
type dupCluster struct {
	Rep   int
	Score float64
}

// collapseDuplicates groups DUPLICATE verdicts into connected components and
// keeps the lowest ID of each component, mirroring connected-component
// grouping elsewhere in the codebase. The result is independent of verdict
// discovery order.
func collapseDuplicates(verdicts []model.PairVerdict) map[int]dupCluster {
	adj := make(map[int][]int)
	for _, v := range verdicts {
		if v.Relation != model.RelationDuplicate {
			continue
		}
		adj[v.A] = append(adj[v.A], v.B)
		adj[v.B] = append(adj[v.B], v.A)
	}

	ids := make([]int, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	visited := make(map[int]bool)
	component := make(map[int]int) // member -> representative
	for _, id := range ids {
		if visited[id] {
			continue
		}
		var members []int
		dfs(id, adj, visited, &members)

		rep := members[0]
		for _, m := range members {
			if m < rep {
				rep = m
			}
		}
		for _, m := range members {
			component[m] = rep
		}
	}

	// Best observed duplicate score per removed member.
	best := make(map[int]float64)
	for _, v := range verdicts {
		if v.Relation != model.RelationDuplicate {
			continue
		}
		if v.Score > best[v.A] {
			best[v.A] = v.Score
		}
		if v.Score > best[v.B] {
			best[v.B] = v.Score
		}
	}

	out := make(map[int]dupCluster)
	for member, rep := range component {
		if member == rep {
			continue
		}
		out[member] = dupCluster{Rep: rep, Score: best[member]}
	}
	return out
}

func dfs(u int, adj map[int][]int, visited map[int]bool, members *[]int) {
	visited[u] = true
	*members = append(*members, u)
	neighbors := append([]int(nil), adj[u]...)
	sort.Ints(neighbors)
	for _, v := range neighbors {
		if !visited[v] {
			dfs(v, adj, visited, members)
		}
	}
}
