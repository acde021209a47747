package contrast

import (
	"strings"

	"github.com/quillforge/winnow/internal/core/model"
)

// DefaultRules are the built-in opposite-outcome marker pairs. Config can
// extend or replace them.
func DefaultRules() []model.ContrastRule {
	return []model.ContrastRule{
		{A: "success", B: "error"},
		{A: "approve", B: "reject"},
		{A: "completed", B: "failed"},
		{A: "allow", B: "deny"},
		{A: "green", B: "red"},
		{A: "enabled", B: "disabled"},
		{A: "true", B: "false"},
		{A: "valid", B: "invalid"},
		{A: "accepted", B: "rejected"},
		{A: "active", B: "inactive"},
		{A: "pass", B: "fail"},
		{A: "positive", B: "negative"},
		{A: "granted", B: "denied"},
		{A: "authenticated", B: "unauthorized"},
	}
}

// Guard vetoes similarity-based merges between scenarios whose When+Then
// text matches opposite members of the same contrast rule. It is a veto
// only, never a reason to merge.
type Guard struct {
	rules []model.ContrastRule
}

// NewGuard builds a guard from custom rules layered over the defaults.
// With replaceDefaults set, only the custom rules apply.
func NewGuard(custom []model.ContrastRule, replaceDefaults bool) *Guard {
	var rules []model.ContrastRule
	if !replaceDefaults {
		rules = DefaultRules()
	}
	rules = append(rules, custom...)
	return &Guard{rules: rules}
}

// IsContrast reports whether a and b match opposite markers of any single
// rule. Both matching the same marker signals nothing.
func (g *Guard) IsContrast(a, b model.Scenario) (bool, model.ContrastRule) {
	ta := strings.ToLower(a.OutcomeText())
	tb := strings.ToLower(b.OutcomeText())

	for _, r := range g.rules {
		ra := strings.ToLower(r.A)
		rb := strings.ToLower(r.B)

		aInA, bInA := matches(ta, ra, rb), matches(ta, rb, ra)
		aInB, bInB := matches(tb, ra, rb), matches(tb, rb, ra)
		if (aInA && bInB) || (bInA && aInB) {
			return true, r
		}
	}
	return false, model.ContrastRule{}
}

// matches checks substring membership of marker in text, discounting hits
// that only occur inside the opposite marker ("valid" inside "invalid").
// Without this, two invalid-outcome scenarios would register as opposites.
func matches(text, marker, opposite string) bool {
	if !strings.Contains(text, marker) {
		return false
	}
	if marker != opposite && strings.Contains(opposite, marker) && strings.Contains(text, opposite) {
		return strings.Contains(strings.ReplaceAll(text, opposite, ""), marker)
	}
	return true
}
