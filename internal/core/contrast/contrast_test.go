package contrast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillforge/winnow/internal/core/model"
)

func scenario(when, then string) model.Scenario {
	return model.Scenario{When: when, Then: then}
}

func TestOppositeMarkersSignalContrast(t *testing.T) {
	g := NewGuard(nil, false)

	hit, rule := g.IsContrast(
		scenario("credentials submitted", "login passes"),
		scenario("credentials submitted", "login fails"),
	)
	assert.True(t, hit)
	assert.Equal(t, "pass", rule.A)
	assert.Equal(t, "fail", rule.B)
}

func TestSameMarkerBothSidesIsNotContrast(t *testing.T) {
	g := NewGuard(nil, false)

	hit, _ := g.IsContrast(
		scenario("submit form", "request fails with timeout"),
		scenario("retry request", "request fails again"),
	)
	assert.False(t, hit)
}

func TestValidVersusInvalid(t *testing.T) {
	g := NewGuard(nil, false)

	hit, rule := g.IsContrast(
		scenario("valid credentials submitted", "login succeeds"),
		scenario("invalid credentials submitted", "login is refused"),
	)
	assert.True(t, hit)
	assert.Equal(t, "valid", rule.A)
}

func TestBothInvalidIsNotContrast(t *testing.T) {
	// "valid" occurs inside "invalid"; two invalid-input scenarios must not
	// register as opposites.
	g := NewGuard(nil, false)

	hit, _ := g.IsContrast(
		scenario("invalid email entered", "form shows a message"),
		scenario("invalid phone entered", "form shows a message"),
	)
	assert.False(t, hit)
}

func TestCaseInsensitive(t *testing.T) {
	g := NewGuard(nil, false)

	hit, _ := g.IsContrast(
		scenario("request APPROVED by admin", "record saved"),
		scenario("request Rejected by admin", "record discarded"),
	)
	assert.True(t, hit)
}

func TestCustomRulesExtendDefaults(t *testing.T) {
	g := NewGuard([]model.ContrastRule{{A: "locked", B: "unlocked"}}, false)

	hit, rule := g.IsContrast(
		scenario("open the door", "door stays locked"),
		scenario("open the door", "door is unlocked"),
	)
	assert.True(t, hit)
	assert.Equal(t, "locked", rule.A)

	// Defaults still active.
	hit, _ = g.IsContrast(
		scenario("submit", "payment accepted"),
		scenario("submit", "payment rejected"),
	)
	assert.True(t, hit)
}

func TestReplaceDefaults(t *testing.T) {
	g := NewGuard([]model.ContrastRule{{A: "hot", B: "cold"}}, true)

	hit, _ := g.IsContrast(
		scenario("submit", "payment accepted"),
		scenario("submit", "payment rejected"),
	)
	assert.False(t, hit, "default rules should be inactive")
}
