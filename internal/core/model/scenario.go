package model

import "fmt"

// Scenario is one Given/When/Then behavior description. Identity is the
// ordinal ID assigned at ingestion, not the text: two scenarios with
// identical wording are distinct entities until one is removed.
type Scenario struct {
	ID    int    `json:"-"`
	Given string `json:"given"`
	When  string `json:"when"`
	Then  string `json:"then"`
}

// Text renders the whole scenario as a single comparison unit,
// matching the embedding input format used by the cosine strategy.
func (s Scenario) Text() string {
	return fmt.Sprintf("Given %s When %s Then %s", s.Given, s.When, s.Then)
}

// OutcomeText is the When+Then portion checked by the contrast guard.
func (s Scenario) OutcomeText() string {
	return fmt.Sprintf("%s %s", s.When, s.Then)
}

// Key is the content triple, used when matching LLM review output
// back to chunk input.
func (s Scenario) Key() string {
	return s.Given + "\x1f" + s.When + "\x1f" + s.Then
}
