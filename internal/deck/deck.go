// Package deck defines the deck specification consumed by the probability
// engines: the deck and hand sizes plus an ordered list of card categories,
// each with the count range that makes an opening hand a success for it.
package deck

import (
	"strings"

	"github.com/iwvelando/deck-odds/pkg/constants"
)

// Category is one named role of cards in the deck.
type Category struct {
	Name        string `json:"name" yaml:"name"`
	Count       int    `json:"count" yaml:"count"`
	Min         int    `json:"min" yaml:"min"`
	Max         int    `json:"max" yaml:"max"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// InRange reports whether drawing hits cards of this category counts as a
// success.
func (c Category) InRange(hits int) bool {
	return hits >= c.Min && hits <= c.Max
}

// Spec is an immutable description of a deck and the opening hand drawn from
// it. Cards not covered by any category form an implicit "other" bucket
// that is never a success target.
type Spec struct {
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	DeckSize    int        `json:"deckSize" yaml:"deckSize"`
	HandSize    int        `json:"handSize" yaml:"handSize"`
	FirstPlayer bool       `json:"firstPlayer" yaml:"firstPlayer"`
	Categories  []Category `json:"categories" yaml:"categories"`
}

// NewSpec builds a Spec holding its own copy of categories.
func NewSpec(name string, deckSize, handSize int, firstPlayer bool, categories []Category) Spec {
	return Spec{
		Name:        name,
		DeckSize:    deckSize,
		HandSize:    handSize,
		FirstPlayer: firstPlayer,
		Categories:  append([]Category(nil), categories...),
	}
}

// Clone returns a deep copy of the spec.
func (s Spec) Clone() Spec {
	return NewSpec(s.Name, s.DeckSize, s.HandSize, s.FirstPlayer, s.Categories)
}

// DefaultHandSize is the suggested opening hand size for the player going
// first or second. The engines only ever see the resolved HandSize.
func DefaultHandSize(firstPlayer bool) int {
	if firstPlayer {
		return constants.DefaultHandSizeFirst
	}
	return constants.DefaultHandSizeSecond
}

// LabeledCount is the number of cards covered by a category.
func (s Spec) LabeledCount() int {
	total := 0
	for _, c := range s.Categories {
		total += c.Count
	}
	return total
}

// OtherCount is the size of the implicit bucket of unlisted cards. It is
// zero when the categories cover the whole deck or more.
func (s Spec) OtherCount() int {
	if other := s.DeckSize - s.LabeledCount(); other > 0 {
		return other
	}
	return 0
}

// Names returns the category names in deck order.
func (s Spec) Names() []string {
	names := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		names[i] = c.Name
	}
	return names
}

// Validate checks the input constraints shared by both engines and returns
// a *ConfigError describing the first violation found.
func (s Spec) Validate() error {
	if s.HandSize < 0 {
		return configErr("", ErrNegativeHandSize, "hand size %d", s.HandSize)
	}
	if s.HandSize > s.DeckSize {
		return configErr("", ErrHandExceedsDeck, "hand size %d, deck size %d", s.HandSize, s.DeckSize)
	}

	seen := make(map[string]struct{}, len(s.Categories))
	total := 0
	for _, c := range s.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return configErr("", ErrEmptyCategoryName, "")
		}
		if _, dup := seen[c.Name]; dup {
			return configErr(c.Name, ErrDuplicateCategory, "")
		}
		seen[c.Name] = struct{}{}

		if c.Count < 0 {
			return configErr(c.Name, ErrNegativeCount, "count %d", c.Count)
		}
		if c.Min < 0 || c.Min > c.Max {
			return configErr(c.Name, ErrInvalidRange, "min %d, max %d", c.Min, c.Max)
		}
		if c.Count > s.DeckSize {
			return configErr(c.Name, ErrCountExceedsDeck, "count %d, deck size %d", c.Count, s.DeckSize)
		}
		total += c.Count
	}
	if total > s.DeckSize {
		return configErr("", ErrCountsExceedDeck, "counts sum to %d, deck size %d", total, s.DeckSize)
	}
	return nil
}
