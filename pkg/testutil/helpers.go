// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/report"
)

// FindRow finds a category row by name in the report rows.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []report.Row, name string) *report.Row {
	for i := range rows {
		if rows[i].Category == name {
			return &rows[i]
		}
	}
	return nil
}

// StarterDeck is a 40-card deck with a single Starter category of 12 cards
// needing 1 to 3 copies in a 5-card hand.
func StarterDeck() deck.Spec {
	return deck.NewSpec("Starter deck", 40, 5, true, []deck.Category{
		{Name: "Starter", Count: 12, Min: 1, Max: 3},
	})
}
