package deck

// DefaultCategories returns the standard opening-hand roles with their usual
// counts and ranges for a 40 card deck.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Starter", Count: 12, Min: 1, Max: 3, Description: "Card that starts your main combo or strategy."},
		{Name: "Extender", Count: 9, Min: 0, Max: 3, Description: "Lets you continue or extend your play after your main combo."},
		{Name: "Board Breaker", Count: 7, Min: 0, Max: 3, Description: "Helps deal with the opponent's established board."},
		{Name: "Handtrap", Count: 7, Min: 0, Max: 3, Description: "Card you can activate from hand during the opponent's turn."},
		{Name: "Tech Card", Count: 3, Min: 0, Max: 2, Description: "Answers a specific metagame or archetype threat."},
		{Name: "Brick", Count: 2, Min: 0, Max: 1, Description: "Card you do not want to draw in your starting hand."},
	}
}

// DefaultSpec is the default 40 card deck for the given turn order.
func DefaultSpec(firstPlayer bool) Spec {
	return NewSpec("My deck", 40, DefaultHandSize(firstPlayer), firstPlayer, DefaultCategories())
}
