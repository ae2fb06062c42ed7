package explain

// builtin backs Explain. It is never handed out; callers that need custom
// rules start from DefaultRules.
var builtin = DefaultRules()

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() Table {
	t := Table{}
	t.Register("Starter", Rule{
		Ranges: map[Range]Phrase{
			{0, 0}: {"Your hand will never open a Starter: you risk not being able to play!", Negative},
			{1, 1}: {"At least 1 Starter guaranteed: stable, reliable deck.", Positive},
			{1, 3}: {"You almost always open a Starter, with multiple options.", Positive},
		},
		Positive: "Good odds to open a Starter. Playable hand in most cases.",
		Negative: "Low chance to open a Starter: unstable deck, beware of bad hands.",
		Caution:  "Your range accepts hands without a Starter: many of them will be unplayable.",
		Required: true,
	})
	t.Register("Extender", Rule{
		Ranges: map[Range]Phrase{
			{0, 0}: {"No Extender in hand: low resilience if your play is stopped.", Negative},
			{1, 1}: {"Always 1 Extender in hand: good follow-up potential.", Positive},
			{1, 3}: {"You can extend your combo in most hands.", Positive},
		},
		Positive: "Good odds for an Extender, safe if interrupted.",
		Negative: "Low odds for an Extender. Watch out for grind games.",
	})
	t.Register("Board Breaker", Rule{
		Ranges: map[Range]Phrase{
			{0, 0}: {"No Board Breaker: hard to deal with strong opposing boards.", Negative},
			{1, 1}: {"Always a Board Breaker: good against strong boards.", Positive},
		},
		Positive: "You often open a Board Breaker, useful against big boards.",
		Negative: "Rarely have a Board Breaker. Watch out for strong decks.",
	})
	t.Register("Handtrap", Rule{
		Ranges: map[Range]Phrase{
			{0, 0}: {"No Handtrap: risk letting the opponent play freely.", Negative},
			{1, 3}: {"Often at least 1 Handtrap: puts pressure on your opponent.", Positive},
		},
		Positive: "Good Handtrap frequency. Strong defense against combos.",
		Negative: "Not enough Handtraps. Weak against fast decks.",
	})
	t.Register("Tech Card", Rule{
		Ranges: map[Range]Phrase{
			{0, 0}: {"No Tech Cards in hand. Pure deck, little adaptation.", Negative},
			{1, 2}: {"Sometimes Tech Cards to surprise the opponent.", Positive},
		},
		Positive: "Good flexibility with your Tech Cards.",
		Negative: "Few/no Tech Cards. Fewer meta answers.",
	})
	t.Register("Brick", Rule{
		Ranges: map[Range]Phrase{
			{0, 0}: {"No Brick in hand, very stable deck!", Positive},
			{1, 1}: {"Always a Brick: risky, dead hands likely.", Negative},
		},
		Positive: "Very few Bricks drawn, highly stable.",
		Negative: "You draw Bricks too often, many unplayable hands.",
		Inverted: true,
	})
	return t
}
