package probability

import (
	"math/big"

	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/pkg/mathutil"
)

// Exact computes, for every category of spec, the probability that an
// opening hand contains between Min and Max cards of it. Each category is
// treated independently against the rest of the deck. The combined
// percentage uses the given zero policy.
func Exact(spec deck.Spec, policy ZeroPolicy) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}

	entries := make([]Entry, len(spec.Categories))
	for i, c := range spec.Categories {
		entries[i] = Entry{
			Name:    c.Name,
			Percent: CategoryProbability(spec.DeckSize, spec.HandSize, c),
		}
	}

	result := Result{Entries: entries}
	result.Combined = Combine(result.Percents(), policy)
	return result, nil
}

// CategoryProbability is the percentage of hands of size hand drawn from a
// deck of deckSize cards holding between c.Min and c.Max cards of c.
func CategoryProbability(deckSize, hand int, c deck.Category) float64 {
	lo, hi := support(deckSize, c.Count, hand)
	lo = mathutil.MaxInt(lo, c.Min)
	hi = mathutil.MinInt(hi, c.Max)
	if lo > hi {
		return 0
	}

	hits := new(big.Int)
	for k := lo; k <= hi; k++ {
		hits.Add(hits, ways(deckSize, c.Count, hand, k))
	}
	return mathutil.ClampPercent(mathutil.Percent(hits, mathutil.Binomial(deckSize, hand)))
}

// PMF is the hypergeometric probability, as a percentage, of drawing
// exactly k marked cards in a hand of size hand from a deck of deckSize
// cards holding marked of them.
func PMF(deckSize, marked, hand, k int) float64 {
	lo, hi := support(deckSize, marked, hand)
	if k < lo || k > hi {
		return 0
	}
	return mathutil.Percent(ways(deckSize, marked, hand, k), mathutil.Binomial(deckSize, hand))
}

// Distribution returns PMF(k) for k = 0..hand.
func Distribution(deckSize, marked, hand int) []float64 {
	if hand < 0 {
		return nil
	}
	out := make([]float64, hand+1)
	for k := range out {
		out[k] = PMF(deckSize, marked, hand, k)
	}
	return out
}

// support is the range of achievable marked-card counts.
func support(deckSize, marked, hand int) (int, int) {
	return mathutil.MaxInt(0, hand-(deckSize-marked)), mathutil.MinInt(hand, marked)
}

// ways counts the hands with exactly k marked cards: C(K, k) * C(N-K, n-k).
func ways(deckSize, marked, hand, k int) *big.Int {
	w := mathutil.Binomial(marked, k)
	return w.Mul(w, mathutil.Binomial(deckSize-marked, hand-k))
}
