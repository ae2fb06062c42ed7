// Package probability computes exact opening-hand probabilities with the
// hypergeometric distribution and aggregates per-category results.
package probability

// Entry is the success probability of one category, as a percentage.
type Entry struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Result holds per-category percentages in deck order plus the combined
// percentage produced by Combine.
type Result struct {
	Entries  []Entry `json:"entries"`
	Combined float64 `json:"combined"`
}

// Get returns the percentage recorded for name.
func (r Result) Get(name string) (float64, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e.Percent, true
		}
	}
	return 0, false
}

// Map returns the per-category percentages keyed by category name.
func (r Result) Map() map[string]float64 {
	m := make(map[string]float64, len(r.Entries))
	for _, e := range r.Entries {
		m[e.Name] = e.Percent
	}
	return m
}

// Percents returns the per-category percentages in deck order.
func (r Result) Percents() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Percent
	}
	return out
}
