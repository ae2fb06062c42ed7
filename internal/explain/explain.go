// Package explain turns a category's success percentage and configured range
// into a short verdict for the player.
//
// Verdicts come from a declarative rule table keyed by case-folded category
// name. A rule can carry text for specific (min, max) ranges, positive and
// negative fallback text, its own threshold, and flags describing whether
// drawing the category is desirable. Categories without a rule use the
// generic threshold rule.
package explain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/iwvelando/deck-odds/pkg/constants"
)

// Tone is the framing of a verdict.
type Tone string

const (
	Positive Tone = "positive"
	Negative Tone = "negative"
)

// Range is an inclusive hit range of a category.
type Range struct {
	Min int
	Max int
}

// Phrase is verdict text with its tone.
type Phrase struct {
	Text string
	Tone Tone
}

// Rule describes how verdicts for one category are worded.
type Rule struct {
	// Ranges maps exact configured ranges to fixed text.
	Ranges map[Range]Phrase
	// Positive and Negative are used when no range matches.
	Positive string
	Negative string
	// Caution replaces Negative when a likely outcome is framed negatively
	// because of the configured range.
	Caution string
	// Threshold is the percentage above which the outcome counts as likely.
	// Zero selects constants.PositiveThreshold.
	Threshold float64
	// Required marks categories a hand needs. A likely range that allows
	// zero copies is framed negatively.
	Required bool
	// Inverted marks categories a hand should avoid. A likely range that
	// demands at least one copy is framed negatively and an unlikely one
	// positively.
	Inverted bool
}

func (r Rule) threshold() float64 {
	if r.Threshold > 0 {
		return r.Threshold
	}
	return constants.PositiveThreshold
}

// Verdict is the explanation of one category result.
type Verdict struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Tone     Tone    `json:"tone"`
	Text     string  `json:"text"`
}

// String renders the verdict as "<percent>% : <text>".
func (v Verdict) String() string {
	return fmt.Sprintf("%.2f%% : %s", v.Percent, v.Text)
}

// Table maps case-folded category names to rules.
type Table map[string]Rule

// Key folds a category name into its table key.
func Key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Register adds or replaces the rule for a category. Tables are not safe for
// concurrent mutation; register rules before explaining.
func (t Table) Register(name string, r Rule) {
	t[Key(name)] = r
}

// Lookup returns the rule for a category name, ignoring case.
func (t Table) Lookup(name string) (Rule, bool) {
	r, ok := t[Key(name)]
	return r, ok
}

// Explain builds the verdict for a category that succeeds percent of the
// time with the range [min, max]. The result depends only on the arguments
// and the table contents.
func (t Table) Explain(name string, percent float64, min, max int) Verdict {
	v := Verdict{Category: name, Percent: percent}

	rule, ok := t.Lookup(name)
	if !ok {
		v.Tone, v.Text = generic(name, percent)
		return v
	}

	if p, ok := rule.Ranges[Range{Min: min, Max: max}]; ok {
		v.Tone, v.Text = p.Tone, p.Text
		return v
	}

	likely := percent > rule.threshold()
	switch {
	case rule.Required && likely && min == 0:
		v.Tone, v.Text = Negative, firstNonEmpty(rule.Caution, rule.Negative)
	case rule.Inverted && min >= 1:
		if likely {
			v.Tone, v.Text = Negative, firstNonEmpty(rule.Caution, rule.Negative)
		} else {
			v.Tone, v.Text = Positive, rule.Positive
		}
	case likely:
		v.Tone, v.Text = Positive, rule.Positive
	default:
		v.Tone, v.Text = Negative, rule.Negative
	}
	return v
}

// Explain explains a category result with the built-in rules.
func Explain(name string, percent float64, min, max int) Verdict {
	return builtin.Explain(name, percent, min, max)
}

func generic(name string, percent float64) (Tone, string) {
	if percent > constants.PositiveThreshold {
		return Positive, fmt.Sprintf("Good odds to open %s.", name)
	}
	return Negative, fmt.Sprintf("Low odds to open %s.", name)
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
