// Package report runs both probability engines over a deck, explains every
// category and collects the results into one Report for presentation.
package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/explain"
	"github.com/iwvelando/deck-odds/internal/montecarlo"
	"github.com/iwvelando/deck-odds/internal/probability"
	"github.com/iwvelando/deck-odds/pkg/format"
	"github.com/iwvelando/deck-odds/pkg/mathutil"
	"github.com/iwvelando/deck-odds/pkg/validation"
)

// Advisor writes free-form advice for a deck summary. Implementations
// report their own failures as text.
type Advisor interface {
	Advise(ctx context.Context, summary string) string
}

// Options controls how a report is built.
type Options struct {
	Samples      int
	Seed         int64
	Workers      int
	OmitUnlisted bool
	Policy       probability.ZeroPolicy
	Progress     func(done int)
	// Rules explains the categories. Nil selects the built-in rules.
	Rules explain.Table
	// Advisor is optional.
	Advisor Advisor
}

// Row is the result for one category.
type Row struct {
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Count       int             `json:"count"`
	Min         int             `json:"min"`
	Max         int             `json:"max"`
	Exact       float64         `json:"exact"`
	MonteCarlo  float64         `json:"monteCarlo"`
	Delta       float64         `json:"delta"`
	Verdict     explain.Verdict `json:"verdict"`
}

// Report is the complete result of one run.
type Report struct {
	ID                 string                 `json:"id"`
	GeneratedAt        time.Time              `json:"generatedAt"`
	Deck               deck.Spec              `json:"deck"`
	ZeroPolicy         probability.ZeroPolicy `json:"zeroPolicy"`
	Samples            int                    `json:"samples"`
	Trials             int                    `json:"trials"`
	Seed               int64                  `json:"seed"`
	Workers            int                    `json:"workers"`
	Rows               []Row                  `json:"rows"`
	ExactCombined      float64                `json:"exactCombined"`
	MonteCarloCombined float64                `json:"monteCarloCombined"`
	Warnings           []string               `json:"warnings,omitempty"`
	Advice             string                 `json:"advice,omitempty"`
	Duration           time.Duration          `json:"duration"`
}

// Build computes the exact and simulated odds for spec and explains each
// category from its exact percentage. Configuration errors from either
// engine are returned unchanged.
func Build(ctx context.Context, logger *zap.Logger, spec deck.Spec, opts Options) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	policy := opts.Policy
	if policy == "" {
		policy = probability.SkipZero
	}
	explainRow := explain.Explain
	if opts.Rules != nil {
		explainRow = opts.Rules.Explain
	}

	exact, err := probability.Exact(spec, policy)
	if err != nil {
		logger.Error("exact computation failed", zap.String("op", "report.Build"), zap.Error(err))
		return nil, err
	}

	sim, err := montecarlo.Run(ctx, spec, montecarlo.Options{
		Samples:      opts.Samples,
		Seed:         opts.Seed,
		Workers:      opts.Workers,
		OmitUnlisted: opts.OmitUnlisted,
		Policy:       policy,
		Progress:     opts.Progress,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("simulation failed", zap.String("op", "report.Build"), zap.Error(err))
		return nil, err
	}

	r := &Report{
		ID:                 uuid.New().String(),
		GeneratedAt:        start.UTC(),
		Deck:               spec.Clone(),
		ZeroPolicy:         policy,
		Samples:            sim.Samples,
		Trials:             sim.Trials,
		Seed:               sim.Seed,
		Workers:            sim.Workers,
		Rows:               make([]Row, len(spec.Categories)),
		ExactCombined:      exact.Combined,
		MonteCarloCombined: sim.Combined,
		Warnings:           Warnings(spec, opts.Samples),
	}
	if sim.Degenerate() {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Simulated deck holds fewer cards than a hand of %d - no Monte Carlo trials were run", spec.HandSize))
	}

	for i, c := range spec.Categories {
		exactPct := exact.Entries[i].Percent
		simPct := sim.Entries[i].Percent
		r.Rows[i] = Row{
			Category:    c.Name,
			Description: c.Description,
			Count:       c.Count,
			Min:         c.Min,
			Max:         c.Max,
			Exact:       exactPct,
			MonteCarlo:  simPct,
			Delta:       mathutil.Round(math.Abs(exactPct - simPct)),
			Verdict:     explainRow(c.Name, exactPct, c.Min, c.Max),
		}
	}

	if opts.Advisor != nil {
		r.Advice = opts.Advisor.Advise(ctx, r.Summary())
	}

	r.Duration = time.Since(start)
	logger.Info("report built",
		zap.String("op", "report.Build"),
		zap.String("id", r.ID),
		zap.String("deck", spec.Name),
		zap.Int("categories", len(r.Rows)),
		zap.Int("trials", r.Trials),
		zap.Float64("exactCombined", r.ExactCombined),
		zap.Float64("monteCarloCombined", r.MonteCarloCombined),
		zap.Duration("duration", r.Duration),
	)
	return r, nil
}

// Warnings lists likely mistakes in a valid deck.
func Warnings(spec deck.Spec, samples int) []string {
	v := validation.ConfigValidator{
		HandSize:   spec.HandSize,
		Samples:    samples,
		Categories: make([]validation.CategoryConfig, len(spec.Categories)),
	}
	for i, c := range spec.Categories {
		v.Categories[i] = validation.CategoryConfig{Name: c.Name, Count: c.Count, Min: c.Min, Max: c.Max}
	}
	return v.ValidateAll()
}

// Find returns the row for a category by exact name.
func (r *Report) Find(name string) (Row, bool) {
	for _, row := range r.Rows {
		if row.Category == name {
			return row, true
		}
	}
	return Row{}, false
}

// Summary renders the per-category odds as plain text lines.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Deck: %s, %d cards, hand of %d\n", r.Deck.Name, r.Deck.DeckSize, r.Deck.HandSize)
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%s (%d cards, %d-%d in hand): theoretical %.2f%%, Monte Carlo %.2f%%\n",
			row.Category, row.Count, row.Min, row.Max, row.Exact, row.MonteCarlo)
	}
	fmt.Fprintf(&b, "Combined: theoretical %.2f%%, Monte Carlo %.2f%% over %s hands",
		r.ExactCombined, r.MonteCarloCombined, format.Count(r.Trials))
	return b.String()
}
