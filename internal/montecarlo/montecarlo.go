// Package montecarlo estimates opening-hand probabilities by drawing many
// random hands without replacement and counting per-category successes.
package montecarlo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/probability"
	"github.com/iwvelando/deck-odds/pkg/constants"
	"github.com/iwvelando/deck-odds/pkg/mathutil"
)

// otherLabel tags cards that belong to no category.
const otherLabel = -1

// Options configures one simulation run.
type Options struct {
	// Samples is the number of hands to draw.
	Samples int
	// Seed seeds the generators. Zero draws a fresh seed from crypto/rand.
	Seed int64
	// Workers splits the samples across goroutines, each with its own
	// generator seeded from Seed. Values below 2 run on the caller's
	// goroutine.
	Workers int
	// RNG overrides the generator of a single-worker run.
	RNG RNG
	// OmitUnlisted samples from category cards only, dropping the implicit
	// bucket of unlisted cards from the deck.
	OmitUnlisted bool
	// Policy is the zero policy of the combined percentage.
	Policy probability.ZeroPolicy
	// Progress, when set, receives the number of trials finished since its
	// previous call. It is called from worker goroutines and must be safe
	// for concurrent use.
	Progress func(done int)
	Logger   *zap.Logger
}

// Result is the outcome of a simulation run. Trials is zero when the
// sampled deck holds fewer cards than a hand.
type Result struct {
	probability.Result
	Samples int   `json:"samples"`
	Trials  int   `json:"trials"`
	Seed    int64 `json:"seed"`
	Workers int   `json:"workers"`
}

// Degenerate reports whether the run completed no trials.
func (r Result) Degenerate() bool {
	return r.Trials == 0
}

// Run draws opts.Samples random hands from spec and returns each
// category's empirical success rate as a percentage.
func Run(ctx context.Context, spec deck.Spec, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := spec.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Samples <= 0 {
		return Result{}, &deck.ConfigError{Err: deck.ErrNoSamples, Detail: fmt.Sprintf("samples %d", opts.Samples)}
	}

	seed := opts.Seed
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return Result{}, err
		}
	}

	workers := mathutil.MaxInt(1, mathutil.MinInt(opts.Workers, opts.Samples))
	result := Result{
		Samples: opts.Samples,
		Seed:    seed,
		Workers: workers,
	}

	pool := materialize(spec, opts.OmitUnlisted)
	if len(pool) < spec.HandSize {
		logger.Warn("deck holds fewer cards than a hand, no trials run",
			zap.String("op", "montecarlo.Run"),
			zap.Int("cards", len(pool)),
			zap.Int("handSize", spec.HandSize),
		)
		result.Result = emptyResult(spec)
		return result, nil
	}

	start := time.Now()
	var (
		t   tally
		err error
	)
	if workers == 1 {
		rng := opts.RNG
		if rng == nil {
			rng = NewRNG(seed)
		}
		t, err = simulate(ctx, pool, spec, opts.Samples, rng, opts.Progress)
	} else {
		t, err = simulateParallel(ctx, pool, spec, opts.Samples, workers, seed, opts.Progress)
	}
	if err != nil {
		return Result{}, err
	}

	entries := make([]probability.Entry, len(spec.Categories))
	for i, c := range spec.Categories {
		entries[i] = probability.Entry{
			Name:    c.Name,
			Percent: mathutil.CalculatePercentage(float64(t.successes[i]), float64(opts.Samples)),
		}
	}
	result.Result = probability.Result{Entries: entries}
	result.Combined = probability.Combine(result.Percents(), opts.Policy)
	result.Trials = t.trials

	logger.Debug("simulation finished",
		zap.String("op", "montecarlo.Run"),
		zap.Int("trials", result.Trials),
		zap.Int("workers", workers),
		zap.Int64("seed", seed),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// tally accumulates per-category successes. Tallies are summed after all
// workers finish.
type tally struct {
	successes []int
	trials    int
}

func (t *tally) add(o tally) {
	for i := range t.successes {
		t.successes[i] += o.successes[i]
	}
	t.trials += o.trials
}

func simulateParallel(ctx context.Context, pool []int, spec deck.Spec, samples, workers int, seed int64, progress func(int)) (tally, error) {
	tallies := make([]tally, workers)
	chunk := samples / workers
	rem := samples % workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := chunk
		if w < rem {
			n++
		}
		w := w
		g.Go(func() error {
			rng := NewRNG(seed + int64(w)*constants.WorkerSeedStride)
			t, err := simulate(gctx, pool, spec, n, rng, progress)
			tallies[w] = t
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return tally{}, err
	}

	total := tally{successes: make([]int, len(spec.Categories))}
	for _, t := range tallies {
		total.add(t)
	}
	return total, nil
}

func simulate(ctx context.Context, labels []int, spec deck.Spec, trials int, rng RNG, progress func(int)) (tally, error) {
	pool := append([]int(nil), labels...)
	hits := make([]int, len(spec.Categories))
	out := tally{successes: make([]int, len(spec.Categories))}

	pending := 0
	for n := 0; n < trials; n++ {
		if n%constants.ProgressBatch == 0 {
			if err := ctx.Err(); err != nil {
				return out, err
			}
		}

		for i := range hits {
			hits[i] = 0
		}
		drawHand(pool, spec.HandSize, rng, hits)
		for i, c := range spec.Categories {
			if c.InRange(hits[i]) {
				out.successes[i]++
			}
		}
		out.trials++

		pending++
		if progress != nil && pending == constants.ProgressBatch {
			progress(pending)
			pending = 0
		}
	}
	if progress != nil && pending > 0 {
		progress(pending)
	}
	return out, nil
}

// drawHand moves a uniformly random hand to the front of pool with a
// partial Fisher-Yates shuffle and counts the category labels drawn. pool
// stays a permutation of the deck, so it can be reused for the next hand.
func drawHand(pool []int, hand int, rng RNG, hits []int) {
	n := len(pool)
	for i := 0; i < hand; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
		if label := pool[i]; label != otherLabel {
			hits[label]++
		}
	}
}

// materialize lays the deck out as one label per card: the category index,
// or otherLabel for unlisted cards.
func materialize(spec deck.Spec, omitUnlisted bool) []int {
	size := spec.LabeledCount()
	if !omitUnlisted {
		size += spec.OtherCount()
	}
	pool := make([]int, 0, size)
	for i, c := range spec.Categories {
		for n := 0; n < c.Count; n++ {
			pool = append(pool, i)
		}
	}
	if !omitUnlisted {
		for n := 0; n < spec.OtherCount(); n++ {
			pool = append(pool, otherLabel)
		}
	}
	return pool
}

func emptyResult(spec deck.Spec) probability.Result {
	entries := make([]probability.Entry, len(spec.Categories))
	for i, c := range spec.Categories {
		entries[i] = probability.Entry{Name: c.Name}
	}
	return probability.Result{Entries: entries}
}
