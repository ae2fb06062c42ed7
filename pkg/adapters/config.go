// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"github.com/iwvelando/deck-odds/internal/advice"
	"github.com/iwvelando/deck-odds/internal/config"
	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/probability"
	"github.com/iwvelando/deck-odds/internal/report"
)

// ConfigToSpec converts the configured deck into the engine's deck spec
func ConfigToSpec(conf config.DeckConfig) deck.Spec {
	categories := make([]deck.Category, 0, len(conf.Categories))
	for _, c := range conf.Categories {
		categories = append(categories, deck.Category{
			Name:        c.Name,
			Count:       c.Count,
			Min:         c.Min,
			Max:         c.Max,
			Description: c.Description,
		})
	}
	return deck.NewSpec(conf.Name, conf.Size, conf.HandSize, conf.IsFirstPlayer(), categories)
}

// SpecToConfig converts a deck spec back into its configuration form
func SpecToConfig(spec deck.Spec) config.DeckConfig {
	first := spec.FirstPlayer
	conf := config.DeckConfig{
		Name:        spec.Name,
		Size:        spec.DeckSize,
		HandSize:    spec.HandSize,
		FirstPlayer: &first,
		Categories:  make([]config.CategoryConfig, 0, len(spec.Categories)),
	}
	for _, c := range spec.Categories {
		conf.Categories = append(conf.Categories, config.CategoryConfig{
			Name:        c.Name,
			Count:       c.Count,
			Min:         c.Min,
			Max:         c.Max,
			Description: c.Description,
		})
	}
	return conf
}

// SimulationToOptions converts the simulation settings into report options
func SimulationToOptions(sim config.SimulationConfig) (report.Options, error) {
	policy, err := probability.ParseZeroPolicy(sim.ZeroPolicy)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		Samples:      sim.Samples,
		Seed:         sim.Seed,
		Workers:      sim.Workers,
		OmitUnlisted: sim.OmitUnlisted,
		Policy:       policy,
	}, nil
}

// AdviceToClientConfig converts the advice settings into a client config
func AdviceToClientConfig(conf config.AdviceConfig, apiKey string) advice.Config {
	return advice.Config{
		APIKey:  apiKey,
		BaseURL: conf.BaseURL,
		Model:   conf.Model,
		Timeout: conf.Timeout,
	}
}
