package adapters

import (
	"testing"
	"time"

	"github.com/iwvelando/deck-odds/internal/config"
	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/probability"
)

func TestConfigToSpec(t *testing.T) {
	first := false
	conf := config.DeckConfig{
		Name:        "Test Deck",
		Size:        40,
		HandSize:    6,
		FirstPlayer: &first,
		Categories: []config.CategoryConfig{
			{Name: "Starter", Count: 12, Min: 1, Max: 3, Description: "Starts combos"},
			{Name: "Brick", Count: 2, Min: 0, Max: 1},
		},
	}

	spec := ConfigToSpec(conf)

	if spec.Name != "Test Deck" {
		t.Errorf("Name = %s, expected 'Test Deck'", spec.Name)
	}
	if spec.DeckSize != 40 || spec.HandSize != 6 {
		t.Errorf("DeckSize/HandSize = %d/%d, expected 40/6", spec.DeckSize, spec.HandSize)
	}
	if spec.FirstPlayer {
		t.Error("FirstPlayer = true, expected false")
	}
	if len(spec.Categories) != 2 {
		t.Fatalf("Categories length = %d, expected 2", len(spec.Categories))
	}

	expected := deck.Category{Name: "Starter", Count: 12, Min: 1, Max: 3, Description: "Starts combos"}
	if spec.Categories[0] != expected {
		t.Errorf("Categories[0] = %+v, expected %+v", spec.Categories[0], expected)
	}

	if err := spec.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
}

func TestConfigToSpecNilFirstPlayer(t *testing.T) {
	spec := ConfigToSpec(config.DeckConfig{Size: 40, HandSize: 5})

	if !spec.FirstPlayer {
		t.Error("FirstPlayer = false, expected true when unset")
	}
	if len(spec.Categories) != 0 {
		t.Errorf("Categories length = %d, expected 0", len(spec.Categories))
	}
}

func TestSpecToConfigRoundTrip(t *testing.T) {
	spec := deck.DefaultSpec(false)
	back := ConfigToSpec(SpecToConfig(spec))

	if back.Name != spec.Name || back.DeckSize != spec.DeckSize || back.HandSize != spec.HandSize || back.FirstPlayer != spec.FirstPlayer {
		t.Errorf("Round trip changed deck: %+v vs %+v", back, spec)
	}
	for i := range spec.Categories {
		if back.Categories[i] != spec.Categories[i] {
			t.Errorf("Category %d changed: %+v vs %+v", i, back.Categories[i], spec.Categories[i])
		}
	}
}

func TestSimulationToOptions(t *testing.T) {
	opts, err := SimulationToOptions(config.SimulationConfig{
		Samples:      5000,
		Seed:         7,
		Workers:      3,
		ZeroPolicy:   "multiply",
		OmitUnlisted: true,
	})
	if err != nil {
		t.Fatalf("SimulationToOptions() error = %v", err)
	}

	if opts.Samples != 5000 || opts.Seed != 7 || opts.Workers != 3 || !opts.OmitUnlisted {
		t.Errorf("Unexpected options %+v", opts)
	}
	if opts.Policy != probability.MultiplyZero {
		t.Errorf("Policy = %s, expected multiply", opts.Policy)
	}

	if _, err := SimulationToOptions(config.SimulationConfig{ZeroPolicy: "bogus"}); err == nil {
		t.Error("Expected error for unknown zero policy")
	}
}

func TestAdviceToClientConfig(t *testing.T) {
	conf := AdviceToClientConfig(config.AdviceConfig{
		Enabled: true,
		Model:   "gpt-4o-mini",
		BaseURL: "http://localhost:1234/v1",
		Timeout: 5 * time.Second,
	}, "secret")

	if conf.APIKey != "secret" || conf.Model != "gpt-4o-mini" || conf.BaseURL != "http://localhost:1234/v1" || conf.Timeout != 5*time.Second {
		t.Errorf("Unexpected client config %+v", conf)
	}
}
