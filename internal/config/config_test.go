package config

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/deck-odds/pkg/constants"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test config",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
		{
			name:       "Example config",
			configPath: "../../config.yaml.example",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Deck.Name != "Test Branded" {
		t.Errorf("Expected deck name Test Branded, got %s", config.Deck.Name)
	}
	if config.Deck.Size != 40 {
		t.Errorf("Expected deck size 40, got %d", config.Deck.Size)
	}
	if !config.Deck.IsFirstPlayer() {
		t.Error("Expected first player")
	}
	if config.Deck.HandSize != 5 {
		t.Errorf("Expected resolved hand size 5, got %d", config.Deck.HandSize)
	}

	expectedCategories := []CategoryConfig{
		{Name: "Starter", Count: 12, Min: 1, Max: 3, Description: "Card that starts your main combo or strategy."},
		{Name: "Extender", Count: 9, Min: 0, Max: 3},
		{Name: "Handtrap", Count: 9, Min: 1, Max: 3},
		{Name: "Brick", Count: 3, Min: 0, Max: 0},
	}
	if len(config.Deck.Categories) != len(expectedCategories) {
		t.Fatalf("Expected %d categories, got %d", len(expectedCategories), len(config.Deck.Categories))
	}
	for i, expected := range expectedCategories {
		if config.Deck.Categories[i] != expected {
			t.Errorf("Category %d: expected %+v, got %+v", i, expected, config.Deck.Categories[i])
		}
	}

	if config.Simulation.Samples != 20000 {
		t.Errorf("Expected 20000 samples, got %d", config.Simulation.Samples)
	}
	if config.Simulation.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", config.Simulation.Seed)
	}
	if config.Simulation.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", config.Simulation.Workers)
	}
	if config.Simulation.ZeroPolicy != constants.ZeroPolicyMultiply {
		t.Errorf("Expected zero policy multiply, got %s", config.Simulation.ZeroPolicy)
	}

	if config.Logging.Level != "warn" || config.Logging.Format != "console" {
		t.Errorf("Unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Expected csv output, got %s", config.Output.Format)
	}

	if !config.Advice.Enabled {
		t.Error("Expected advice enabled")
	}
	if config.Advice.Model != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %s", config.Advice.Model)
	}
	if config.Advice.Timeout != 10*time.Second {
		t.Errorf("Expected advice timeout 10s, got %s", config.Advice.Timeout)
	}
	if config.Advice.BaseURL != constants.DefaultAdviceBaseURL {
		t.Errorf("Expected default base URL, got %s", config.Advice.BaseURL)
	}
}

func TestLoadConfigurationFromReader_Defaults(t *testing.T) {
	tests := []struct {
		name             string
		yaml             string
		expectedHandSize int
		expectFirst      bool
	}{
		{
			name:             "Empty document",
			yaml:             "",
			expectedHandSize: constants.DefaultHandSizeFirst,
			expectFirst:      true,
		},
		{
			name:             "Going second",
			yaml:             "deck:\n  firstPlayer: false\n",
			expectedHandSize: constants.DefaultHandSizeSecond,
			expectFirst:      false,
		},
		{
			name:             "Explicit hand size",
			yaml:             "deck:\n  firstPlayer: false\n  handSize: 7\n",
			expectedHandSize: 7,
			expectFirst:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}

			if config.Deck.HandSize != tt.expectedHandSize {
				t.Errorf("Expected hand size %d, got %d", tt.expectedHandSize, config.Deck.HandSize)
			}
			if config.Deck.IsFirstPlayer() != tt.expectFirst {
				t.Errorf("Expected first player %v", tt.expectFirst)
			}
			if config.Deck.Size != constants.DefaultDeckSize {
				t.Errorf("Expected default deck size, got %d", config.Deck.Size)
			}
			if len(config.Deck.Categories) != 6 {
				t.Errorf("Expected 6 default categories, got %d", len(config.Deck.Categories))
			}
			if config.Simulation.Samples != constants.DefaultSamples {
				t.Errorf("Expected default samples, got %d", config.Simulation.Samples)
			}
			if config.Simulation.ZeroPolicy != constants.ZeroPolicySkip {
				t.Errorf("Expected skip zero policy, got %s", config.Simulation.ZeroPolicy)
			}
			if config.Output.Format != constants.OutputFormatPretty {
				t.Errorf("Expected pretty output, got %s", config.Output.Format)
			}
		})
	}
}

func TestLoadConfigurationFromReader_Invalid(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader("deck: [unclosed"))
	if err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestLoadConfigurationFromReader_EnvOverride(t *testing.T) {
	t.Setenv("DECK_ODDS_SIMULATION_SAMPLES", "500")

	config, err := LoadConfigurationFromReader(strings.NewReader("simulation:\n  samples: 2000\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Simulation.Samples != 500 {
		t.Errorf("Expected environment override of 500 samples, got %d", config.Simulation.Samples)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	first := false
	config := &Configuration{
		Deck: DeckConfig{
			Name:        "Custom",
			Size:        60,
			HandSize:    5,
			FirstPlayer: &first,
			Categories:  []CategoryConfig{{Name: "Starter", Count: 20, Min: 1, Max: 5}},
		},
		Simulation: SimulationConfig{Samples: 123, ZeroPolicy: constants.ZeroPolicyMultiply},
	}
	config.ApplyDefaults()

	if config.Deck.Name != "Custom" || config.Deck.Size != 60 || config.Deck.HandSize != 5 {
		t.Errorf("Explicit deck values were overwritten: %+v", config.Deck)
	}
	if len(config.Deck.Categories) != 1 {
		t.Errorf("Expected explicit categories kept, got %d", len(config.Deck.Categories))
	}
	if config.Simulation.Samples != 123 || config.Simulation.ZeroPolicy != constants.ZeroPolicyMultiply {
		t.Errorf("Explicit simulation values were overwritten: %+v", config.Simulation)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Configuration)
		expectErr bool
	}{
		{
			name:      "Defaults are valid",
			modify:    func(c *Configuration) {},
			expectErr: false,
		},
		{
			name:      "Negative samples",
			modify:    func(c *Configuration) { c.Simulation.Samples = -1 },
			expectErr: true,
		},
		{
			name:      "Negative workers",
			modify:    func(c *Configuration) { c.Simulation.Workers = -2 },
			expectErr: true,
		},
		{
			name:      "Unknown zero policy",
			modify:    func(c *Configuration) { c.Simulation.ZeroPolicy = "ignore" },
			expectErr: true,
		},
		{
			name:      "Unknown output format",
			modify:    func(c *Configuration) { c.Output.Format = "json" },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Configuration{}
			config.ApplyDefaults()
			tt.modify(config)

			err := config.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	config.Simulation.OmitUnlisted = true
	config.Simulation.Samples = 10
	warnings := config.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[1], "omits 7 unlisted cards") {
		t.Errorf("Unexpected warning: %s", warnings[1])
	}
}
