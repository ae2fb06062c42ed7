// Package config defines the data structures related to configuration and
// includes functions for loading, defaulting and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/probability"
	"github.com/iwvelando/deck-odds/pkg/constants"
	"github.com/iwvelando/deck-odds/pkg/validation"
)

// EnvPrefix prefixes environment variables overriding config keys, e.g.
// DECK_ODDS_SIMULATION_SAMPLES.
const EnvPrefix = "DECK_ODDS"

// Configuration holds all configuration for deck-odds.
type Configuration struct {
	Deck       DeckConfig       `yaml:"deck" json:"deck"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	Logging    LoggingConfig    `yaml:"logging,omitempty" json:"-"`
	Output     OutputConfig     `yaml:"output,omitempty" json:"-"`
	Advice     AdviceConfig     `yaml:"advice,omitempty" json:"-"`
}

// DeckConfig describes the deck under test.
type DeckConfig struct {
	Name        string           `yaml:"name,omitempty" json:"name,omitempty"`
	Size        int              `yaml:"size" json:"size"`
	HandSize    int              `yaml:"handSize,omitempty" json:"handSize,omitempty"` // 0 picks the turn order default
	FirstPlayer *bool            `yaml:"firstPlayer,omitempty" json:"firstPlayer,omitempty"`
	Categories  []CategoryConfig `yaml:"categories" json:"categories"`
}

// CategoryConfig is one card role of the deck.
type CategoryConfig struct {
	Name        string `yaml:"name" json:"name"`
	Count       int    `yaml:"count" json:"count"`
	Min         int    `yaml:"min" json:"min"`
	Max         int    `yaml:"max" json:"max"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// SimulationConfig holds Monte Carlo options.
type SimulationConfig struct {
	Samples      int    `yaml:"samples" json:"samples"`
	Seed         int64  `yaml:"seed,omitempty" json:"seed,omitempty"` // 0 draws a random seed
	Workers      int    `yaml:"workers,omitempty" json:"workers,omitempty"`
	ZeroPolicy   string `yaml:"zeroPolicy,omitempty" json:"zeroPolicy,omitempty"` // skip, multiply
	OmitUnlisted bool   `yaml:"omitUnlisted,omitempty" json:"omitUnlisted,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// AdviceConfig holds options for the AI advice client. The API key is read
// from the environment only.
type AdviceConfig struct {
	Enabled bool          `yaml:"enabled,omitempty"`
	Model   string        `yaml:"model,omitempty"`
	BaseURL string        `yaml:"baseURL,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("deck.size", constants.DefaultDeckSize)
	v.SetDefault("deck.handSize", 0)
	v.SetDefault("simulation.samples", constants.DefaultSamples)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 1)
	v.SetDefault("simulation.zeroPolicy", constants.ZeroPolicySkip)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("advice.model", constants.DefaultAdviceModel)
	v.SetDefault("advice.baseURL", constants.DefaultAdviceBaseURL)
	v.SetDefault("advice.timeout", constants.DefaultAdviceTimeout)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset deck and simulation fields: a 40 card deck, the
// turn order hand size, the built-in categories and the default sample
// count. Configurations decoded without viper must call it themselves.
func (c *Configuration) ApplyDefaults() {
	if c.Deck.Name == "" {
		c.Deck.Name = "My deck"
	}
	if c.Deck.Size == 0 {
		c.Deck.Size = constants.DefaultDeckSize
	}
	if c.Deck.FirstPlayer == nil {
		first := true
		c.Deck.FirstPlayer = &first
	}
	if c.Deck.HandSize == 0 {
		c.Deck.HandSize = deck.DefaultHandSize(*c.Deck.FirstPlayer)
	}
	if len(c.Deck.Categories) == 0 {
		for _, d := range deck.DefaultCategories() {
			c.Deck.Categories = append(c.Deck.Categories, CategoryConfig{
				Name:        d.Name,
				Count:       d.Count,
				Min:         d.Min,
				Max:         d.Max,
				Description: d.Description,
			})
		}
	}
	if c.Simulation.Samples == 0 {
		c.Simulation.Samples = constants.DefaultSamples
	}
	if c.Simulation.ZeroPolicy == "" {
		c.Simulation.ZeroPolicy = constants.ZeroPolicySkip
	}
}

// IsFirstPlayer reports the configured turn order, going first when unset.
func (d DeckConfig) IsFirstPlayer() bool {
	return d.FirstPlayer == nil || *d.FirstPlayer
}

// Validate rejects option values no run can use. Deck contents are checked
// by the engines.
func (c *Configuration) Validate() error {
	if c.Simulation.Samples < 0 {
		return fmt.Errorf("simulation samples must not be negative, got %d", c.Simulation.Samples)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation workers must not be negative, got %d", c.Simulation.Workers)
	}
	if _, err := probability.ParseZeroPolicy(c.Simulation.ZeroPolicy); err != nil {
		return err
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		HandSize: c.Deck.HandSize,
		Samples:  c.Simulation.Samples,
	}
	for _, cat := range c.Deck.Categories {
		validator.Categories = append(validator.Categories, validation.CategoryConfig{
			Name:  cat.Name,
			Count: cat.Count,
			Min:   cat.Min,
			Max:   cat.Max,
		})
	}

	warnings := validator.ValidateAll()

	labeled := 0
	for _, cat := range c.Deck.Categories {
		labeled += cat.Count
	}
	if c.Simulation.OmitUnlisted && labeled < c.Deck.Size {
		warnings = append(warnings, fmt.Sprintf("Simulation omits %d unlisted cards - Monte Carlo odds will not match the exact odds",
			c.Deck.Size-labeled))
	}

	return warnings
}
