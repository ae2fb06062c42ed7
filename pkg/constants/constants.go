// Package constants provides shared constants for the deck-odds application.
package constants

import "time"

// Deck defaults
const (
	// DefaultDeckSize is the deck size used when none is configured
	DefaultDeckSize = 40
	// DefaultHandSizeFirst is the opening hand size for the player going first
	DefaultHandSizeFirst = 5
	// DefaultHandSizeSecond is the opening hand size for the player going second
	DefaultHandSizeSecond = 6
)

// Simulation defaults
const (
	// DefaultSamples is the default number of Monte Carlo hands
	DefaultSamples = 10000
	// MinRecommendedSamples is the sample count below which estimates are noisy
	MinRecommendedSamples = 1000
	// DefaultMaxSamples caps the sample count accepted by the HTTP API
	DefaultMaxSamples = 1000000
	// ProgressBatch is how many trials a worker runs between progress reports
	ProgressBatch = 1024
	// WorkerSeedStride separates the RNG seeds of parallel workers
	WorkerSeedStride = 1337
)

// Aggregation policies
const (
	// ZeroPolicySkip treats a 0% category as the multiplicative identity
	ZeroPolicySkip = "skip"
	// ZeroPolicyMultiply multiplies 0% categories into the combined probability
	ZeroPolicyMultiply = "multiply"
)

// Explanation defaults
const (
	// PositiveThreshold is the percentage above which a category is framed positively
	PositiveThreshold = 70.0
	// PercentageMultiplier converts a probability to a percentage
	PercentageMultiplier = 100.0
	// PercentTolerance is the tolerance used when comparing percentages
	PercentTolerance = 1e-9
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"
	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Advice defaults
const (
	// DefaultAdviceBaseURL is the OpenAI-compatible API root
	DefaultAdviceBaseURL = "https://api.openai.com/v1"
	// DefaultAdviceModel is the chat model asked for deck advice
	DefaultAdviceModel = "gpt-3.5-turbo"
	// DefaultAdviceMaxTokens bounds the length of the advice
	DefaultAdviceMaxTokens = 350
	// DefaultAdviceTemperature is the sampling temperature for advice
	DefaultAdviceTemperature = 0.7
	// DefaultAdviceTimeout bounds one advice request
	DefaultAdviceTimeout = 18 * time.Second
	// AdviceAPIKeyEnv is the environment variable holding the API key
	AdviceAPIKeyEnv = "OPENAI_API_KEY"
)
