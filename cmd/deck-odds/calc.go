package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/deck-odds/internal/advice"
	"github.com/iwvelando/deck-odds/internal/config"
	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/report"
	"github.com/iwvelando/deck-odds/pkg/adapters"
	"github.com/iwvelando/deck-odds/pkg/constants"
	"github.com/iwvelando/deck-odds/pkg/output"
	"github.com/iwvelando/deck-odds/pkg/validation"
)

// calcFlags override the simulation section of the configuration file.
type calcFlags struct {
	samples      int
	seed         int64
	workers      int
	zeroPolicy   string
	omitUnlisted bool
	advice       bool
	noProgress   bool
}

func calcCmd(opts *rootOptions) *cobra.Command {
	flags := &calcFlags{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute opening hand odds for the configured deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, opts, flags)
		},
	}

	cmd.Flags().IntVar(&flags.samples, "samples", 0, "number of Monte Carlo hands")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "simulation seed (0 picks a random seed)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "number of parallel simulation workers")
	cmd.Flags().StringVar(&flags.zeroPolicy, "zero-policy", "", "combined probability policy for 0% categories: skip, multiply")
	cmd.Flags().BoolVar(&flags.omitUnlisted, "omit-unlisted", false, "leave cards outside every category out of the simulated deck")
	cmd.Flags().BoolVar(&flags.advice, "advice", false, "ask the AI advice service for an analysis")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "hide the simulation progress bar")

	return cmd
}

func (f *calcFlags) apply(cmd *cobra.Command, conf *config.Configuration) {
	changed := cmd.Flags().Changed
	if changed("samples") {
		conf.Simulation.Samples = f.samples
	}
	if changed("seed") {
		conf.Simulation.Seed = f.seed
	}
	if changed("workers") {
		conf.Simulation.Workers = f.workers
	}
	if changed("zero-policy") {
		conf.Simulation.ZeroPolicy = f.zeroPolicy
	}
	if changed("omit-unlisted") {
		conf.Simulation.OmitUnlisted = f.omitUnlisted
	}
	if changed("advice") {
		conf.Advice.Enabled = f.advice
	}
}

func runCalc(cmd *cobra.Command, opts *rootOptions, flags *calcFlags) error {
	conf, err := config.LoadConfiguration(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configFile, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	flags.apply(cmd, conf)
	if err := conf.Validate(); err != nil {
		return err
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.calc"),
		)
	}

	reportOpts, err := adapters.SimulationToOptions(conf.Simulation)
	if err != nil {
		return err
	}
	if conf.Advice.Enabled {
		reportOpts.Advisor = advice.NewClient(adapters.AdviceToClientConfig(conf.Advice, os.Getenv(constants.AdviceAPIKeyEnv)), logger)
	}

	var bar *progressbar.ProgressBar
	if !flags.noProgress {
		bar = newProgressBar(cmd.ErrOrStderr(), conf.Simulation.Samples)
		reportOpts.Progress = func(done int) {
			if err := bar.Add(done); err != nil {
				logger.Debug("failed to update progress bar", zap.Error(err))
			}
		}
	}

	rep, err := computeReport(cmd.Context(), logger, adapters.ConfigToSpec(conf.Deck), reportOpts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(out, rep)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(out, rep); err != nil {
			return fmt.Errorf("failed to write CSV output: %w", err)
		}
	}
	return nil
}

func computeReport(ctx context.Context, logger *zap.Logger, spec deck.Spec, opts report.Options) (*report.Report, error) {
	rep, err := report.Build(ctx, logger, spec, opts)
	if err != nil {
		logger.Error("failed to compute odds",
			zap.String("op", "main.calc"),
			zap.Error(err),
		)
		return nil, err
	}
	return rep, nil
}

func newProgressBar(w io.Writer, samples int) *progressbar.ProgressBar {
	return progressbar.NewOptions(samples,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Drawing hands...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

func defaultsCmd() *cobra.Command {
	var second bool

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in deck as a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := config.Configuration{
				Deck: adapters.SpecToConfig(deck.DefaultSpec(!second)),
				Simulation: config.SimulationConfig{
					Samples:    constants.DefaultSamples,
					ZeroPolicy: constants.ZeroPolicySkip,
				},
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(conf); err != nil {
				return fmt.Errorf("failed to encode default configuration: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&second, "second", false, "use the opening hand size of the player going second")
	return cmd
}
