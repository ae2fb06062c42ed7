package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/deck-odds/internal/advice"
	"github.com/iwvelando/deck-odds/internal/report"
	"github.com/iwvelando/deck-odds/internal/server"
	"github.com/iwvelando/deck-odds/pkg/adapters"
	"github.com/iwvelando/deck-odds/pkg/constants"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	var serverConfig, address, maxUploadSize string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the odds API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if maxUploadSize != "" {
				size, err := server.ParseSize(maxUploadSize)
				if err != nil {
					return fmt.Errorf("invalid --max-upload-size: %w", err)
				}
				cfg.SetUploadSizeBytes(size)
			}
			return runServer(cmd.Context(), cfg, opts.logLevel)
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "maximum request size override (e.g. 512K, 2M)")
	return cmd
}

func runServer(ctx context.Context, cfg *server.Config, logLevel string) error {
	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var advisor report.Advisor
	if cfg.Advice.Enabled {
		advisor = advice.NewClient(adapters.AdviceToClientConfig(cfg.Advice, os.Getenv(constants.AdviceAPIKeyEnv)), logger)
	}

	srv := &http.Server{
		Addr: cfg.Address,
		Handler: server.NewHandler(logger, server.Options{
			MaxUploadSize: cfg.UploadSizeBytes(),
			MaxSamples:    cfg.MaxSamples,
			MaxWorkers:    cfg.MaxWorkers,
			Workers:       cfg.Workers,
			Version:       version,
			Advisor:       advisor,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("server listening",
		zap.String("op", "main.serve"),
		zap.String("address", cfg.Address),
		zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
		zap.Int("maxSamples", cfg.MaxSamples),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server", zap.String("op", "main.serve"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
