package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/deck-odds/internal/config"
	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/report"
	"github.com/iwvelando/deck-odds/pkg/adapters"
	"github.com/iwvelando/deck-odds/pkg/constants"
	"github.com/iwvelando/deck-odds/pkg/output"
)

// Options configures the HTTP handler.
type Options struct {
	MaxUploadSize int64
	MaxSamples    int
	// MaxWorkers caps the workers a request may ask for. Zero selects
	// runtime.NumCPU().
	MaxWorkers int
	// Workers is used when a request does not ask for a worker count.
	Workers int
	Version string
	// Advisor, when set, adds AI advice to reports that request it.
	Advisor report.Advisor
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	maxSamples    int
	maxWorkers    int
	workers       int
	version       string
	advisor       report.Advisor
}

// NewHandler constructs the HTTP handler that serves the odds API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	maxSamples := opts.MaxSamples
	if maxSamples <= 0 {
		maxSamples = constants.DefaultMaxSamples
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		maxSamples:    maxSamples,
		maxWorkers:    maxWorkers,
		workers:       workers,
		version:       trimmedVersion,
		advisor:       opts.Advisor,
	}

	mux := http.NewServeMux()

	// Odds API endpoint for JSON deck configurations
	mux.HandleFunc("/api/odds", h.handleOdds)

	// Odds API endpoint (YAML file upload)
	mux.HandleFunc("/api/odds/upload", h.handleOddsUpload)

	// Default deck for new configurations
	mux.HandleFunc("/api/defaults", h.handleDefaults)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type oddsResponse struct {
	Report     *report.Report `json:"report"`
	CSV        string         `json:"csv"`
	Duration   string         `json:"duration"`
	ConfigYAML string         `json:"configYaml,omitempty"`
}

type defaultsResponse struct {
	Deck           config.DeckConfig `json:"deck"`
	HandSizeFirst  int               `json:"handSizeFirst"`
	HandSizeSecond int               `json:"handSizeSecond"`
	Samples        int               `json:"samples"`
	MaxSamples     int               `json:"maxSamples"`
}

// oddsRequest is the JSON body of /api/odds.
type oddsRequest struct {
	config.Configuration
	Advice bool `json:"advice,omitempty"`
}

func (h *handler) handleOdds(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOdds"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req oddsRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return
	}

	cfg := req.Configuration
	cfg.ApplyDefaults()
	h.runOdds(r.Context(), w, &cfg, req.Advice, start, op)
}

func (h *handler) handleOddsUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOddsUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	wantAdvice, _ := strconv.ParseBool(r.FormValue("advice"))
	h.runOdds(r.Context(), w, cfg, wantAdvice, start, op)
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	first := true
	if value := r.URL.Query().Get("first"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid first parameter %q", value), "server.handleDefaults")
			return
		}
		first = parsed
	}

	h.writeJSON(w, http.StatusOK, defaultsResponse{
		Deck:           adapters.SpecToConfig(deck.DefaultSpec(first)),
		HandSizeFirst:  constants.DefaultHandSizeFirst,
		HandSizeSecond: constants.DefaultHandSizeSecond,
		Samples:        constants.DefaultSamples,
		MaxSamples:     h.maxSamples,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runOdds(ctx context.Context, w http.ResponseWriter, cfg *config.Configuration, wantAdvice bool, start time.Time, op string) {
	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if cfg.Simulation.Samples > h.maxSamples {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("samples %d exceeds limit of %d", cfg.Simulation.Samples, h.maxSamples), op)
		return
	}
	if cfg.Simulation.Workers > h.maxWorkers {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("workers %d exceeds limit of %d", cfg.Simulation.Workers, h.maxWorkers), op)
		return
	}

	opts, err := adapters.SimulationToOptions(cfg.Simulation)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if opts.Workers == 0 {
		opts.Workers = h.workers
	}
	if wantAdvice && h.advisor != nil {
		opts.Advisor = h.advisor
	}

	rep, err := report.Build(ctx, h.logger, adapters.ConfigToSpec(cfg.Deck), opts)
	if err != nil {
		status := http.StatusInternalServerError
		if deck.IsConfigError(err) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	rep.Warnings = appendUnique(rep.Warnings, cfg.ValidateConfiguration()...)

	configYAML, err := yaml.Marshal(struct {
		Deck       config.DeckConfig       `yaml:"deck"`
		Simulation config.SimulationConfig `yaml:"simulation"`
	}{cfg.Deck, cfg.Simulation})
	if err != nil {
		h.logger.Warn("failed to marshal resolved configuration",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)
	h.logger.Info("odds computed",
		zap.String("op", op),
		zap.String("id", rep.ID),
		zap.Int("categories", len(rep.Rows)),
		zap.Int("trials", rep.Trials),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, oddsResponse{
		Report:     rep,
		CSV:        output.CsvString(rep),
		Duration:   elapsed.String(),
		ConfigYAML: string(configYAML),
	})
}

func appendUnique(dst []string, values ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}
	for _, v := range values {
		if !seen[v] {
			dst = append(dst, v)
			seen[v] = true
		}
	}
	return dst
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("odds request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
