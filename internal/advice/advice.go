// Package advice asks an OpenAI-compatible chat completion endpoint for a
// short written analysis of a deck's opening-hand odds.
//
// The client never fails the caller: a missing key or any upstream problem
// comes back as plain text in place of the analysis.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/deck-odds/pkg/constants"
)

// MissingKeyText is returned when no API key is configured.
const MissingKeyText = "No API key provided. AI analysis is not available."

// Config configures the advice client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client requests deck analysis from a chat completion API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewClient builds a client, filling unset fields with defaults.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultAdviceBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = constants.DefaultAdviceModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = constants.DefaultAdviceMaxTokens
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = constants.DefaultAdviceTemperature
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = constants.DefaultAdviceTimeout
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Advise returns the model's analysis of summary, or a notice explaining
// why no analysis is available.
func (c *Client) Advise(ctx context.Context, summary string) string {
	if c.apiKey == "" {
		return MissingKeyText
	}

	content, err := c.complete(ctx, Prompt(summary))
	if err != nil {
		c.logger.Warn("advice request failed",
			zap.String("op", "advice.Advise"),
			zap.String("model", c.model),
			zap.Error(err),
		)
		return fmt.Sprintf("AI error: %v", err)
	}
	return content
}

// Prompt wraps a deck summary in the analysis instructions.
func Prompt(summary string) string {
	return "You are a trading card game expert and deckbuilder. Here are opening hand odds for a deck:\n" +
		summary +
		"\nGive a concise analysis (max 5 lines) about deck stability, strengths/weaknesses, and give a tip for improvement."
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
