package advice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvise_MissingKey(t *testing.T) {
	c := NewClient(Config{APIKey: "  "}, nil)
	assert.Equal(t, MissingKeyText, c.Advise(context.Background(), "Starter: 82.84%"))
}

func TestAdvise_Success(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Stable deck. Cut a Brick.  "}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Model: "test-model"}, nil)
	text := c.Advise(context.Background(), "Starter: 82.84%")

	assert.Equal(t, "Stable deck. Cut a Brick.", text)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 350, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Starter: 82.84%")
}

func TestAdvise_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{"Upstream error status", http.StatusUnauthorized, `{"error":"bad key"}`, "upstream status 401"},
		{"Malformed body", http.StatusOK, `not json`, "decode response"},
		{"No choices", http.StatusOK, `{"choices":[]}`, "no completion choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
			text := c.Advise(context.Background(), "summary")

			assert.True(t, strings.HasPrefix(text, "AI error: "), text)
			assert.Contains(t, text, tt.contains)
		})
	}
}

func TestAdvise_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, nil)
	text := c.Advise(context.Background(), "summary")
	assert.True(t, strings.HasPrefix(text, "AI error: "), text)
}

func TestPrompt(t *testing.T) {
	p := Prompt("Brick: 98.72%")
	assert.Contains(t, p, "Brick: 98.72%")
	assert.Contains(t, p, "max 5 lines")
}
