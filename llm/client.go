// Package llm talks to hosted chat-completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned by New when no API key is available.
var ErrNotConfigured = errors.New("llm not configured")

// Prompt is one system + user exchange.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	// JSONMode asks the backend to constrain output to a JSON object, where supported.
	JSONMode bool
}

// Completer returns the model's text reply to a prompt.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
	Model() string
}

const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"

	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultClaudeModel = "claude-haiku-4-5-20251001"
)

// New builds a Completer for the named provider. An empty model selects the
// provider default; a nil client gets a 60 second timeout.
func New(provider, apiKey, model string, client *http.Client) (Completer, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	switch strings.ToLower(provider) {
	case "", ProviderOpenAI:
		if model == "" {
			model = DefaultOpenAIModel
		}
		return NewOpenAIClient(apiKey, model, client), nil
	case ProviderClaude, "anthropic":
		if model == "" {
			model = DefaultClaudeModel
		}
		return NewClaudeClient(apiKey, model, client), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (valid: openai, claude)", provider)
	}
}

// APIError is a non-2xx answer from a completion endpoint.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API %d: %s", e.Provider, e.Status, e.Body)
}

// postJSON sends body to endpoint and decodes a 200 response into dst.
func postJSON(ctx context.Context, client *http.Client, provider, endpoint string, headers map[string]string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s API error: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{Provider: provider, Status: resp.StatusCode, Body: string(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", provider, err)
	}
	return nil
}
