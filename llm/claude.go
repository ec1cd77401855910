package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	ClaudeBaseURL    = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	claudeMaxTokens  = 4096
)

// ClaudeClient calls the Anthropic messages API.
type ClaudeClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClaudeClient(apiKey, model string, client *http.Client) *ClaudeClient {
	return &ClaudeClient{apiKey: apiKey, model: model, baseURL: ClaudeBaseURL, client: client}
}

// WithBaseURL points the client at another endpoint.
func (c *ClaudeClient) WithBaseURL(u string) *ClaudeClient {
	c.baseURL = u
	return c
}

func (c *ClaudeClient) Model() string { return c.model }

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system,omitempty"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// Complete sends the prompt. The messages API has no JSON mode, so JSONMode is
// ignored and the caller's parser handles any surrounding prose.
func (c *ClaudeClient) Complete(ctx context.Context, p Prompt) (string, error) {
	maxTokens := p.MaxTokens
	if maxTokens <= 0 {
		maxTokens = claudeMaxTokens
	}
	req := claudeRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		System:      p.System,
		Temperature: p.Temperature,
		Messages:    []claudeMessage{{Role: "user", Content: p.User}},
	}

	var resp claudeResponse
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}
	if err := postJSON(ctx, c.client, "claude", c.baseURL, headers, req, &resp); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty claude response")
	}
	return sb.String(), nil
}
