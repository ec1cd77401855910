package llm

import (
	"context"
	"fmt"
	"net/http"
)

const OpenAIBaseURL = "https://api.openai.com/v1/chat/completions"

// OpenAIClient calls the chat completions API.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewOpenAIClient(apiKey, model string, client *http.Client) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, model: model, baseURL: OpenAIBaseURL, client: client}
}

// WithBaseURL points the client at another endpoint.
func (o *OpenAIClient) WithBaseURL(u string) *OpenAIClient {
	o.baseURL = u
	return o
}

func (o *OpenAIClient) Model() string { return o.model }

type openaiRequest struct {
	Model          string          `json:"model"`
	Messages       []openaiMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *openaiFormat   `json:"response_format,omitempty"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiFormat struct {
	Type string `json:"type"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (o *OpenAIClient) Complete(ctx context.Context, p Prompt) (string, error) {
	req := openaiRequest{
		Model:       o.model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
	if p.System != "" {
		req.Messages = append(req.Messages, openaiMessage{Role: "system", Content: p.System})
	}
	req.Messages = append(req.Messages, openaiMessage{Role: "user", Content: p.User})
	if p.JSONMode {
		req.ResponseFormat = &openaiFormat{Type: "json_object"}
	}

	var resp openaiResponse
	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	if err := postJSON(ctx, o.client, "openai", o.baseURL, headers, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return resp.Choices[0].Message.Content, nil
}
