package provider

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"cadence/internal/domain/llm"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient calls the messages API
type AnthropicClient struct {
	client *resty.Client
	model  string
}

// NewAnthropicClient creates a client for the claude provider
func NewAnthropicClient(cfg HTTPConfig) *AnthropicClient {
	c := newRestyClient(cfg).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", anthropicVersion)
	return &AnthropicClient{client: c, model: cfg.Model}
}

type messagesRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate joins every text block of the reply
func (c *AnthropicClient) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	var out messagesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(messagesRequest{
			Model:       c.model,
			System:      opts.SystemPrompt,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			MaxTokens:   maxTokens,
			Temperature: opts.Temperature,
		}).
		SetResult(&out).
		Post("/v1/messages")
	if err := checkResponse(llm.ProviderClaude, resp, err); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
