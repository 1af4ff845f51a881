package provider

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"cadence/internal/domain/llm"
)

// OpenAIClient calls the chat completions API
type OpenAIClient struct {
	client *resty.Client
	model  string
}

// NewOpenAIClient creates a client for the gpt4 provider
func NewOpenAIClient(cfg HTTPConfig) *OpenAIClient {
	c := newRestyClient(cfg).SetAuthToken(cfg.APIKey)
	return &OpenAIClient{client: c, model: cfg.Model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a single user message
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: opts.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	var out chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err := checkResponse(llm.ProviderGPT4, resp, err); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}
