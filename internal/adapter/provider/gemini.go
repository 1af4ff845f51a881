package provider

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"cadence/internal/domain/llm"
)

// GeminiClient calls the generateContent API
type GeminiClient struct {
	client *resty.Client
	model  string
	apiKey string
}

// NewGeminiClient creates a client for the gemini provider
func NewGeminiClient(cfg HTTPConfig) *GeminiClient {
	return &GeminiClient{client: newRestyClient(cfg), model: cfg.Model, apiKey: cfg.APIKey}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate returns the text of the first candidate
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if opts.SystemPrompt != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: opts.SystemPrompt}}}
	}

	var out geminiResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("model", c.model).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&out).
		Post("/v1beta/models/{model}:generateContent")
	if err := checkResponse(llm.ProviderGemini, resp, err); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
