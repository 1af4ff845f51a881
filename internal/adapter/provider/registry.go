package provider

import (
	"context"
	"fmt"
	"sync"

	"cadence/internal/config"
	"cadence/internal/domain/llm"
)

// Registry routes generation calls to the client registered for a provider.
// It implements llm.TextGenerator.
type Registry struct {
	mu      sync.RWMutex
	clients map[llm.Provider]Client
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{clients: make(map[llm.Provider]Client)}
}

// Register adds or replaces the client for provider
func (r *Registry) Register(provider llm.Provider, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[provider] = client
}

// Has reports whether provider has a client
func (r *Registry) Has(provider llm.Provider) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[provider]
	return ok
}

// Generate calls the client registered for provider
func (r *Registry) Generate(ctx context.Context, prompt string, provider llm.Provider, opts llm.GenerateOptions) (string, error) {
	r.mu.RLock()
	client, ok := r.clients[provider]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%s: %w", provider, llm.ErrProviderNotConfigured)
	}
	return client.Generate(ctx, prompt, opts)
}

// NewRegistryFromConfig registers mock clients for every provider in mock
// mode and an HTTP client for every provider with a key in live mode
func NewRegistryFromConfig(cfg config.LLMConfig) *Registry {
	r := NewRegistry()
	if cfg.Mode != "live" {
		for _, p := range llm.FallbackOrder {
			r.Register(p, NewMockClient(p))
		}
		return r
	}

	if cfg.GeminiKey != "" {
		r.Register(llm.ProviderGemini, NewGeminiClient(HTTPConfig{
			APIKey: cfg.GeminiKey, BaseURL: cfg.GeminiBaseURL, Model: cfg.GeminiModel, Timeout: cfg.CallTimeout,
		}))
	}
	if cfg.AnthropicKey != "" {
		r.Register(llm.ProviderClaude, NewAnthropicClient(HTTPConfig{
			APIKey: cfg.AnthropicKey, BaseURL: cfg.AnthropicBaseURL, Model: cfg.AnthropicModel, Timeout: cfg.CallTimeout,
		}))
	}
	if cfg.OpenAIKey != "" {
		r.Register(llm.ProviderGPT4, NewOpenAIClient(HTTPConfig{
			APIKey: cfg.OpenAIKey, BaseURL: cfg.OpenAIBaseURL, Model: cfg.OpenAIModel, Timeout: cfg.CallTimeout,
		}))
	}
	return r
}
