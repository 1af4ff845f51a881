// internal/domain/llm/model.go

package llm

import (
	"context"
)

// Provider identifies a text-generation backend
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderGPT4   Provider = "gpt4"
)

// FallbackOrder is the fixed priority order used when sweeping providers after a failure
var FallbackOrder = []Provider{ProviderGemini, ProviderClaude, ProviderGPT4}

// TaskType is the category of work a task asks a provider to do
type TaskType string

const (
	TaskTrendDiscovery      TaskType = "trend-discovery"
	TaskContentGeneration   TaskType = "content-generation"
	TaskBrandVoice          TaskType = "brand-voice"
	TaskCompetitiveAnalysis TaskType = "competitive-analysis"
	TaskAudienceInsights    TaskType = "audience-insights"
)

// Complexity is a coarse hint used by the selector for unmapped task types
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Task describes one unit of generation work
type Task struct {
	Type         TaskType   `json:"type"`
	Complexity   Complexity `json:"complexity"`
	Context      string     `json:"context"`
	Requirements []string   `json:"requirements,omitempty"`
}

// GenerateOptions tunes a single generation call
type GenerateOptions struct {
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// TextGenerator is the single contract every provider backend is reached through
type TextGenerator interface {
	// Generate returns plain text produced by the given provider for the prompt
	Generate(ctx context.Context, prompt string, provider Provider, opts GenerateOptions) (string, error)
}

// Executor runs a task against the best provider, falling back on failure
type Executor interface {
	Execute(ctx context.Context, task Task) (string, error)
}
