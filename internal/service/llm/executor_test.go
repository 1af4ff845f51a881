package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/domain/llm"
)

type scriptedGenerator struct {
	mu      sync.Mutex
	results map[llm.Provider]error
	delay   map[llm.Provider]time.Duration
	calls   []llm.Provider
	opts    []llm.GenerateOptions
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string, provider llm.Provider, opts llm.GenerateOptions) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, provider)
	g.opts = append(g.opts, opts)
	err := g.results[provider]
	d := g.delay[provider]
	g.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return string(provider) + ":" + prompt, nil
}

func newTestExecutor(gen llm.TextGenerator, timeout time.Duration) *Executor {
	return NewExecutor(NewSelector(DefaultRoutingTable()), gen, ExecutorConfig{CallTimeout: timeout}, nil)
}

func TestSelector_Select(t *testing.T) {
	s := NewSelector(DefaultRoutingTable())

	tests := []struct {
		task llm.Task
		want llm.Provider
	}{
		{llm.Task{Type: llm.TaskTrendDiscovery, Complexity: llm.ComplexityHigh}, llm.ProviderGemini},
		{llm.Task{Type: llm.TaskContentGeneration, Complexity: llm.ComplexityLow}, llm.ProviderGemini},
		{llm.Task{Type: llm.TaskBrandVoice, Complexity: llm.ComplexityMedium}, llm.ProviderClaude},
		{llm.Task{Type: llm.TaskCompetitiveAnalysis, Complexity: llm.ComplexityLow}, llm.ProviderGPT4},
		{llm.Task{Type: llm.TaskAudienceInsights, Complexity: llm.ComplexityLow}, llm.ProviderGPT4},
		{llm.Task{Type: "sentiment", Complexity: llm.ComplexityHigh}, llm.ProviderGPT4},
		{llm.Task{Type: "sentiment", Complexity: llm.ComplexityLow}, llm.ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(string(tt.task.Type)+"/"+string(tt.task.Complexity), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Select(tt.task))
		})
	}
}

func TestSelector_CopiesTable(t *testing.T) {
	table := DefaultRoutingTable()
	s := NewSelector(table)
	table.ByType[llm.TaskBrandVoice] = llm.ProviderGPT4

	assert.Equal(t, llm.ProviderClaude, s.Select(llm.Task{Type: llm.TaskBrandVoice}))
}

func TestFallbackChain(t *testing.T) {
	assert.Equal(t,
		[]llm.Provider{llm.ProviderClaude, llm.ProviderGemini, llm.ProviderGPT4},
		FallbackChain(llm.ProviderClaude, llm.FallbackOrder))
	assert.Equal(t,
		[]llm.Provider{llm.ProviderGPT4, llm.ProviderGemini, llm.ProviderClaude},
		FallbackChain(llm.ProviderGPT4, llm.FallbackOrder))
}

func TestExecute_PrimarySucceeds(t *testing.T) {
	gen := &scriptedGenerator{}
	e := newTestExecutor(gen, time.Second)

	out, err := e.Execute(context.Background(), llm.Task{
		Type:       llm.TaskBrandVoice,
		Complexity: llm.ComplexityMedium,
		Context:    "rewrite",
	})
	require.NoError(t, err)
	assert.Equal(t, "claude:rewrite", out)
	assert.Equal(t, []llm.Provider{llm.ProviderClaude}, gen.calls)
	assert.Equal(t, SystemPrompt(llm.TaskBrandVoice), gen.opts[0].SystemPrompt)
}

func TestExecute_FallsBackAndStops(t *testing.T) {
	gen := &scriptedGenerator{results: map[llm.Provider]error{
		llm.ProviderGemini: errors.New("503"),
	}}
	e := newTestExecutor(gen, time.Second)

	out, err := e.Execute(context.Background(), llm.Task{
		Type:       llm.TaskContentGeneration,
		Complexity: llm.ComplexityMedium,
		Context:    "caption",
	})
	require.NoError(t, err)
	assert.Equal(t, "claude:caption", out)
	assert.Equal(t, []llm.Provider{llm.ProviderGemini, llm.ProviderClaude}, gen.calls)
}

func TestExecute_AllProvidersFail(t *testing.T) {
	gen := &scriptedGenerator{results: map[llm.Provider]error{
		llm.ProviderGemini: errors.New("gemini down"),
		llm.ProviderClaude: errors.New("claude down"),
		llm.ProviderGPT4:   errors.New("gpt4 down"),
	}}
	e := newTestExecutor(gen, time.Second)

	_, err := e.Execute(context.Background(), llm.Task{Type: llm.TaskBrandVoice, Complexity: llm.ComplexityLow})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrAllProvidersFailed)

	var all *llm.AllProvidersFailedError
	require.ErrorAs(t, err, &all)
	require.Len(t, all.Attempts, 3)
	assert.Equal(t, llm.ProviderClaude, all.Attempts[0].Provider)
	assert.Equal(t, llm.ProviderGemini, all.Attempts[1].Provider)
	assert.Equal(t, llm.ProviderGPT4, all.Attempts[2].Provider)

	assert.Equal(t, []llm.Provider{llm.ProviderClaude, llm.ProviderGemini, llm.ProviderGPT4}, gen.calls)
}

func TestExecute_TimeoutCountsAsFailure(t *testing.T) {
	gen := &scriptedGenerator{delay: map[llm.Provider]time.Duration{
		llm.ProviderGPT4: time.Second,
	}}
	e := newTestExecutor(gen, 20*time.Millisecond)

	out, err := e.Execute(context.Background(), llm.Task{Type: llm.TaskCompetitiveAnalysis, Context: "x"})
	require.NoError(t, err)
	assert.Equal(t, "gemini:x", out)
	assert.Equal(t, []llm.Provider{llm.ProviderGPT4, llm.ProviderGemini}, gen.calls)
}

func TestExecute_CancelledContext(t *testing.T) {
	gen := &scriptedGenerator{}
	e := newTestExecutor(gen, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Execute(ctx, llm.Task{Type: llm.TaskTrendDiscovery})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gen.calls)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "ctx", BuildPrompt(llm.Task{Context: "ctx"}))
	assert.Equal(t, "ctx\n\nRequirements:\n- a\n- b", BuildPrompt(llm.Task{Context: "ctx", Requirements: []string{"a", "b"}}))
}
