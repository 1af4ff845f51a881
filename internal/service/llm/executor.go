// internal/service/llm/executor.go

package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cadence/internal/domain/llm"
	"cadence/internal/platform/logger"
)

// ExecutorConfig contains configuration for the task executor
type ExecutorConfig struct {
	// CallTimeout bounds every provider call; a timeout counts as a provider failure
	CallTimeout time.Duration
	Temperature float64
	MaxTokens   int
	// Order is the fallback priority; defaults to llm.FallbackOrder
	Order []llm.Provider
}

// Executor runs tasks with a one-pass provider fallback sweep
type Executor struct {
	selector  *Selector
	generator llm.TextGenerator
	config    ExecutorConfig
	log       *logger.Logger
	tracer    trace.Tracer
}

// NewExecutor creates a new task executor
func NewExecutor(selector *Selector, generator llm.TextGenerator, config ExecutorConfig, log *logger.Logger) *Executor {
	if len(config.Order) == 0 {
		config.Order = llm.FallbackOrder
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Executor{
		selector:  selector,
		generator: generator,
		config:    config,
		log:       log.With("component", "llm_executor"),
		tracer:    otel.Tracer("cadence/llm"),
	}
}

// Chain returns the providers Execute would try for task, in order
func (e *Executor) Chain(task llm.Task) []llm.Provider {
	return FallbackChain(e.selector.Select(task), e.config.Order)
}

// Execute runs task on its selected provider and falls back through the
// remaining providers. Each provider is tried at most once.
func (e *Executor) Execute(ctx context.Context, task llm.Task) (string, error) {
	chain := e.Chain(task)
	prompt := BuildPrompt(task)
	opts := llm.GenerateOptions{
		SystemPrompt: SystemPrompt(task.Type),
		Temperature:  e.config.Temperature,
		MaxTokens:    e.config.MaxTokens,
	}

	attempts := make([]llm.ProviderError, 0, len(chain))
	for i, provider := range chain {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("task %s cancelled: %w", task.Type, err)
		}

		text, err := e.attempt(ctx, provider, task, prompt, opts)
		if err == nil {
			if i > 0 {
				e.log.Info("fallback provider succeeded", "provider", provider, "task_type", task.Type, "attempt", i+1)
			}
			return text, nil
		}

		attempts = append(attempts, llm.ProviderError{Provider: provider, Err: err})
		e.log.Warn("provider failed, falling back", "provider", provider, "task_type", task.Type, "error", err)
	}

	return "", &llm.AllProvidersFailedError{TaskType: task.Type, Attempts: attempts}
}

func (e *Executor) attempt(ctx context.Context, provider llm.Provider, task llm.Task, prompt string, opts llm.GenerateOptions) (string, error) {
	ctx, span := e.tracer.Start(ctx, "llm.attempt", trace.WithAttributes(
		attribute.String("llm.provider", string(provider)),
		attribute.String("llm.task_type", string(task.Type)),
		attribute.String("llm.complexity", string(task.Complexity)),
	))
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, e.config.CallTimeout)
	defer cancel()

	text, err := e.generator.Generate(callCtx, prompt, provider, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", e.config.CallTimeout, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return text, nil
}
