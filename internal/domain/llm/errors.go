// internal/domain/llm/errors.go

package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAllProvidersFailed is matched by errors.Is against *AllProvidersFailedError
var ErrAllProvidersFailed = errors.New("all LLM providers failed")

// ErrProviderNotConfigured is returned when a provider has no backing client
var ErrProviderNotConfigured = errors.New("provider not configured")

// ProviderError records a single failed generation call
type ProviderError struct {
	Provider Provider
	Err      error
}

func (e ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// AllProvidersFailedError is returned once every provider in the fallback chain has failed
type AllProvidersFailedError struct {
	TaskType TaskType
	Attempts []ProviderError
}

func (e *AllProvidersFailedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return fmt.Sprintf("%v for task %s: [%s]", ErrAllProvidersFailed, e.TaskType, strings.Join(parts, "; "))
}

func (e *AllProvidersFailedError) Is(target error) bool {
	return target == ErrAllProvidersFailed
}
