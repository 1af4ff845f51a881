package llm

import (
	"cadence/internal/domain/llm"
)

// RoutingTable maps task types to providers. It is copied on construction
// and never mutated afterwards.
type RoutingTable struct {
	ByType map[llm.TaskType]llm.Provider
	// HighComplexity is used for unmapped task types with high complexity
	HighComplexity llm.Provider
	// Default is used for every other unmapped task
	Default llm.Provider
}

// DefaultRoutingTable returns the standard task routing
func DefaultRoutingTable() RoutingTable {
	return RoutingTable{
		ByType: map[llm.TaskType]llm.Provider{
			llm.TaskTrendDiscovery:      llm.ProviderGemini,
			llm.TaskContentGeneration:   llm.ProviderGemini,
			llm.TaskBrandVoice:          llm.ProviderClaude,
			llm.TaskCompetitiveAnalysis: llm.ProviderGPT4,
			llm.TaskAudienceInsights:    llm.ProviderGPT4,
		},
		HighComplexity: llm.ProviderGPT4,
		Default:        llm.ProviderGemini,
	}
}

// Selector picks the provider best suited to a task
type Selector struct {
	table RoutingTable
}

// NewSelector creates a selector over a private copy of table
func NewSelector(table RoutingTable) *Selector {
	byType := make(map[llm.TaskType]llm.Provider, len(table.ByType))
	for k, v := range table.ByType {
		byType[k] = v
	}
	table.ByType = byType
	return &Selector{table: table}
}

// Select returns the provider for task
func (s *Selector) Select(task llm.Task) llm.Provider {
	if p, ok := s.table.ByType[task.Type]; ok {
		return p
	}
	if task.Complexity == llm.ComplexityHigh {
		return s.table.HighComplexity
	}
	return s.table.Default
}

// FallbackChain returns primary followed by every other provider of order,
// keeping their relative order
func FallbackChain(primary llm.Provider, order []llm.Provider) []llm.Provider {
	chain := make([]llm.Provider, 0, len(order)+1)
	chain = append(chain, primary)
	for _, p := range order {
		if p != primary {
			chain = append(chain, p)
		}
	}
	return chain
}
