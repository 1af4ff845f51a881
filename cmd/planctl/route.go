package main

import (
	"fmt"
	"io"
	"strings"

	"cadence/internal/domain/llm"
	llmService "cadence/internal/service/llm"
)

func runRoute(taskType, complexity string, out io.Writer) error {
	if taskType == "" {
		return fmt.Errorf("--type required")
	}
	switch llm.Complexity(complexity) {
	case llm.ComplexityLow, llm.ComplexityMedium, llm.ComplexityHigh:
	default:
		return fmt.Errorf("unknown complexity %q: want low, medium or high", complexity)
	}

	task := llm.Task{Type: llm.TaskType(taskType), Complexity: llm.Complexity(complexity)}
	primary := llmService.NewSelector(llmService.DefaultRoutingTable()).Select(task)
	chain := llmService.FallbackChain(primary, llm.FallbackOrder)

	names := make([]string, 0, len(chain))
	for _, p := range chain {
		names = append(names, string(p))
	}
	_, err := fmt.Fprintf(out, "provider: %s\nchain: %s\n", primary, strings.Join(names, " -> "))
	return err
}
