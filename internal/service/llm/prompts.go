package llm

import (
	"strings"

	"cadence/internal/domain/llm"
)

var systemPrompts = map[llm.TaskType]string{
	llm.TaskTrendDiscovery:      "You are a trend analysis expert. Identify emerging trends and explain why they are gaining traction.",
	llm.TaskContentGeneration:   "You are a creative content strategist. Generate engaging social media content that aligns with current trends.",
	llm.TaskBrandVoice:          "You are a brand voice specialist. Ensure all content maintains consistent brand identity and tone.",
	llm.TaskCompetitiveAnalysis: "You are a competitive intelligence analyst. Analyze competitor strategies and identify opportunities.",
	llm.TaskAudienceInsights:    "You are an audience research expert. Provide deep insights into target audience behavior and preferences.",
}

const defaultSystemPrompt = "You are a helpful AI assistant for social media management."

// SystemPrompt returns the instruction preamble for a task type
func SystemPrompt(t llm.TaskType) string {
	if p, ok := systemPrompts[t]; ok {
		return p
	}
	return defaultSystemPrompt
}

// BuildPrompt renders the user prompt for a task
func BuildPrompt(task llm.Task) string {
	if len(task.Requirements) == 0 {
		return task.Context
	}
	var b strings.Builder
	b.WriteString(task.Context)
	b.WriteString("\n\nRequirements:")
	for _, r := range task.Requirements {
		b.WriteString("\n- ")
		b.WriteString(r)
	}
	return b.String()
}
