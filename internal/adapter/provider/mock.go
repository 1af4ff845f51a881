package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"cadence/internal/domain/llm"
)

var (
	quotedTopic = regexp.MustCompile(`"([^"]+)"`)
	formatLine  = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*): <(.+)>$`)
)

// labelledMarker introduces the labelled lines a prompt wants back
const labelledMarker = "Respond using exactly these labelled lines:"

// MockClient produces deterministic text offline. Prompts asking for labelled
// lines get every label filled in, hashtag prompts get hashtags, explanation
// prompts a sentence, everything else a title and caption.
type MockClient struct {
	provider llm.Provider
}

// NewMockClient creates a mock for provider
func NewMockClient(provider llm.Provider) *MockClient {
	return &MockClient{provider: provider}
}

func (m *MockClient) Generate(ctx context.Context, prompt string, _ llm.GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	topic := "your brand"
	if match := quotedTopic.FindStringSubmatch(prompt); match != nil {
		topic = match[1]
	}
	slug := hashtagSlug(topic)

	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(prompt, labelledMarker):
		return m.labelled(prompt, topic, slug), nil
	case strings.Contains(lower, "hashtags"):
		return fmt.Sprintf("#%s #trending #creators #contentstrategy #community", slug), nil
	case strings.HasPrefix(lower, "explain why"):
		return fmt.Sprintf("%s is gaining traction as early adopters share and remix it across platforms.", topic), nil
	default:
		return fmt.Sprintf(
			"%s: what you need to know\nA %s take on %s. Save this post and share it with someone who needs it.",
			topic, m.provider, topic,
		), nil
	}
}

func (m *MockClient) labelled(prompt, topic, slug string) string {
	_, format, _ := strings.Cut(prompt, labelledMarker)
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(format), "\n") {
		match := formatLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			break
		}
		lines = append(lines, match[1]+": "+m.mockValue(match[2], topic, slug))
	}
	return strings.Join(lines, "\n")
}

func (m *MockClient) mockValue(hint, topic, slug string) string {
	switch {
	case strings.Contains(hint, "yes or no"):
		return "yes"
	case strings.Contains(hint, "0 to 1"):
		return "0.8"
	case strings.Contains(hint, "percent"):
		return "4.5"
	case strings.Contains(hint, "whole number"):
		return "12000"
	case strings.Contains(hint, "positive, negative"):
		return "positive"
	case strings.HasPrefix(hint, "hashtags"):
		return fmt.Sprintf("#%s #trending #creators", slug)
	default:
		return fmt.Sprintf("A %s take on %s.", m.provider, topic)
	}
}

func hashtagSlug(topic string) string {
	var b strings.Builder
	for _, word := range strings.Fields(topic) {
		r := []rune(strings.ToLower(word))
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}
