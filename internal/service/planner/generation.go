package planner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"cadence/internal/domain/content"
	"cadence/internal/domain/llm"
)

const (
	defaultTitle    = "Generated Content"
	generalTopic    = "general brand content"
	maxHashtags     = 8
	minHashtagRunes = 3
)

var hashtagSeparators = regexp.MustCompile(`[#\s,]+`)

// ParseHashtags splits generated text into hashtags, dropping tokens of two
// characters or fewer and keeping at most eight
func ParseHashtags(text string) []string {
	tags := make([]string, 0, maxHashtags)
	for _, tok := range hashtagSeparators.Split(text, -1) {
		if utf8.RuneCountInString(tok) < minHashtagRunes {
			continue
		}
		tags = append(tags, tok)
		if len(tags) == maxHashtags {
			break
		}
	}
	return tags
}

// ParseGenerated takes the first non-blank line as the title and the rest as
// the caption. Text with a single line is used as the caption too.
func ParseGenerated(text string) (title, caption string) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	title = defaultTitle
	if len(lines) > 0 {
		title = strings.TrimSpace(lines[0])
	}
	caption = text
	if len(lines) > 1 {
		caption = strings.Join(lines[1:], "\n")
	}
	return title, caption
}

// contentTask names the day and slot so each piece gets its own prompt and cache entry
func contentTask(s slot, voice content.BrandVoice) llm.Task {
	topic := s.topic
	if topic == "" {
		topic = generalTopic
	}
	return llm.Task{
		Type:       llm.TaskContentGeneration,
		Complexity: llm.ComplexityMedium,
		Context: fmt.Sprintf(
			"Generate %s content for %s about %q for day %d of the week (slot %d)\nBrand voice: %s, targeting %s\nBrand values: %s\nAvoid: %s",
			s.contentType, s.platform, topic, s.day, s.index+1,
			voice.Tone, voice.TargetAudience,
			strings.Join(voice.Values, ", "),
			strings.Join(voice.AvoidTopics, ", "),
		),
	}
}

func hashtagTask(topic, platform string, day int) llm.Task {
	return llm.Task{
		Type:       llm.TaskContentGeneration,
		Complexity: llm.ComplexityLow,
		Context: fmt.Sprintf(
			"Generate 5-8 relevant hashtags for %q on %s for day %d of the week. Focus on trending and niche hashtags.",
			topic, platform, day,
		),
	}
}

func adaptTask(source content.Piece, platform string, voice content.BrandVoice) llm.Task {
	return llm.Task{
		Type:       llm.TaskContentGeneration,
		Complexity: llm.ComplexityMedium,
		Context: fmt.Sprintf(
			"Adapt this content for %s:\nTitle: %s\nCaption: %s\n\nMaintain brand voice: %s\nPlatform requirements: %s",
			platform, source.Title, source.Caption, voice.Tone, PlatformRequirements(platform),
		),
	}
}
