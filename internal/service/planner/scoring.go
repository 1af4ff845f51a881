package planner

import (
	"math"
	"strings"

	"cadence/internal/domain/content"
)

// BrandAlignment rewards brand values and key messages found in caption and
// penalizes avoided topics. Matching is case-insensitive substring matching.
func BrandAlignment(caption string, voice content.BrandVoice) float64 {
	text := strings.ToLower(caption)
	score := 0.5
	for _, v := range voice.Values {
		if containsFold(text, v) {
			score += 0.1
		}
	}
	for _, m := range voice.KeyMessages {
		if containsFold(text, m) {
			score += 0.15
		}
	}
	for _, a := range voice.AvoidTopics {
		if containsFold(text, a) {
			score -= 0.2
		}
	}
	return math.Max(0, math.Min(1, score))
}

// SustainabilityScore counts sustainability keywords in caption, capped at 1
func SustainabilityScore(caption string) float64 {
	text := strings.ToLower(caption)
	hits := 0
	for _, k := range sustainabilityKeywords {
		if strings.Contains(text, k) {
			hits++
		}
	}
	return math.Min(1, float64(hits)/10)
}

// containsFold expects lowerText to be lower-cased already
func containsFold(lowerText, term string) bool {
	return strings.Contains(lowerText, strings.ToLower(term))
}
