package planner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"cadence/internal/domain/content"
)

// AnalyzeGaps compares the produced pieces against the expected content
// types of each requested platform
func AnalyzeGaps(pieces []content.Piece, platforms []string) content.GapAnalysis {
	typesByPlatform := make(map[string]map[string]bool)
	counts := make(map[string]int)
	for _, p := range pieces {
		if typesByPlatform[p.Platform] == nil {
			typesByPlatform[p.Platform] = make(map[string]bool)
		}
		typesByPlatform[p.Platform][p.ContentType] = true
		counts[p.Platform]++
	}

	gaps := content.GapAnalysis{
		MissingContentTypes:       []string{},
		UnderrepresentedPlatforms: []string{},
		Suggestions:               []string{},
	}

	for _, platform := range platforms {
		var missing []string
		for _, t := range expectedTypesByPlatform[platform] {
			if !typesByPlatform[platform][t] {
				missing = append(missing, t)
			}
		}
		if len(missing) > 0 {
			gaps.MissingContentTypes = append(gaps.MissingContentTypes, fmt.Sprintf("%s: %s", platform, strings.Join(missing, ", ")))
		}
		if counts[platform] < minWeeklyPieces {
			gaps.UnderrepresentedPlatforms = append(gaps.UnderrepresentedPlatforms, platform)
		}
	}

	for _, gap := range gaps.MissingContentTypes {
		gaps.Suggestions = append(gaps.Suggestions, "Add "+gap)
	}
	for _, platform := range gaps.UnderrepresentedPlatforms {
		gaps.Suggestions = append(gaps.Suggestions, fmt.Sprintf("Increase %s content frequency", platform))
	}

	return gaps
}

// FindRepurposingOpportunities lists videos, then posts with long captions,
// in plan order, keeping the first five
func FindRepurposingOpportunities(pieces []content.Piece) []content.RepurposingOpportunity {
	out := make([]content.RepurposingOpportunity, 0, maxRepurposingOpportunities)

	for _, p := range pieces {
		if p.ContentType == content.TypeVideo {
			out = append(out, content.RepurposingOpportunity{
				SourceContent: p.Title,
				Adaptations:   append([]string(nil), videoAdaptations...),
			})
		}
	}
	for _, p := range pieces {
		if p.ContentType == content.TypePost && utf8.RuneCountInString(p.Caption) > longPostThreshold {
			out = append(out, content.RepurposingOpportunity{
				SourceContent: p.Title,
				Adaptations:   append([]string(nil), longPostAdaptations...),
			})
		}
	}

	if len(out) > maxRepurposingOpportunities {
		out = out[:maxRepurposingOpportunities]
	}
	return out
}
