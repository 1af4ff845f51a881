package timing

import (
	"math"

	"cadence/internal/domain/timing"
)

const (
	circadianWeight  = 0.4
	historicalWeight = 0.4
	audienceWeight   = 0.2
)

// Personalizer blends circadian peaks with a user's history and audience geography
type Personalizer struct {
	table *CircadianTable
}

// NewPersonalizer creates a personalizer over table
func NewPersonalizer(table *CircadianTable) *Personalizer {
	return &Personalizer{table: table}
}

// Personalize picks the best posting hour for platform. It reports false when
// the platform has no circadian entry.
func (p *Personalizer) Personalize(platform string, profile timing.UserProfile) (timing.Timing, bool) {
	if !p.table.Has(platform) {
		return timing.Timing{}, false
	}

	history, ok := profile.HistoryFor(platform)
	if !ok {
		return p.table.Fallback(platform)
	}

	bestHour, bestScore := 0, math.Inf(-1)
	for hour := 0; hour < 24; hour++ {
		score := circadianWeight*p.table.Score(hour, platform) +
			historicalWeight*history.TimeSlots[hour] +
			audienceWeight*AudienceScore(hour, profile.AudienceDemographics.Locations)
		// strict comparison keeps the lowest hour on ties
		if score > bestScore {
			bestHour, bestScore = hour, score
		}
	}

	return timing.Timing{
		BestHour:   bestHour,
		Score:      bestScore,
		Confidence: confidence(len(history.TimeSlots), bestScore),
	}, true
}

func confidence(dataPoints int, score float64) float64 {
	quality := math.Min(float64(dataPoints)/24, 1)
	c := quality*0.6 + math.Max(math.Min(score, 1), 0)*0.4
	return math.Max(0, math.Min(c, 1))
}
