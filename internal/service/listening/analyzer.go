package listening

import (
	"math"

	"cadence/internal/domain/trend"
)

const (
	growthWeight      = 0.4
	relevanceWeight   = 0.35
	competitionWeight = 0.25

	// mentions at which competition saturates
	competitionThreshold = 10000

	microGrowthThreshold   = 1.5
	microMentionsThreshold = 1000

	unknownPlatformWeight = 0.5
)

// Scorer turns raw signals into scored trends
type Scorer struct {
	platformWeights map[string]float64
}

// DefaultPlatformWeights returns the audience relevance of each platform
func DefaultPlatformWeights() map[string]float64 {
	return map[string]float64{
		"tiktok":    0.9,
		"instagram": 0.85,
		"youtube":   0.8,
		"twitter":   0.75,
		"linkedin":  0.7,
		"discord":   0.65,
	}
}

// NewScorer creates a scorer. A nil weights map selects the defaults.
func NewScorer(weights map[string]float64) *Scorer {
	if weights == nil {
		weights = DefaultPlatformWeights()
	}
	copied := make(map[string]float64, len(weights))
	for k, v := range weights {
		copied[k] = v
	}
	return &Scorer{platformWeights: copied}
}

// Score computes the composite score of a signal. The explanation is left empty.
func (s *Scorer) Score(signal trend.Signal) trend.ScoredTrend {
	velocity := clamp01(signal.Growth)
	relevance := s.audienceRelevance(signal.Platforms)
	competition := clamp01(float64(signal.Mentions) / competitionThreshold)

	score := math.Round(100 * (growthWeight*velocity + relevanceWeight*relevance + competitionWeight*(1-competition)))

	return trend.ScoredTrend{
		Topic:             signal.Topic,
		Score:             int(math.Max(0, math.Min(score, 100))),
		GrowthVelocity:    velocity,
		AudienceRelevance: relevance,
		CompetitionLevel:  competition,
		LeadTime:          LeadTime(velocity),
		Platforms:         append([]string(nil), signal.Platforms...),
		GeoRegions:        append([]string(nil), signal.Regions...),
		Mentions:          signal.Mentions,
		Growth:            signal.Growth,
	}
}

// ScoreAll scores signals in order
func (s *Scorer) ScoreAll(signals []trend.Signal) []trend.ScoredTrend {
	out := make([]trend.ScoredTrend, len(signals))
	for i, sig := range signals {
		out[i] = s.Score(sig)
	}
	return out
}

func (s *Scorer) audienceRelevance(platforms []string) float64 {
	if len(platforms) == 0 {
		return unknownPlatformWeight
	}
	var sum float64
	for _, p := range platforms {
		w, ok := s.platformWeights[p]
		if !ok {
			w = unknownPlatformWeight
		}
		sum += w
	}
	return clamp01(sum / float64(len(platforms)))
}

// LeadTime buckets a growth velocity
func LeadTime(velocity float64) string {
	switch {
	case velocity > 0.8:
		return trend.LeadTimeWeeks1To2
	case velocity > 0.6:
		return trend.LeadTimeWeeks2To4
	case velocity > 0.4:
		return trend.LeadTimeMonths1To2
	default:
		return trend.LeadTimeMonths2To3
	}
}

// IsMicroTrend reports whether a signal grows fast while volume is still low
func IsMicroTrend(signal trend.Signal) bool {
	return signal.Growth > microGrowthThreshold && signal.Mentions < microMentionsThreshold
}

// MicroConfidence sums fixed weights for growth, platform spread, volume and
// region spread. The result is one of a small set of tenths in [0,1].
func MicroConfidence(signal trend.Signal) float64 {
	tenths := 0
	if signal.Growth > 1.0 {
		tenths += 3
	}
	if len(signal.Platforms) > 1 {
		tenths += 2
	}
	if signal.Mentions > 100 {
		tenths += 3
	}
	if len(signal.Regions) > 1 {
		tenths += 2
	}
	return float64(tenths) / 10
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
