package trend

import (
	"time"
)

// Signal is a raw trend observation supplied by a signal source
type Signal struct {
	Topic     string    `json:"topic" yaml:"topic"`
	Mentions  int       `json:"mentions" yaml:"mentions"`
	Growth    float64   `json:"growth" yaml:"growth"`
	Platforms []string  `json:"platforms" yaml:"platforms"`
	Regions   []string  `json:"regions" yaml:"regions"`
	Observed  time.Time `json:"observed,omitempty" yaml:"observed,omitempty"`
}

// Lead time buckets, ordered from soonest to latest peak
const (
	LeadTimeWeeks1To2  = "1-2 weeks"
	LeadTimeWeeks2To4  = "2-4 weeks"
	LeadTimeMonths1To2 = "1-2 months"
	LeadTimeMonths2To3 = "2-3 months"
)

// LeadTimes lists every lead time bucket
var LeadTimes = []string{LeadTimeWeeks1To2, LeadTimeWeeks2To4, LeadTimeMonths1To2, LeadTimeMonths2To3}

// ScoredTrend is a signal with derived scoring
type ScoredTrend struct {
	Topic             string   `json:"topic" yaml:"topic"`
	Score             int      `json:"score" yaml:"score"`
	GrowthVelocity    float64  `json:"growthVelocity" yaml:"growthVelocity"`
	AudienceRelevance float64  `json:"audienceRelevance" yaml:"audienceRelevance"`
	CompetitionLevel  float64  `json:"competitionLevel" yaml:"competitionLevel"`
	LeadTime          string   `json:"leadTime" yaml:"leadTime"`
	Explanation       string   `json:"explanation" yaml:"explanation"`
	Platforms         []string `json:"platforms" yaml:"platforms"`
	GeoRegions        []string `json:"geoRegions" yaml:"geoRegions"`
	Mentions          int      `json:"mentions" yaml:"mentions"`
	Growth            float64  `json:"growth" yaml:"growth"`
}

// HasPlatform reports whether the trend was seen on platform
func (t ScoredTrend) HasPlatform(platform string) bool {
	for _, p := range t.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// MicroTrend is a fast-growing, low-volume trend flagged for early action
type MicroTrend struct {
	ScoredTrend
	DetectedAt  time.Time `json:"detectedAt"`
	Confidence  float64   `json:"confidence"`
	SourceCount int       `json:"sourceCount"`
}
