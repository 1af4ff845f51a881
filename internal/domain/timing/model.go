package timing

import (
	"context"
)

// Demographics describes who a creator's audience is
type Demographics struct {
	AgeGroups map[string]float64 `json:"ageGroups" yaml:"ageGroups"`
	Locations map[string]float64 `json:"locations" yaml:"locations"`
	Interests []string           `json:"interests" yaml:"interests"`
}

// PlatformEngagement maps hour of day (0-23) to normalized engagement for one platform
type PlatformEngagement struct {
	Platform  string          `json:"platform" yaml:"platform"`
	TimeSlots map[int]float64 `json:"timeSlots" yaml:"timeSlots"`
}

// UserProfile is the caller-supplied context used to personalize timing
type UserProfile struct {
	Timezone             string               `json:"timezone" yaml:"timezone"`
	AudienceDemographics Demographics         `json:"audienceDemographics" yaml:"audienceDemographics"`
	HistoricalEngagement []PlatformEngagement `json:"historicalEngagement" yaml:"historicalEngagement"`
}

// HistoryFor returns the first engagement record for platform
func (p UserProfile) HistoryFor(platform string) (PlatformEngagement, bool) {
	for _, h := range p.HistoricalEngagement {
		if h.Platform == platform {
			return h, true
		}
	}
	return PlatformEngagement{}, false
}

// Timing is an intermediate best-hour result
type Timing struct {
	BestHour           int     `json:"bestHour"`
	Score              float64 `json:"score"`
	Confidence         float64 `json:"confidence"`
	ExpectedEngagement int     `json:"expectedEngagement"`
}

// Recommendation is the posting-time recommendation for one platform
type Recommendation struct {
	Platform           string  `json:"platform" yaml:"platform"`
	OptimalTime        string  `json:"optimalTime" yaml:"optimalTime"`
	Timezone           string  `json:"timezone" yaml:"timezone"`
	Confidence         float64 `json:"confidence" yaml:"confidence"`
	ExpectedEngagement int     `json:"expectedEngagement" yaml:"expectedEngagement"`
	Reasoning          string  `json:"reasoning" yaml:"reasoning"`
}

// Event types understood by the event adjuster
const (
	EventHoliday         = "holiday"
	EventAlgorithmUpdate = "algorithm_update"
)

// Event is a calendar event that may shift posting behavior
type Event struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	Impact     string `json:"impact"`
	Adjustment int    `json:"adjustment"`
}

// EventFeed lists currently active calendar events
type EventFeed interface {
	CurrentEvents(ctx context.Context) ([]Event, error)
}

// Optimizer recommends posting times
type Optimizer interface {
	GetOptimalTiming(ctx context.Context, platforms []string, profile UserProfile, contentType string) []Recommendation
}
