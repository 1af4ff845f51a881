// internal/service/timing/optimizer.go

package timing

import (
	"context"
	"fmt"
	"strings"

	"cadence/internal/domain/timing"
)

// Optimizer implements the timing.Optimizer interface
type Optimizer struct {
	table        *CircadianTable
	personalizer *Personalizer
	adjuster     *EventAdjuster
}

// NewOptimizer creates a new timing optimizer
func NewOptimizer(table *CircadianTable, adjuster *EventAdjuster) *Optimizer {
	if adjuster == nil {
		adjuster = NewEventAdjuster(nil, nil, 0, nil)
	}
	return &Optimizer{
		table:        table,
		personalizer: NewPersonalizer(table),
		adjuster:     adjuster,
	}
}

// GetOptimalTiming recommends a posting time for every known platform.
// Platforms without a circadian entry are skipped.
func (o *Optimizer) GetOptimalTiming(ctx context.Context, platforms []string, profile timing.UserProfile, contentType string) []timing.Recommendation {
	recs := make([]timing.Recommendation, 0, len(platforms))
	for _, platform := range platforms {
		personalized, ok := o.personalizer.Personalize(platform, profile)
		if !ok {
			continue
		}
		adjusted := o.adjuster.Adjust(ctx, personalized)

		recs = append(recs, timing.Recommendation{
			Platform:           platform,
			OptimalTime:        FormatHour(adjusted.BestHour),
			Timezone:           profile.Timezone,
			Confidence:         adjusted.Confidence,
			ExpectedEngagement: adjusted.ExpectedEngagement,
			Reasoning:          reasoning(platform, adjusted, profile),
		})
	}
	return recs
}

// FormatHour renders a 24h hour as "7:00 PM"
func FormatHour(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour > 12:
		display = hour - 12
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}

func reasoning(platform string, t timing.Timing, profile timing.UserProfile) string {
	var reasons []string
	if t.Confidence > 0.8 {
		reasons = append(reasons, "High confidence based on historical performance")
	}
	if t.Score > 1.2 {
		reasons = append(reasons, fmt.Sprintf("Peak engagement window for %s", platform))
	}
	if loc, ok := PrimaryLocation(profile.AudienceDemographics.Locations); ok {
		reasons = append(reasons, fmt.Sprintf("Optimized for %s audience timezone", loc))
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("Standard engagement window for %s.", platform)
	}
	return strings.Join(reasons, ". ") + "."
}
