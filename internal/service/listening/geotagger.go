package listening

import (
	"strings"

	"cadence/internal/domain/trend"
)

// TouchesPlatforms reports whether the signal was seen on any of platforms.
// An empty platform list matches everything.
func TouchesPlatforms(signal trend.Signal, platforms []string) bool {
	if len(platforms) == 0 {
		return true
	}
	for _, p := range signal.Platforms {
		for _, want := range platforms {
			if strings.EqualFold(p, want) {
				return true
			}
		}
	}
	return false
}

// InRegion reports whether the signal lists region. An empty region matches everything.
func InRegion(signal trend.Signal, region string) bool {
	if region == "" {
		return true
	}
	for _, r := range signal.Regions {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}

// FilterSignals keeps signals matching both the platform set and region
func FilterSignals(signals []trend.Signal, platforms []string, region string) []trend.Signal {
	out := make([]trend.Signal, 0, len(signals))
	for _, s := range signals {
		if TouchesPlatforms(s, platforms) && InRegion(s, region) {
			out = append(out, s)
		}
	}
	return out
}
