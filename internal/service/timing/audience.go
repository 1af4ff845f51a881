package timing

import (
	"sort"
	"strings"
)

const unknownRegionActivity = 0.5

type activityBand struct {
	start, end int
	score      float64
}

type activityCurve struct {
	bands    []activityBand
	baseline float64
}

func (c activityCurve) at(hour int) float64 {
	for _, b := range c.bands {
		if hour >= b.start && hour <= b.end {
			return b.score
		}
	}
	return c.baseline
}

// regionCurves are local-time audience activity patterns
var regionCurves = map[string]activityCurve{
	"US":   {bands: []activityBand{{6, 9, 0.8}, {12, 14, 0.7}, {17, 21, 0.9}}, baseline: 0.4},
	"EU":   {bands: []activityBand{{7, 9, 0.8}, {12, 14, 0.7}, {18, 20, 0.9}}, baseline: 0.4},
	"ASIA": {bands: []activityBand{{8, 10, 0.8}, {12, 14, 0.6}, {19, 22, 0.9}}, baseline: 0.4},
}

// AudienceScore blends region activity at hour, weighted by the share of the
// audience in each location. Weights are normalized by the total present.
func AudienceScore(hour int, locations map[string]float64) float64 {
	keys := make([]string, 0, len(locations))
	for k := range locations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var weighted, total float64
	for _, loc := range keys {
		weight := locations[loc] / 100
		score := unknownRegionActivity
		if curve, ok := regionCurves[strings.ToUpper(loc)]; ok {
			score = curve.at(hour)
		}
		weighted += score * weight
		total += weight
	}

	if total <= 0 {
		return unknownRegionActivity
	}
	return weighted / total
}

// PrimaryLocation returns the location with the largest audience share,
// alphabetically first on ties
func PrimaryLocation(locations map[string]float64) (string, bool) {
	best := ""
	bestPct := 0.0
	found := false
	for loc, pct := range locations {
		if !found || pct > bestPct || (pct == bestPct && loc < best) {
			best, bestPct, found = loc, pct, true
		}
	}
	return best, found
}
