// internal/service/timing/circadian.go

package timing

import (
	"sort"

	"cadence/internal/domain/timing"
)

// BaselineMultiplier is the circadian score outside every peak window
const BaselineMultiplier = 0.5

// FallbackConfidence is used when a platform has no engagement history
const FallbackConfidence = 0.7

// Peak is an inclusive window of local hours with elevated engagement
type Peak struct {
	Start      int
	End        int
	Multiplier float64
}

// Contains reports whether hour falls inside the window
func (p Peak) Contains(hour int) bool {
	return hour >= p.Start && hour <= p.End
}

// CircadianTable holds the ordered peak windows for each platform
type CircadianTable struct {
	peaks map[string][]Peak
}

// DefaultCircadianTable returns the built-in platform peaks
func DefaultCircadianTable() *CircadianTable {
	return NewCircadianTable(map[string][]Peak{
		"instagram": {{6, 9, 1.3}, {12, 14, 1.2}, {17, 21, 1.4}},
		"tiktok":    {{6, 10, 1.2}, {19, 23, 1.5}},
		"linkedin":  {{7, 9, 1.4}, {12, 14, 1.2}, {17, 18, 1.3}},
		"twitter":   {{8, 10, 1.2}, {12, 15, 1.1}, {17, 20, 1.3}},
		"youtube":   {{14, 16, 1.2}, {20, 22, 1.4}},
	})
}

// NewCircadianTable creates a table from a private copy of peaks
func NewCircadianTable(peaks map[string][]Peak) *CircadianTable {
	copied := make(map[string][]Peak, len(peaks))
	for platform, windows := range peaks {
		copied[platform] = append([]Peak(nil), windows...)
	}
	return &CircadianTable{peaks: copied}
}

// Has reports whether platform has an entry
func (c *CircadianTable) Has(platform string) bool {
	_, ok := c.peaks[platform]
	return ok
}

// Platforms returns the platforms in the table, sorted
func (c *CircadianTable) Platforms() []string {
	out := make([]string, 0, len(c.peaks))
	for p := range c.peaks {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Peaks returns the windows for platform in table order
func (c *CircadianTable) Peaks(platform string) []Peak {
	return append([]Peak(nil), c.peaks[platform]...)
}

// Score returns the multiplier of the first window containing hour, or the baseline
func (c *CircadianTable) Score(hour int, platform string) float64 {
	for _, p := range c.peaks[platform] {
		if p.Contains(hour) {
			return p.Multiplier
		}
	}
	return BaselineMultiplier
}

// BestPeak returns the highest multiplier window; the first one wins ties
func (c *CircadianTable) BestPeak(platform string) (Peak, bool) {
	windows := c.peaks[platform]
	if len(windows) == 0 {
		return Peak{}, false
	}
	best := windows[0]
	for _, p := range windows[1:] {
		if p.Multiplier > best.Multiplier {
			best = p
		}
	}
	return best, true
}

// Fallback is the timing used when no history exists for platform
func (c *CircadianTable) Fallback(platform string) (timing.Timing, bool) {
	peak, ok := c.BestPeak(platform)
	if !ok {
		return timing.Timing{}, false
	}
	return timing.Timing{
		BestHour:   (peak.Start + peak.End) / 2,
		Score:      peak.Multiplier,
		Confidence: FallbackConfidence,
	}, true
}
