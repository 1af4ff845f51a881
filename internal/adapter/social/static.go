package social

import (
	"context"
	"time"

	"cadence/internal/domain/trend"
)

// StaticSource serves a fixed set of signals. A source built with ages
// stamps each signal relative to the time of the call, so demo data never
// falls out of the window.
type StaticSource struct {
	name    string
	signals []trend.Signal
	ages    []time.Duration
	now     func() time.Time
}

// NewStaticSource creates a source over signals with absolute observation times
func NewStaticSource(name string, signals []trend.Signal) *StaticSource {
	return &StaticSource{name: name, signals: signals, now: time.Now}
}

// NewAgedSource creates a source whose signal i was observed ages[i] before each call
func NewAgedSource(name string, signals []trend.Signal, ages []time.Duration) *StaticSource {
	src := NewStaticSource(name, signals)
	src.ages = ages
	return src
}

// NewSampleSource returns demo signals for offline runs
func NewSampleSource() *StaticSource {
	return NewAgedSource("sample", []trend.Signal{
		{
			Topic:     "AI Video Generation",
			Mentions:  15420,
			Growth:    0.85,
			Platforms: []string{"tiktok", "youtube", "twitter"},
			Regions:   []string{"US", "UK", "CA"},
		},
		{
			Topic:     "Sustainable Fashion Tech",
			Mentions:  8930,
			Growth:    0.62,
			Platforms: []string{"instagram", "linkedin", "pinterest"},
			Regions:   []string{"EU", "US", "AU"},
		},
		{
			Topic:     "Web3 Gaming",
			Mentions:  12100,
			Growth:    0.73,
			Platforms: []string{"discord", "twitter", "reddit"},
			Regions:   []string{"US", "JP", "KR"},
		},
		{
			Topic:     "Quantum Computing Breakthrough",
			Mentions:  245,
			Growth:    2.1,
			Platforms: []string{"twitter", "linkedin"},
			Regions:   []string{"US"},
		},
	}, []time.Duration{12 * time.Hour, 12 * time.Hour, 12 * time.Hour, 2 * time.Hour})
}

// Name returns the source name
func (s *StaticSource) Name() string {
	return s.name
}

// Signals returns the signals observed within window. Undated signals are always returned.
func (s *StaticSource) Signals(_ context.Context, window time.Duration) ([]trend.Signal, error) {
	now := s.now().UTC()
	cutoff := now.Add(-window)
	out := make([]trend.Signal, 0, len(s.signals))
	for i, sig := range s.signals {
		if i < len(s.ages) {
			sig.Observed = now.Add(-s.ages[i])
		}
		if !sig.Observed.IsZero() && sig.Observed.Before(cutoff) {
			continue
		}
		out = append(out, sig)
	}
	return out, nil
}
