// internal/domain/trend/detector.go

package trend

import (
	"context"
	"time"
)

// Discoverer defines the interface for trend discovery
type Discoverer interface {
	// DiscoverTrends collects, scores and explains trends, highest score first
	DiscoverTrends(ctx context.Context, platforms []string, region string) ([]ScoredTrend, error)

	// DetectMicroTrends returns recent signals that qualify as micro-trends
	DetectMicroTrends(ctx context.Context) ([]MicroTrend, error)

	// ScoreSignals scores signals without requesting explanations
	ScoreSignals(signals []Signal) []ScoredTrend
}

// Source supplies raw signals for a platform
type Source interface {
	// Name returns the source name
	Name() string

	// Signals returns signals observed within the given window
	Signals(ctx context.Context, window time.Duration) ([]Signal, error)
}
