// internal/service/listening/detector.go

package listening

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cadence/internal/adapter/bus"
	"cadence/internal/domain/events"
	"cadence/internal/domain/llm"
	"cadence/internal/domain/trend"
	"cadence/internal/platform/logger"
)

// ErrNoSignals is returned when every registered source failed
var ErrNoSignals = errors.New("no signal source available")

// DiscoveryConfig contains configuration for the discovery engine
type DiscoveryConfig struct {
	DiscoveryWindow  time.Duration
	MicroTrendWindow time.Duration
	MaxConcurrency   int
}

// DiscoveryEngine implements the trend.Discoverer interface
type DiscoveryEngine struct {
	sources     []trend.Source
	sourcesLock sync.RWMutex
	scorer      *Scorer
	executor    llm.Executor
	publisher   events.Publisher
	config      DiscoveryConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewDiscoveryEngine creates a new discovery engine
func NewDiscoveryEngine(
	scorer *Scorer,
	executor llm.Executor,
	publisher events.Publisher,
	config DiscoveryConfig,
	log *logger.Logger,
) *DiscoveryEngine {
	if config.DiscoveryWindow <= 0 {
		config.DiscoveryWindow = 24 * time.Hour
	}
	if config.MicroTrendWindow <= 0 {
		config.MicroTrendWindow = 6 * time.Hour
	}
	if config.MaxConcurrency < 1 {
		config.MaxConcurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DiscoveryEngine{
		scorer:    scorer,
		executor:  executor,
		publisher: publisher,
		config:    config,
		log:       log.With("component", "trend_discovery"),
		now:       time.Now,
	}
}

// AddSource registers a signal source
func (d *DiscoveryEngine) AddSource(source trend.Source) {
	d.sourcesLock.Lock()
	defer d.sourcesLock.Unlock()
	d.sources = append(d.sources, source)
}

// ScoreSignals scores signals without requesting explanations
func (d *DiscoveryEngine) ScoreSignals(signals []trend.Signal) []trend.ScoredTrend {
	return d.scorer.ScoreAll(signals)
}

// DiscoverTrends collects signals touching platforms (all when empty) and
// region (any when empty), scores and explains them, highest score first
func (d *DiscoveryEngine) DiscoverTrends(ctx context.Context, platforms []string, region string) ([]trend.ScoredTrend, error) {
	signals, err := d.collect(ctx, d.config.DiscoveryWindow)
	if err != nil {
		return nil, err
	}

	scored := d.scorer.ScoreAll(FilterSignals(signals, platforms, region))
	if err := d.Explain(ctx, scored); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	for _, t := range scored {
		if err := bus.PublishJSON(d.publisher, events.SubjectTrendDetected, t); err != nil {
			d.log.Warn("error publishing trend event", "topic", t.Topic, "error", err)
		}
	}

	return scored, nil
}

// DetectMicroTrends returns recent signals that grow fast at low volume
func (d *DiscoveryEngine) DetectMicroTrends(ctx context.Context) ([]trend.MicroTrend, error) {
	signals, err := d.collect(ctx, d.config.MicroTrendWindow)
	if err != nil {
		return nil, err
	}

	detectedAt := d.now().UTC()
	micro := make([]trend.MicroTrend, 0)
	for _, s := range signals {
		if !IsMicroTrend(s) {
			continue
		}
		mt := trend.MicroTrend{
			ScoredTrend: d.scorer.Score(s),
			DetectedAt:  detectedAt,
			Confidence:  MicroConfidence(s),
			SourceCount: len(s.Platforms),
		}
		micro = append(micro, mt)

		if err := bus.PublishJSON(d.publisher, events.SubjectMicroTrend, mt); err != nil {
			d.log.Warn("error publishing micro-trend event", "topic", mt.Topic, "error", err)
		}
	}

	return micro, nil
}

// Explain fills in the explanation of every trend concurrently. Output order
// is unchanged. A failed explanation is left empty.
func (d *DiscoveryEngine) Explain(ctx context.Context, trends []trend.ScoredTrend) error {
	g := new(errgroup.Group)
	g.SetLimit(d.config.MaxConcurrency)

	for i := range trends {
		g.Go(func() error {
			text, err := d.executor.Execute(ctx, explanationTask(trends[i]))
			if err != nil {
				d.log.Warn("trend explanation failed", "topic", trends[i].Topic, "error", err)
				return nil
			}
			trends[i].Explanation = strings.TrimSpace(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func explanationTask(t trend.ScoredTrend) llm.Task {
	return llm.Task{
		Type:       llm.TaskTrendDiscovery,
		Complexity: llm.ComplexityMedium,
		Context: fmt.Sprintf(
			"Explain why %q is trending with a growth velocity of %.2f and audience relevance of %.2f. Platforms: %s",
			t.Topic, t.GrowthVelocity, t.AudienceRelevance, strings.Join(t.Platforms, ", "),
		),
	}
}

// collect gathers signals from every source. Failing sources are skipped
// unless all of them fail.
func (d *DiscoveryEngine) collect(ctx context.Context, window time.Duration) ([]trend.Signal, error) {
	d.sourcesLock.RLock()
	sources := make([]trend.Source, len(d.sources))
	copy(sources, d.sources)
	d.sourcesLock.RUnlock()

	var (
		all    []trend.Signal
		failed int
	)
	for _, src := range sources {
		signals, err := src.Signals(ctx, window)
		if err != nil {
			failed++
			d.log.Warn("error collecting signals", "source", src.Name(), "error", err)
			continue
		}
		all = append(all, signals...)
	}

	if len(sources) > 0 && failed == len(sources) {
		return nil, ErrNoSignals
	}
	return all, nil
}
