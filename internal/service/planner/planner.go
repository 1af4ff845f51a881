// internal/service/planner/planner.go

package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cadence/internal/adapter/bus"
	"cadence/internal/domain/content"
	"cadence/internal/domain/events"
	"cadence/internal/domain/llm"
	"cadence/internal/domain/timing"
	"cadence/internal/domain/trend"
	"cadence/internal/platform/logger"
)

const (
	defaultScheduledTime       = "12:00 PM"
	defaultEstimatedEngagement = 50
	maxTrendsPerPlatform       = 2
)

// Config contains configuration for the planner
type Config struct {
	MaxConcurrency int
}

// Planner implements the content.Planner interface
type Planner struct {
	executor  llm.Executor
	publisher events.Publisher
	config    Config
	log       *logger.Logger
	now       func() time.Time
}

// NewPlanner creates a new content planner
func NewPlanner(executor llm.Executor, publisher events.Publisher, config Config, log *logger.Logger) *Planner {
	if config.MaxConcurrency < 1 {
		config.MaxConcurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Planner{
		executor:  executor,
		publisher: publisher,
		config:    config,
		log:       log.With("component", "content_planner"),
		now:       time.Now,
	}
}

// slot is one piece to generate, fixed before any generation starts
type slot struct {
	day         int
	platform    string
	index       int
	contentType string
	topic       string
	timing      *timing.Recommendation
}

// GenerateWeeklyPlan builds a 7-day plan for platforms. Pieces are generated
// concurrently and returned in day, platform, slot order.
func (p *Planner) GenerateWeeklyPlan(
	ctx context.Context,
	trends []trend.ScoredTrend,
	timings []timing.Recommendation,
	voice content.BrandVoice,
	platforms []string,
) (*content.Plan, error) {
	if len(platforms) == 0 {
		platforms = DefaultPlatforms
	}
	platforms = append([]string(nil), platforms...)

	slots := buildSlots(trends, timings, platforms)
	pieces := make([]content.Piece, len(slots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.MaxConcurrency)
	for i, s := range slots {
		g.Go(func() error {
			piece, err := p.generatePiece(gctx, s, voice)
			if err != nil {
				return err
			}
			pieces[i] = piece
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error generating weekly plan: %w", err)
	}

	plan := &content.Plan{
		ID:                       uuid.New().String(),
		WeekOf:                   p.now().UTC(),
		TotalPieces:              len(pieces),
		Platforms:                platforms,
		ContentPieces:            pieces,
		GapAnalysis:              AnalyzeGaps(pieces, platforms),
		RepurposingOpportunities: FindRepurposingOpportunities(pieces),
	}

	if err := bus.PublishJSON(p.publisher, events.SubjectPlanGenerated, plan); err != nil {
		p.log.Warn("error publishing plan event", "plan_id", plan.ID, "error", err)
	}

	p.log.Info("weekly plan generated", "plan_id", plan.ID, "pieces", plan.TotalPieces, "platforms", platforms)
	return plan, nil
}

// AdaptForPlatform rewrites a piece for another platform
func (p *Planner) AdaptForPlatform(ctx context.Context, source content.Piece, platform string, voice content.BrandVoice) (content.Piece, error) {
	text, err := p.executor.Execute(ctx, adaptTask(source, platform, voice))
	if err != nil {
		return content.Piece{}, fmt.Errorf("error adapting %s for %s: %w", source.ID, platform, err)
	}
	title, caption := ParseGenerated(text)

	adapted := source
	adapted.ID = fmt.Sprintf("%s-adapted-%d", platform, p.now().UnixMilli())
	adapted.Platform = platform
	adapted.Title = title
	adapted.Caption = caption
	adapted.MediaRequirements = MediaRequirementsFor(source.ContentType)
	adapted.Hashtags = p.hashtags(ctx, source.TrendTopic, platform, source.Day)
	adapted.BrandAlignment = BrandAlignment(caption, voice)
	sustainability := SustainabilityScore(caption)
	adapted.SustainabilityScore = &sustainability

	return adapted, nil
}

func buildSlots(trends []trend.ScoredTrend, timings []timing.Recommendation, platforms []string) []slot {
	var slots []slot
	for day := 1; day <= daysPerPlan; day++ {
		for _, platform := range platforms {
			relevant := relevantTopics(trends, platform)
			types := ContentTypes(platform)
			rec := timingFor(timings, platform)

			for i := 0; i < PiecesPerDay(platform); i++ {
				s := slot{
					day:         day,
					platform:    platform,
					index:       i,
					contentType: types[i%len(types)],
					timing:      rec,
				}
				if len(relevant) > 0 {
					s.topic = relevant[i%len(relevant)]
				}
				slots = append(slots, s)
			}
		}
	}
	return slots
}

func relevantTopics(trends []trend.ScoredTrend, platform string) []string {
	var topics []string
	for _, t := range trends {
		if t.HasPlatform(platform) {
			topics = append(topics, t.Topic)
			if len(topics) == maxTrendsPerPlatform {
				break
			}
		}
	}
	return topics
}

func timingFor(timings []timing.Recommendation, platform string) *timing.Recommendation {
	for i := range timings {
		if timings[i].Platform == platform {
			return &timings[i]
		}
	}
	return nil
}

func (p *Planner) generatePiece(ctx context.Context, s slot, voice content.BrandVoice) (content.Piece, error) {
	text, err := p.executor.Execute(ctx, contentTask(s, voice))
	if err != nil {
		return content.Piece{}, fmt.Errorf("content for %s day %d slot %d: %w", s.platform, s.day, s.index, err)
	}
	title, caption := ParseGenerated(text)

	scheduled := defaultScheduledTime
	engagement := defaultEstimatedEngagement
	if s.timing != nil {
		if s.timing.OptimalTime != "" {
			scheduled = s.timing.OptimalTime
		}
		if s.timing.ExpectedEngagement != 0 {
			engagement = s.timing.ExpectedEngagement
		}
	}

	sustainability := SustainabilityScore(caption)
	return content.Piece{
		ID:                  fmt.Sprintf("%s-day%d-%d", s.platform, s.day, s.index),
		Day:                 s.day,
		Platform:            s.platform,
		ContentType:         s.contentType,
		Title:               title,
		Caption:             caption,
		Hashtags:            p.hashtags(ctx, s.topic, s.platform, s.day),
		ScheduledTime:       scheduled,
		TrendTopic:          s.topic,
		EstimatedEngagement: engagement,
		MediaRequirements:   MediaRequirementsFor(s.contentType),
		BrandAlignment:      BrandAlignment(caption, voice),
		SustainabilityScore: &sustainability,
	}, nil
}

// hashtags degrades to an empty list when generation fails
func (p *Planner) hashtags(ctx context.Context, topic, platform string, day int) []string {
	text, err := p.executor.Execute(ctx, hashtagTask(topic, platform, day))
	if err != nil {
		p.log.Warn("hashtag generation failed", "platform", platform, "topic", topic, "error", err)
		return []string{}
	}
	return ParseHashtags(text)
}
