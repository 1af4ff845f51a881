package content

import (
	"context"
	"errors"
	"time"

	"cadence/internal/domain/timing"
	"cadence/internal/domain/trend"
)

// ErrNotFound is returned when a plan does not exist
var ErrNotFound = errors.New("plan not found")

// Content types a piece can take
const (
	TypePost     = "post"
	TypeStory    = "story"
	TypeReel     = "reel"
	TypeVideo    = "video"
	TypeCarousel = "carousel"
	TypeLive     = "live"
)

// BrandVoice describes how generated content should sound
type BrandVoice struct {
	Tone           string   `json:"tone" yaml:"tone"`
	Personality    []string `json:"personality" yaml:"personality"`
	Values         []string `json:"values" yaml:"values"`
	AvoidTopics    []string `json:"avoidTopics" yaml:"avoidTopics"`
	KeyMessages    []string `json:"keyMessages" yaml:"keyMessages"`
	TargetAudience string   `json:"targetAudience" yaml:"targetAudience"`
}

// MediaRequirements describes the media a piece needs
type MediaRequirements struct {
	Type           string `json:"type"`
	Specifications string `json:"specifications"`
}

// Piece is one scheduled unit of social content
type Piece struct {
	ID                  string            `json:"id"`
	Day                 int               `json:"day"`
	Platform            string            `json:"platform"`
	ContentType         string            `json:"contentType"`
	Title               string            `json:"title"`
	Caption             string            `json:"caption"`
	Hashtags            []string          `json:"hashtags"`
	ScheduledTime       string            `json:"scheduledTime"`
	TrendTopic          string            `json:"trendTopic,omitempty"`
	EstimatedEngagement int               `json:"estimatedEngagement"`
	MediaRequirements   MediaRequirements `json:"mediaRequirements"`
	BrandAlignment      float64           `json:"brandAlignment"`
	SustainabilityScore *float64          `json:"sustainabilityScore,omitempty"`
}

// GapAnalysis reports what a plan is missing
type GapAnalysis struct {
	MissingContentTypes       []string `json:"missingContentTypes"`
	UnderrepresentedPlatforms []string `json:"underrepresentedPlatforms"`
	Suggestions               []string `json:"suggestions"`
}

// RepurposingOpportunity suggests adaptations of an existing piece
type RepurposingOpportunity struct {
	SourceContent string   `json:"sourceContent"`
	Adaptations   []string `json:"adaptations"`
}

// Plan is a full week of content
type Plan struct {
	ID                       string                   `json:"id"`
	WeekOf                   time.Time                `json:"weekOf"`
	TotalPieces              int                      `json:"totalPieces"`
	Platforms                []string                 `json:"platforms"`
	ContentPieces            []Piece                  `json:"contentPieces"`
	GapAnalysis              GapAnalysis              `json:"gapAnalysis"`
	RepurposingOpportunities []RepurposingOpportunity `json:"repurposingOpportunities"`
}

// Planner builds weekly content plans
type Planner interface {
	GenerateWeeklyPlan(ctx context.Context, trends []trend.ScoredTrend, timings []timing.Recommendation, voice BrandVoice, platforms []string) (*Plan, error)
	AdaptForPlatform(ctx context.Context, source Piece, platform string, voice BrandVoice) (Piece, error)
}

// Store persists generated plans
type Store interface {
	SavePlan(ctx context.Context, plan Plan) error
	GetPlan(ctx context.Context, id string) (*Plan, error)
	ListPlans(ctx context.Context, limit int) ([]Plan, error)
}
