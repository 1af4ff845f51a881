// internal/domain/insight/model.go

package insight

import (
	"context"
	"errors"

	"cadence/internal/domain/content"
)

// ErrMissingInput is returned when a required request field is empty
var ErrMissingInput = errors.New("missing required input")

// HashtagRequest asks for hashtags tuned to a post and platform
type HashtagRequest struct {
	PostContent   string `json:"postContent"`
	Platform      string `json:"platform"`
	BrandKeywords string `json:"brandKeywords,omitempty"`
}

type HashtagResult struct {
	Hashtags    []string `json:"hashtags"`
	Explanation string   `json:"explanation"`
}

// ComplianceRequest is content to screen before publishing
type ComplianceRequest struct {
	Content string `json:"content"`
}

type ComplianceResult struct {
	Compliant   bool   `json:"isCompliant"`
	Explanation string `json:"explanation"`
}

// VoiceReviewRequest checks a draft against the brand voice
type VoiceReviewRequest struct {
	Content    string             `json:"content"`
	BrandVoice content.BrandVoice `json:"brandVoice"`
}

type VoiceReviewResult struct {
	// Alignment is the keyword-based brand alignment in [0, 1]
	Alignment   float64 `json:"alignment"`
	Consistent  bool    `json:"consistent"`
	Feedback    string  `json:"feedback"`
	Suggestions string  `json:"suggestions"`
}

// SentimentRequest is text whose audience sentiment should be read
type SentimentRequest struct {
	Text string `json:"text"`
}

type SentimentResult struct {
	Sentiment      string  `json:"sentiment"`
	Confidence     float64 `json:"confidence"`
	EmotionalShift string  `json:"emotionalShiftPrediction"`
}

// PerformanceRequest describes content whose reception should be predicted
type PerformanceRequest struct {
	ContentDescription string `json:"contentDescription"`
	TargetAudience     string `json:"targetAudience"`
	Platform           string `json:"platform"`
	PastPerformance    string `json:"pastPerformanceData,omitempty"`
}

type PerformanceResult struct {
	// PredictedEngagement is an engagement rate in percent
	PredictedEngagement     float64 `json:"predictedEngagement"`
	PredictedReach          int     `json:"predictedReach"`
	OptimizationSuggestions string  `json:"optimizationSuggestions"`
	Confidence              float64 `json:"confidenceScore"`
}

// StrategyRequest describes a brand and campaign to plan against competitors
type StrategyRequest struct {
	BrandDescription string `json:"brandDescription"`
	TargetAudience   string `json:"targetAudience"`
	CampaignGoals    string `json:"campaignGoals"`
	Competitors      string `json:"competitors,omitempty"`
	PerformanceData  string `json:"performanceData,omitempty"`
}

type StrategyResult struct {
	SevenDayPlan            string `json:"sevenDayContentPlan"`
	CompetitorGaps          string `json:"competitorGaps"`
	PerformancePredictions  string `json:"performancePredictions"`
	OptimizationSuggestions string `json:"optimizationSuggestions"`
}

// RepurposeRequest turns existing content into another format
type RepurposeRequest struct {
	Content      string `json:"content"`
	TargetFormat string `json:"targetFormat"`
}

type RepurposeResult struct {
	Content string `json:"repurposedContent"`
}

// Analyst runs the single-shot generation flows outside the weekly plan
type Analyst interface {
	OptimizeHashtags(ctx context.Context, req HashtagRequest) (HashtagResult, error)
	CheckCompliance(ctx context.Context, req ComplianceRequest) (ComplianceResult, error)
	ReviewBrandVoice(ctx context.Context, req VoiceReviewRequest) (VoiceReviewResult, error)
	AnalyzeSentiment(ctx context.Context, req SentimentRequest) (SentimentResult, error)
	PredictPerformance(ctx context.Context, req PerformanceRequest) (PerformanceResult, error)
	PlanStrategy(ctx context.Context, req StrategyRequest) (StrategyResult, error)
	Repurpose(ctx context.Context, req RepurposeRequest) (RepurposeResult, error)
}
