// internal/service/insights/analyst.go

package insights

import (
	"context"
	"fmt"
	"math"
	"strings"

	"cadence/internal/domain/insight"
	"cadence/internal/domain/llm"
	"cadence/internal/platform/logger"
	"cadence/internal/service/planner"
)

var (
	hashtagFields = []field{
		{"Optimized Hashtags", "hashtags separated by spaces"},
		{"Explanation", "why these hashtags were chosen"},
	}
	complianceFields = []field{
		{"Compliant", "yes or no"},
		{"Explanation", "the reasoning behind the determination"},
	}
	voiceFields = []field{
		{"Consistent", "yes or no"},
		{"Feedback", "how well the draft matches the brand voice"},
		{"Suggestions", "concrete edits that would bring it closer"},
	}
	sentimentFields = []field{
		{"Sentiment", "positive, negative or neutral"},
		{"Confidence", "a score from 0 to 1"},
		{"Emotional Shift", "the predicted shift in audience emotion"},
	}
	performanceFields = []field{
		{"Predicted Engagement", "engagement rate in percent"},
		{"Predicted Reach", "a whole number of accounts"},
		{"Optimization Suggestions", "specific changes that would improve performance"},
		{"Confidence", "a score from 0 to 1"},
	}
	strategyFields = []field{
		{"Seven Day Plan", "a day-by-day plan with post ideas and timing"},
		{"Competitor Gaps", "openings competitors leave uncovered"},
		{"Performance Predictions", "expected results of the plan"},
		{"Optimization Suggestions", "how to adjust the plan as results come in"},
	}
)

// Analyst runs one-shot generation flows through the provider executor
type Analyst struct {
	executor llm.Executor
	log      *logger.Logger
}

// NewAnalyst creates an analyst over executor
func NewAnalyst(executor llm.Executor, log *logger.Logger) *Analyst {
	if log == nil {
		log = logger.Nop()
	}
	return &Analyst{
		executor: executor,
		log:      log.With("component", "insight_analyst"),
	}
}

func (a *Analyst) run(ctx context.Context, flow string, task llm.Task) (string, error) {
	text, err := a.executor.Execute(ctx, task)
	if err != nil {
		return "", fmt.Errorf("error running %s: %w", flow, err)
	}
	a.log.Debug("flow completed", "flow", flow, "task_type", task.Type)
	return text, nil
}

func missing(name string) error {
	return fmt.Errorf("%w: %s", insight.ErrMissingInput, name)
}

// OptimizeHashtags suggests hashtags that widen the reach of a post
func (a *Analyst) OptimizeHashtags(ctx context.Context, req insight.HashtagRequest) (insight.HashtagResult, error) {
	if strings.TrimSpace(req.PostContent) == "" {
		return insight.HashtagResult{}, missing("postContent")
	}
	if req.Platform == "" {
		return insight.HashtagResult{}, missing("platform")
	}
	keywords := req.BrandKeywords
	if keywords == "" {
		keywords = "N/A"
	}

	text, err := a.run(ctx, "hashtag optimization", llm.Task{
		Type:       llm.TaskContentGeneration,
		Complexity: llm.ComplexityLow,
		Context: withFormat(fmt.Sprintf(
			"Optimize hashtags for this %s post to increase its reach.\nContent: %q\nBrand keywords: %s",
			req.Platform, req.PostContent, keywords,
		), hashtagFields...),
		Requirements: []string{
			"Limit hashtags to a reasonable number for " + req.Platform,
		},
	})
	if err != nil {
		return insight.HashtagResult{}, err
	}

	sections := parseLabelled(text, hashtagFields...)
	tags, ok := sections["Optimized Hashtags"]
	if !ok {
		tags = text
	}
	return insight.HashtagResult{
		Hashtags:    planner.ParseHashtags(tags),
		Explanation: sections["Explanation"],
	}, nil
}

// CheckCompliance screens content for regulatory problems. Replies without a
// clear yes are treated as non-compliant.
func (a *Analyst) CheckCompliance(ctx context.Context, req insight.ComplianceRequest) (insight.ComplianceResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return insight.ComplianceResult{}, missing("content")
	}

	text, err := a.run(ctx, "compliance check", llm.Task{
		Type:       llm.TaskBrandVoice,
		Complexity: llm.ComplexityMedium,
		Context: withFormat(fmt.Sprintf(
			"Determine whether this content complies with advertising and platform regulations.\nContent: %q",
			req.Content,
		), complianceFields...),
	})
	if err != nil {
		return insight.ComplianceResult{}, err
	}

	sections := parseLabelled(text, complianceFields...)
	explanation, ok := sections["Explanation"]
	if !ok {
		explanation = strings.TrimSpace(text)
	}
	return insight.ComplianceResult{
		Compliant:   parseYes(sections["Compliant"]),
		Explanation: explanation,
	}, nil
}

// ReviewBrandVoice scores a draft against the brand voice and asks for feedback
func (a *Analyst) ReviewBrandVoice(ctx context.Context, req insight.VoiceReviewRequest) (insight.VoiceReviewResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return insight.VoiceReviewResult{}, missing("content")
	}
	voice := req.BrandVoice

	text, err := a.run(ctx, "brand voice review", llm.Task{
		Type:       llm.TaskBrandVoice,
		Complexity: llm.ComplexityMedium,
		Context: withFormat(fmt.Sprintf(
			"Review this draft for brand voice consistency.\nDraft: %q\nTone: %s\nValues: %s\nKey messages: %s\nAvoid: %s",
			req.Content, voice.Tone,
			strings.Join(voice.Values, ", "),
			strings.Join(voice.KeyMessages, ", "),
			strings.Join(voice.AvoidTopics, ", "),
		), voiceFields...),
	})
	if err != nil {
		return insight.VoiceReviewResult{}, err
	}

	sections := parseLabelled(text, voiceFields...)
	feedback, ok := sections["Feedback"]
	if !ok {
		feedback = strings.TrimSpace(text)
	}
	return insight.VoiceReviewResult{
		Alignment:   planner.BrandAlignment(req.Content, voice),
		Consistent:  parseYes(sections["Consistent"]),
		Feedback:    feedback,
		Suggestions: sections["Suggestions"],
	}, nil
}

// AnalyzeSentiment reads the sentiment of text and predicts where it is heading
func (a *Analyst) AnalyzeSentiment(ctx context.Context, req insight.SentimentRequest) (insight.SentimentResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return insight.SentimentResult{}, missing("text")
	}

	text, err := a.run(ctx, "sentiment analysis", llm.Task{
		Type:       llm.TaskAudienceInsights,
		Complexity: llm.ComplexityMedium,
		Context: withFormat(fmt.Sprintf(
			"Analyze the sentiment of this text and predict how audience emotion will shift.\nText: %q",
			req.Text,
		), sentimentFields...),
	})
	if err != nil {
		return insight.SentimentResult{}, err
	}

	sections := parseLabelled(text, sentimentFields...)
	return insight.SentimentResult{
		Sentiment:      normalizeSentiment(sections["Sentiment"]),
		Confidence:     parseConfidence(sections["Confidence"]),
		EmotionalShift: sections["Emotional Shift"],
	}, nil
}

func normalizeSentiment(s string) string {
	lower := strings.ToLower(s)
	for _, label := range []string{"positive", "negative", "mixed"} {
		if strings.Contains(lower, label) {
			return label
		}
	}
	return "neutral"
}

// PredictPerformance estimates engagement and reach for planned content
func (a *Analyst) PredictPerformance(ctx context.Context, req insight.PerformanceRequest) (insight.PerformanceResult, error) {
	if strings.TrimSpace(req.ContentDescription) == "" {
		return insight.PerformanceResult{}, missing("contentDescription")
	}
	if req.Platform == "" {
		return insight.PerformanceResult{}, missing("platform")
	}
	past := req.PastPerformance
	if past == "" {
		past = "none available"
	}

	text, err := a.run(ctx, "performance prediction", llm.Task{
		Type:       llm.TaskAudienceInsights,
		Complexity: llm.ComplexityHigh,
		Context: withFormat(fmt.Sprintf(
			"Predict how this content will perform on %s.\nContent: %q\nTarget audience: %s\nPast performance: %s",
			req.Platform, req.ContentDescription, req.TargetAudience, past,
		), performanceFields...),
	})
	if err != nil {
		return insight.PerformanceResult{}, err
	}

	sections := parseLabelled(text, performanceFields...)
	engagement, _ := parseNumber(sections["Predicted Engagement"])
	reach, _ := parseNumber(sections["Predicted Reach"])
	return insight.PerformanceResult{
		PredictedEngagement:     math.Max(engagement, 0),
		PredictedReach:          int(math.Max(math.Round(reach), 0)),
		OptimizationSuggestions: sections["Optimization Suggestions"],
		Confidence:              parseConfidence(sections["Confidence"]),
	}, nil
}

// PlanStrategy drafts a week-long strategy positioned against competitors
func (a *Analyst) PlanStrategy(ctx context.Context, req insight.StrategyRequest) (insight.StrategyResult, error) {
	if strings.TrimSpace(req.BrandDescription) == "" {
		return insight.StrategyResult{}, missing("brandDescription")
	}
	if strings.TrimSpace(req.CampaignGoals) == "" {
		return insight.StrategyResult{}, missing("campaignGoals")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a 7-day content strategy for this brand.\nBrand: %q\nTarget audience: %s\nCampaign goals: %s",
		req.BrandDescription, req.TargetAudience, req.CampaignGoals)
	if req.Competitors != "" {
		fmt.Fprintf(&b, "\nCompetitors: %s", req.Competitors)
	}
	if req.PerformanceData != "" {
		fmt.Fprintf(&b, "\nPerformance data:\n%s", req.PerformanceData)
	}

	text, err := a.run(ctx, "content strategy", llm.Task{
		Type:       llm.TaskCompetitiveAnalysis,
		Complexity: llm.ComplexityHigh,
		Context:    withFormat(b.String(), strategyFields...),
	})
	if err != nil {
		return insight.StrategyResult{}, err
	}

	sections := parseLabelled(text, strategyFields...)
	plan, ok := sections["Seven Day Plan"]
	if !ok {
		plan = strings.TrimSpace(text)
	}
	return insight.StrategyResult{
		SevenDayPlan:            plan,
		CompetitorGaps:          sections["Competitor Gaps"],
		PerformancePredictions:  sections["Performance Predictions"],
		OptimizationSuggestions: sections["Optimization Suggestions"],
	}, nil
}

// Repurpose rewrites content into another format, e.g. a thread or a video script
func (a *Analyst) Repurpose(ctx context.Context, req insight.RepurposeRequest) (insight.RepurposeResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return insight.RepurposeResult{}, missing("content")
	}
	if req.TargetFormat == "" {
		return insight.RepurposeResult{}, missing("targetFormat")
	}

	text, err := a.run(ctx, "repurposing", llm.Task{
		Type:       llm.TaskContentGeneration,
		Complexity: llm.ComplexityMedium,
		Context: fmt.Sprintf(
			"Repurpose this content into a %s.\nContent: %q\nReply with the repurposed content only.",
			req.TargetFormat, req.Content,
		),
	})
	if err != nil {
		return insight.RepurposeResult{}, err
	}

	out := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(out, "Repurposed Content:"); ok {
		out = strings.TrimSpace(rest)
	}
	return insight.RepurposeResult{Content: out}, nil
}
