package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"cadence/internal/adapter/bus"
	"cadence/internal/adapter/calendar"
	"cadence/internal/adapter/provider"
	"cadence/internal/adapter/social"
	"cadence/internal/config"
	"cadence/internal/domain/content"
	"cadence/internal/domain/timing"
	"cadence/internal/domain/trend"
	"cadence/internal/platform/logger"
	"cadence/internal/service/listening"
	llmService "cadence/internal/service/llm"
	"cadence/internal/service/planner"
	timingService "cadence/internal/service/timing"
)

// planInput is the YAML document accepted by "planctl plan"
type planInput struct {
	Platforms   []string           `yaml:"platforms"`
	Region      string             `yaml:"region"`
	ContentType string             `yaml:"contentType"`
	Signals     []trend.Signal     `yaml:"signals"`
	Profile     timing.UserProfile `yaml:"profile"`
	BrandVoice  content.BrandVoice `yaml:"brandVoice"`
	// Events are type:name pairs, e.g. "holiday:Black Friday"
	Events []string `yaml:"events"`
}

type planOptions struct {
	Mock    bool
	Verbose bool
}

type planOutput struct {
	Trends  []trend.ScoredTrend     `json:"trends"`
	Timings []timing.Recommendation `json:"timings"`
	Plan    *content.Plan           `json:"plan"`
}

func loadPlanInput(path string) (planInput, error) {
	var input planInput
	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("read input: %w", err)
	}
	if err := yaml.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("parse input %s: %w", path, err)
	}
	if len(input.Platforms) == 0 {
		input.Platforms = planner.DefaultPlatforms
	}
	if input.ContentType == "" {
		input.ContentType = content.TypePost
	}
	return input, nil
}

func runPlan(ctx context.Context, input planInput, opts planOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.Nop()
	if opts.Verbose {
		l, err := logger.New("development")
		if err != nil {
			return err
		}
		defer l.Sync()
		log = l
	}

	llmCfg := config.LLMConfig{Mode: "mock"}
	if !opts.Mock {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		llmCfg = cfg.LLM
	}

	selector := llmService.NewSelector(llmService.DefaultRoutingTable())
	executor := llmService.NewExecutor(selector, provider.NewRegistryFromConfig(llmCfg), llmService.ExecutorConfig{
		CallTimeout: llmCfg.CallTimeout,
		Temperature: llmCfg.Temperature,
		MaxTokens:   llmCfg.MaxTokens,
	}, log)

	discovery := listening.NewDiscoveryEngine(listening.NewScorer(nil), executor, bus.Nop{}, listening.DiscoveryConfig{}, log)
	discovery.AddSource(social.NewStaticSource("input", input.Signals))
	trends, err := discovery.DiscoverTrends(ctx, input.Platforms, input.Region)
	if err != nil {
		return fmt.Errorf("discover trends: %w", err)
	}

	events, err := calendar.ParseEvents(input.Events)
	if err != nil {
		return err
	}
	adjuster := timingService.NewEventAdjuster(calendar.NewStaticFeed(events...), nil, 0, log)
	optimizer := timingService.NewOptimizer(timingService.DefaultCircadianTable(), adjuster)
	timings := optimizer.GetOptimalTiming(ctx, input.Platforms, input.Profile, input.ContentType)

	plan, err := planner.NewPlanner(executor, bus.Nop{}, planner.Config{MaxConcurrency: 4}, log).
		GenerateWeeklyPlan(ctx, trends, timings, input.BrandVoice, input.Platforms)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(planOutput{Trends: trends, Timings: timings, Plan: plan})
}
