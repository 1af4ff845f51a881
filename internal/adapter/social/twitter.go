// internal/adapter/social/twitter.go

package social

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"cadence/internal/config"
	"cadence/internal/domain/trend"
	"cadence/internal/platform/logger"
)

// CountBucket is the number of tweets in one time bucket
type CountBucket struct {
	Start time.Time
	Count int
}

// tweetCounter returns recent tweet volume for a query in chronological buckets
type tweetCounter interface {
	RecentCounts(ctx context.Context, query string, start, end time.Time) ([]CountBucket, error)
}

type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

type apiCounter struct {
	client *twitter.Client
}

func (c apiCounter) RecentCounts(ctx context.Context, query string, start, end time.Time) ([]CountBucket, error) {
	resp, err := c.client.TweetRecentCounts(ctx, query, twitter.TweetRecentCountsOpts{
		StartTime:   start,
		EndTime:     end,
		Granularity: twitter.GranularityHour,
	})
	if err != nil {
		return nil, err
	}

	buckets := make([]CountBucket, 0, len(resp.TweetCounts))
	for _, tc := range resp.TweetCounts {
		if tc == nil {
			continue
		}
		ts, _ := time.Parse(time.RFC3339, tc.Start)
		buckets = append(buckets, CountBucket{Start: ts, Count: tc.TweetCount})
	}
	return buckets, nil
}

// TwitterSource turns recent tweet counts for tracked topics into signals
type TwitterSource struct {
	counter tweetCounter
	topics  []string
	regions []string
	log     *logger.Logger
	now     func() time.Time
}

// NewTwitterSource creates a source backed by the Twitter API v2 recent counts endpoint
func NewTwitterSource(cfg config.TwitterConfig, log *logger.Logger) *TwitterSource {
	client := &twitter.Client{
		Authorizer: bearerAuthorizer{token: cfg.BearerToken},
		Client:     &http.Client{Timeout: 15 * time.Second},
		Host:       cfg.Host,
	}
	return newTwitterSource(apiCounter{client: client}, cfg.Topics, cfg.Regions, log)
}

func newTwitterSource(counter tweetCounter, topics, regions []string, log *logger.Logger) *TwitterSource {
	if log == nil {
		log = logger.Nop()
	}
	return &TwitterSource{
		counter: counter,
		topics:  topics,
		regions: regions,
		log:     log.With("source", "twitter"),
		now:     time.Now,
	}
}

// Name returns the source name
func (s *TwitterSource) Name() string {
	return "twitter"
}

// Signals returns one signal per tracked topic. Topics whose counts cannot be
// fetched are skipped; the call fails only when every topic fails.
func (s *TwitterSource) Signals(ctx context.Context, window time.Duration) ([]trend.Signal, error) {
	end := s.now().UTC().Add(-30 * time.Second)
	start := end.Add(-window)

	signals := make([]trend.Signal, 0, len(s.topics))
	var lastErr error
	for _, topic := range s.topics {
		buckets, err := s.counter.RecentCounts(ctx, topic, start, end)
		if err != nil {
			lastErr = err
			s.log.Warn("tweet counts failed", "topic", topic, "error", err)
			continue
		}
		mentions, growth := Growth(buckets)
		signals = append(signals, trend.Signal{
			Topic:     topic,
			Mentions:  mentions,
			Growth:    growth,
			Platforms: []string{"twitter"},
			Regions:   append([]string(nil), s.regions...),
			Observed:  end,
		})
	}

	if len(signals) == 0 && lastErr != nil {
		return nil, fmt.Errorf("twitter counts: %w", lastErr)
	}
	return signals, nil
}

// Growth returns the total volume and how much the later half of the
// buckets grew over the earlier half. Shrinking volume counts as no growth.
func Growth(buckets []CountBucket) (total int, growth float64) {
	half := len(buckets) / 2
	var earlier, recent int
	for i, b := range buckets {
		total += b.Count
		if i < half {
			earlier += b.Count
		} else {
			recent += b.Count
		}
	}
	if half == 0 {
		return total, 0
	}

	base := earlier
	if base < 1 {
		base = 1
	}
	growth = float64(recent-earlier) / float64(base)
	if growth < 0 {
		growth = 0
	}
	return total, growth
}
