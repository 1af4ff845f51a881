package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/domain/trend"
)

type fakeCounter struct {
	counts map[string][]int
	err    map[string]error
	start  time.Time
	end    time.Time
}

func (f *fakeCounter) RecentCounts(_ context.Context, query string, start, end time.Time) ([]CountBucket, error) {
	f.start, f.end = start, end
	if err := f.err[query]; err != nil {
		return nil, err
	}
	buckets := make([]CountBucket, 0, len(f.counts[query]))
	for i, c := range f.counts[query] {
		buckets = append(buckets, CountBucket{Start: start.Add(time.Duration(i) * time.Hour), Count: c})
	}
	return buckets, nil
}

func TestGrowth(t *testing.T) {
	buckets := func(counts ...int) []CountBucket {
		out := make([]CountBucket, len(counts))
		for i, c := range counts {
			out[i] = CountBucket{Count: c}
		}
		return out
	}

	total, growth := Growth(buckets(10, 10, 30, 30))
	assert.Equal(t, 80, total)
	assert.InDelta(t, 2.0, growth, 1e-9)

	total, growth = Growth(buckets(50, 10))
	assert.Equal(t, 60, total)
	assert.Equal(t, 0.0, growth)

	_, growth = Growth(buckets(0, 0, 4, 4))
	assert.InDelta(t, 8.0, growth, 1e-9)

	total, growth = Growth(buckets(7))
	assert.Equal(t, 7, total)
	assert.Equal(t, 0.0, growth)

	total, growth = Growth(nil)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0.0, growth)
}

func TestTwitterSource_Signals(t *testing.T) {
	counter := &fakeCounter{
		counts: map[string][]int{"golang": {100, 100, 150, 250}},
		err:    map[string]error{"broken": errors.New("429")},
	}
	src := newTwitterSource(counter, []string{"golang", "broken"}, []string{"US"}, nil)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src.now = func() time.Time { return fixed }

	signals, err := src.Signals(context.Background(), 6*time.Hour)
	require.NoError(t, err)
	require.Len(t, signals, 1)

	s := signals[0]
	assert.Equal(t, "golang", s.Topic)
	assert.Equal(t, 600, s.Mentions)
	assert.InDelta(t, 1.0, s.Growth, 1e-9)
	assert.Equal(t, []string{"twitter"}, s.Platforms)
	assert.Equal(t, []string{"US"}, s.Regions)
	assert.Equal(t, 6*time.Hour, counter.end.Sub(counter.start))
	assert.True(t, counter.end.Before(fixed))
	assert.Equal(t, "twitter", src.Name())
}

func TestTwitterSource_AllTopicsFail(t *testing.T) {
	counter := &fakeCounter{err: map[string]error{"a": errors.New("unauthorized")}}
	src := newTwitterSource(counter, []string{"a"}, nil, nil)

	_, err := src.Signals(context.Background(), time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestStaticSource_Window(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src := NewStaticSource("fixed", []trend.Signal{
		{Topic: "old", Observed: now.Add(-10 * time.Hour)},
		{Topic: "fresh", Observed: now.Add(-1 * time.Hour)},
		{Topic: "undated"},
	})
	src.now = func() time.Time { return now }

	got, err := src.Signals(context.Background(), 6*time.Hour)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fresh", got[0].Topic)
	assert.Equal(t, "undated", got[1].Topic)
}

func TestSampleSource(t *testing.T) {
	src := NewSampleSource()

	recent, err := src.Signals(context.Background(), 6*time.Hour)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Quantum Computing Breakthrough", recent[0].Topic)

	daily, err := src.Signals(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, daily, 4)
}

func TestSampleSource_StaysFreshOverUptime(t *testing.T) {
	src := NewSampleSource()
	start := time.Now()
	src.now = func() time.Time { return start.Add(13 * time.Hour) }

	daily, err := src.Signals(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, daily, 4)
	for _, sig := range daily {
		assert.True(t, sig.Observed.After(start), "%s observed at %s", sig.Topic, sig.Observed)
	}

	recent, err := src.Signals(context.Background(), 6*time.Hour)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Quantum Computing Breakthrough", recent[0].Topic)
}
