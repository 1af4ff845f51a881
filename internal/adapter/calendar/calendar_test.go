package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/config"
	"cadence/internal/domain/timing"
)

const eventsRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Marketing calendar</title>
  <item>
    <title>Black Friday</title>
    <category>holiday</category>
    <category>High</category>
    <pubDate>Fri, 29 Nov 2024 08:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Feed ranking change</title>
    <category>algorithm-update</category>
  </item>
  <item>
    <title>Old news</title>
    <category>holiday</category>
    <pubDate>Mon, 01 Jan 2024 08:00:00 GMT</pubDate>
  </item>
</channel>
</rss>`

func TestFeedSource_CurrentEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(eventsRSS))
	}))
	defer srv.Close()

	f := NewFeedSource(srv.URL, 24*time.Hour)
	f.now = func() time.Time { return time.Date(2024, 11, 29, 12, 0, 0, 0, time.UTC) }

	events, err := f.CurrentEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, timing.Event{Type: timing.EventHoliday, Name: "Black Friday", Impact: "high"}, events[0])
	assert.Equal(t, timing.Event{Type: timing.EventAlgorithmUpdate, Name: "Feed ranking change", Impact: "medium"}, events[1])
}

func TestFeedSource_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFeedSource(srv.URL, time.Hour).CurrentEvents(context.Background())
	assert.Error(t, err)
}

func TestParseEvents(t *testing.T) {
	events, err := ParseEvents([]string{"holiday:Black Friday", " algorithm_update : Reels boost "})
	require.NoError(t, err)
	assert.Equal(t, []timing.Event{
		{Type: timing.EventHoliday, Name: "Black Friday", Impact: "medium"},
		{Type: timing.EventAlgorithmUpdate, Name: "Reels boost", Impact: "medium"},
	}, events)

	_, err = ParseEvents([]string{"no-separator"})
	assert.Error(t, err)
	_, err = ParseEvents([]string{"holiday:"})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	feed, err := NewFromConfig(config.EventsConfig{})
	require.NoError(t, err)
	assert.Nil(t, feed)

	feed, err = NewFromConfig(config.EventsConfig{StaticEvents: []string{"holiday:Black Friday"}})
	require.NoError(t, err)
	events, err := feed.CurrentEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)

	feed, err = NewFromConfig(config.EventsConfig{FeedURL: "http://example.invalid/feed", StaticEvents: []string{"holiday:x"}})
	require.NoError(t, err)
	assert.IsType(t, &FeedSource{}, feed)

	_, err = NewFromConfig(config.EventsConfig{StaticEvents: []string{"bad"}})
	assert.Error(t, err)
}
