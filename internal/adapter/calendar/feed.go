// internal/adapter/calendar/feed.go

package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"cadence/internal/domain/timing"
)

const defaultImpact = "medium"

// FeedSource reads calendar events from an RSS or Atom feed. The first item
// category is the event type, the second its impact.
type FeedSource struct {
	url          string
	activeWindow time.Duration
	parser       *gofeed.Parser
	now          func() time.Time
}

// NewFeedSource creates an event feed for url. Dated items are active within
// activeWindow of now, in either direction.
func NewFeedSource(url string, activeWindow time.Duration) *FeedSource {
	return &FeedSource{
		url:          url,
		activeWindow: activeWindow,
		parser:       gofeed.NewParser(),
		now:          time.Now,
	}
}

// CurrentEvents fetches the feed and returns its active events
func (f *FeedSource) CurrentEvents(ctx context.Context) ([]timing.Event, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch event feed %s: %w", f.url, err)
	}

	now := f.now()
	events := make([]timing.Event, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" || !f.active(item, now) {
			continue
		}
		events = append(events, itemToEvent(item))
	}
	return events, nil
}

func (f *FeedSource) active(item *gofeed.Item, now time.Time) bool {
	at := item.PublishedParsed
	if at == nil {
		at = item.UpdatedParsed
	}
	if at == nil || f.activeWindow <= 0 {
		return true
	}
	d := now.Sub(*at)
	if d < 0 {
		d = -d
	}
	return d <= f.activeWindow
}

func itemToEvent(item *gofeed.Item) timing.Event {
	ev := timing.Event{
		Type:   timing.EventHoliday,
		Name:   strings.TrimSpace(item.Title),
		Impact: defaultImpact,
	}
	if len(item.Categories) > 0 {
		ev.Type = normalizeType(item.Categories[0])
	}
	if len(item.Categories) > 1 && strings.TrimSpace(item.Categories[1]) != "" {
		ev.Impact = strings.ToLower(strings.TrimSpace(item.Categories[1]))
	}
	return ev
}

func normalizeType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.NewReplacer("-", "_", " ", "_").Replace(t)
	return t
}
