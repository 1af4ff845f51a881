package calendar

import (
	"context"
	"fmt"
	"strings"

	"cadence/internal/config"
	"cadence/internal/domain/timing"
)

// StaticFeed always reports the same events
type StaticFeed struct {
	events []timing.Event
}

// NewStaticFeed creates a feed over events
func NewStaticFeed(events ...timing.Event) *StaticFeed {
	return &StaticFeed{events: events}
}

// CurrentEvents returns a copy of the configured events
func (f *StaticFeed) CurrentEvents(context.Context) ([]timing.Event, error) {
	return append([]timing.Event(nil), f.events...), nil
}

// ParseEvents parses "type:name" entries such as "holiday:Black Friday"
func ParseEvents(entries []string) ([]timing.Event, error) {
	events := make([]timing.Event, 0, len(entries))
	for _, entry := range entries {
		kind, name, ok := strings.Cut(entry, ":")
		kind, name = strings.TrimSpace(kind), strings.TrimSpace(name)
		if !ok || kind == "" || name == "" {
			return nil, fmt.Errorf("invalid event %q: want type:name", entry)
		}
		events = append(events, timing.Event{Type: normalizeType(kind), Name: name, Impact: defaultImpact})
	}
	return events, nil
}

// NewFromConfig picks the feed URL when set, otherwise the static events.
// It returns nil when neither is configured.
func NewFromConfig(cfg config.EventsConfig) (timing.EventFeed, error) {
	if cfg.FeedURL != "" {
		return NewFeedSource(cfg.FeedURL, cfg.ActiveWindow), nil
	}
	if len(cfg.StaticEvents) == 0 {
		return nil, nil
	}
	events, err := ParseEvents(cfg.StaticEvents)
	if err != nil {
		return nil, err
	}
	return NewStaticFeed(events...), nil
}
