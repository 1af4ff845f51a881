// internal/service/timing/events.go

package timing

import (
	"context"
	"math"
	"time"

	"cadence/internal/domain/timing"
	"cadence/internal/platform/logger"
)

const algorithmUpdatePenalty = 0.8

// HolidayRule shifts the posting hour for a named holiday
type HolidayRule struct {
	Shift int
	Floor int
}

// Apply shifts hour and clamps it at the floor
func (r HolidayRule) Apply(hour int) int {
	shifted := hour + r.Shift
	if shifted < r.Floor {
		return r.Floor
	}
	return shifted
}

// DefaultHolidayRules returns the built-in holiday shifts
func DefaultHolidayRules() map[string]HolidayRule {
	return map[string]HolidayRule{
		"Black Friday": {Shift: -2, Floor: 6},
	}
}

// EventAdjuster applies active calendar events to a timing
type EventAdjuster struct {
	feed    timing.EventFeed
	rules   map[string]HolidayRule
	timeout time.Duration
	log     *logger.Logger
}

// NewEventAdjuster creates an adjuster. A nil feed behaves like an empty one.
func NewEventAdjuster(feed timing.EventFeed, rules map[string]HolidayRule, timeout time.Duration, log *logger.Logger) *EventAdjuster {
	if rules == nil {
		rules = DefaultHolidayRules()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EventAdjuster{feed: feed, rules: rules, timeout: timeout, log: log}
}

// Adjust shifts and discounts t for current events, then recomputes the
// expected engagement. If the feed fails t is kept as is.
func (a *EventAdjuster) Adjust(ctx context.Context, t timing.Timing) timing.Timing {
	adjusted := t
	for _, ev := range a.currentEvents(ctx) {
		switch ev.Type {
		case timing.EventHoliday:
			if rule, ok := a.rules[ev.Name]; ok {
				// rules apply to the personalized hour, not to earlier shifts
				adjusted.BestHour = rule.Apply(t.BestHour)
			}
		case timing.EventAlgorithmUpdate:
			adjusted.Confidence *= algorithmUpdatePenalty
		}
	}
	adjusted.ExpectedEngagement = ExpectedEngagement(adjusted)
	return adjusted
}

func (a *EventAdjuster) currentEvents(ctx context.Context) []timing.Event {
	if a.feed == nil {
		return nil
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	events, err := a.feed.CurrentEvents(ctx)
	if err != nil {
		a.log.Warn("event feed unavailable, using unadjusted timing", "error", err)
		return nil
	}
	return events
}

// ExpectedEngagement is score times confidence as a rounded percentage
func ExpectedEngagement(t timing.Timing) int {
	return int(math.Round(t.Score * t.Confidence * 100))
}
