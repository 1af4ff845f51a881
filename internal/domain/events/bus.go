// internal/domain/events/bus.go

package events

import (
	"encoding/json"
	"time"
)

// Subjects published on the event bus, relative to the configured topic prefix
const (
	SubjectTrendDetected = "trend.detected"
	SubjectMicroTrend    = "trend.micro"
	SubjectPlanGenerated = "plan.generated"
)

// Publisher publishes raw payloads to a subject
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Subscriber delivers payloads published on a subject until the returned
// unsubscribe function is called
type Subscriber interface {
	Subscribe(subject string, handler func(subject string, data []byte)) (unsubscribe func() error, err error)
}

// Envelope wraps every payload published by this service
type Envelope struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}
