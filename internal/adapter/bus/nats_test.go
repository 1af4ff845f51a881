package bus

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/domain/events"
)

type capturePublisher struct {
	subject string
	data    []byte
	err     error
}

func (c *capturePublisher) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data
	return c.err
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "trend.detected", Subject("", "trend.detected"))
	assert.Equal(t, "cadence.trend.detected", Subject("cadence", "trend.detected"))
}

func TestPublishJSON(t *testing.T) {
	pub := &capturePublisher{}
	require.NoError(t, PublishJSON(pub, events.SubjectPlanGenerated, map[string]int{"totalPieces": 28}))

	assert.Equal(t, events.SubjectPlanGenerated, pub.subject)

	var env events.Envelope
	require.NoError(t, json.Unmarshal(pub.data, &env))
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, events.SubjectPlanGenerated, env.Type)
	assert.False(t, env.Timestamp.IsZero())
	assert.JSONEq(t, `{"totalPieces":28}`, string(env.Payload))
}

func TestPublishJSON_Errors(t *testing.T) {
	assert.NoError(t, PublishJSON(nil, "x", 1))

	pub := &capturePublisher{err: errors.New("closed")}
	assert.EqualError(t, PublishJSON(pub, "x", 1), "closed")

	assert.Error(t, PublishJSON(&capturePublisher{}, "x", func() {}))
}

func TestNop(t *testing.T) {
	var n Nop
	assert.NoError(t, n.Publish("x", nil))
	unsubscribe, err := n.Subscribe("x", func(string, []byte) {})
	require.NoError(t, err)
	assert.NoError(t, unsubscribe())
}
