package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"provider", "gpt4", "api_key", "sk-123", "Bearer_Token", "abc", "dangling"})

	assert.Equal(t, []interface{}{
		"provider", "gpt4",
		"api_key", "[REDACTED]",
		"Bearer_Token", "[REDACTED]",
		"dangling",
	}, out)
}

func TestNopLoggerIsSafe(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", 1)
	l.Sync()
}
