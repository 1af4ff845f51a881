// internal/adapter/provider/client.go

package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"cadence/internal/domain/llm"
)

// ErrEmptyResponse is returned when a provider answers without any text
var ErrEmptyResponse = errors.New("provider returned no text")

// Client generates text from one provider backend
type Client interface {
	Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error)
}

// HTTPError is a non-2xx answer from a provider API
type HTTPError struct {
	Provider   llm.Provider
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("%s: http %d: %s", e.Provider, e.StatusCode, body)
}

// Temporary reports whether the call may succeed if repeated later
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// HTTPConfig holds what every HTTP provider client needs
type HTTPConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

func newRestyClient(cfg HTTPConfig) *resty.Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return c
}

func checkResponse(p llm.Provider, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s request: %w", p, err)
	}
	if resp.IsError() {
		return &HTTPError{Provider: p, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
