// internal/config/config.go

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable, e.g. CADENCE_SERVER_PORT.
// Provider keys also fall back to their unprefixed names (OPENAI_API_KEY, ...).
const EnvPrefix = "CADENCE"

// Config holds all application configuration
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Redis       RedisConfig
	LLM         LLMConfig
	Trend       TrendConfig
	Timing      TimingConfig
	Planner     PlannerConfig
	Events      EventsConfig
	Twitter     TwitterConfig
}

// ServerConfig holds server configuration. RequestTimeout bounds every /api
// request: a live plan for the default platforms makes 70 executor calls,
// about a minute with healthy providers.
type ServerConfig struct {
	Host            string        `split_words:"true" default:"0.0.0.0"`
	Port            int           `split_words:"true" default:"8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `split_words:"true" default:"310s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	RequestTimeout  time.Duration `split_words:"true" default:"300s"`
	CorsOrigins     []string      `split_words:"true" default:"*"`
}

// DatabaseConfig holds database configuration. Plans are only persisted when Enabled.
type DatabaseConfig struct {
	Enabled      bool          `split_words:"true" default:"false"`
	Host         string        `split_words:"true" default:"localhost"`
	Port         int           `split_words:"true" default:"5432"`
	User         string        `split_words:"true" default:"postgres"`
	Password     string        `split_words:"true" default:"postgres"`
	Name         string        `split_words:"true" default:"cadence"`
	MaxOpenConns int           `split_words:"true" default:"10"`
	MaxIdleConns int           `split_words:"true" default:"2"`
	MaxLifetime  time.Duration `split_words:"true" default:"5m"`
	SSLMode      string        `split_words:"true" default:"disable"`
}

// NATSConfig holds NATS configuration. An empty URL disables the event bus.
type NATSConfig struct {
	URL            string        `split_words:"true" default:""`
	MaxReconnects  int           `split_words:"true" default:"10"`
	ReconnectWait  time.Duration `split_words:"true" default:"1s"`
	ConnectTimeout time.Duration `split_words:"true" default:"2s"`
	TopicPrefix    string        `split_words:"true" default:"cadence"`
}

// RedisConfig holds the generation cache configuration. An empty URL disables caching.
type RedisConfig struct {
	URL    string        `split_words:"true" default:""`
	Prefix string        `split_words:"true" default:"cadence"`
	TTL    time.Duration `split_words:"true" default:"6h"`
}

// LLMConfig holds provider credentials and call policy
type LLMConfig struct {
	// Mode is "live" for real providers or "mock" for the deterministic offline generator
	Mode        string        `split_words:"true" default:"mock"`
	CallTimeout time.Duration `split_words:"true" default:"30s"`
	Temperature float64       `split_words:"true" default:"0.7"`
	MaxTokens   int           `split_words:"true" default:"1000"`

	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4"`

	AnthropicKey     string `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`
	AnthropicModel   string `envconfig:"ANTHROPIC_MODEL" default:"claude-3-sonnet-20240229"`

	GeminiKey     string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
}

// TrendConfig holds trend discovery configuration
type TrendConfig struct {
	DiscoveryWindow  time.Duration `split_words:"true" default:"24h"`
	MicroTrendWindow time.Duration `split_words:"true" default:"6h"`
	MaxConcurrency   int           `split_words:"true" default:"4"`
	UseSampleSource  bool          `split_words:"true" default:"true"`
}

// TimingConfig holds timing optimization configuration
type TimingConfig struct {
	EventFeedTimeout time.Duration `split_words:"true" default:"5s"`
}

// PlannerConfig holds content planning configuration
type PlannerConfig struct {
	MaxConcurrency int `split_words:"true" default:"4"`
}

// EventsConfig selects the calendar event feed. FeedURL wins over StaticEvents.
type EventsConfig struct {
	FeedURL      string        `split_words:"true" default:""`
	ActiveWindow time.Duration `split_words:"true" default:"24h"`
	// StaticEvents is a list of type:name pairs, e.g. "holiday:Black Friday"
	StaticEvents []string `split_words:"true" default:""`
}

// TwitterConfig enables the Twitter/X recent-counts signal source when BearerToken is set
type TwitterConfig struct {
	BearerToken string   `split_words:"true"`
	Host        string   `split_words:"true" default:"https://api.twitter.com"`
	Topics      []string `split_words:"true" default:""`
	Regions     []string `split_words:"true" default:""`
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	cfg.Server.CorsOrigins = compact(cfg.Server.CorsOrigins)
	cfg.Events.StaticEvents = compact(cfg.Events.StaticEvents)
	cfg.Twitter.Topics = compact(cfg.Twitter.Topics)
	cfg.Twitter.Regions = compact(cfg.Twitter.Regions)

	return cfg, validate(cfg)
}

// IsProduction reports whether the service runs in production
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// validate checks if config is valid
func validate(config Config) error {
	switch config.LLM.Mode {
	case "live", "mock":
	default:
		return fmt.Errorf("unsupported LLM mode: %q", config.LLM.Mode)
	}

	if config.LLM.CallTimeout <= 0 {
		return fmt.Errorf("LLM call timeout must be positive")
	}
	if config.Timing.EventFeedTimeout <= 0 {
		return fmt.Errorf("event feed timeout must be positive")
	}
	if config.Trend.MaxConcurrency < 1 || config.Planner.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1")
	}
	if config.Server.RequestTimeout > 0 && config.Server.WriteTimeout > 0 &&
		config.Server.WriteTimeout <= config.Server.RequestTimeout {
		return fmt.Errorf("write timeout %s must exceed request timeout %s",
			config.Server.WriteTimeout, config.Server.RequestTimeout)
	}

	if config.LLM.Mode == "live" && config.LLM.OpenAIKey == "" && config.LLM.AnthropicKey == "" && config.LLM.GeminiKey == "" {
		return fmt.Errorf("live LLM mode requires at least one provider API key")
	}

	if config.IsProduction() && config.LLM.Mode == "mock" {
		return fmt.Errorf("mock LLM mode is not allowed in production")
	}

	return nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
