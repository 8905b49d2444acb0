// ABOUTME: Configuration loading and parsing for dawn-gateway
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default polling budget: 120 attempts at 1s apart bounds a single chat
// turn to roughly two minutes of upstream job time.
const (
	DefaultMaxPollAttempts = 120
	DefaultPollDelay       = time.Second
	DefaultRequestTimeout  = 30 * time.Second
)

// Unknown-message policies for the webhook dispatcher.
const (
	UnknownMessageAck    = "ack"
	UnknownMessageReject = "reject"
)

// Config represents the complete dawn-gateway configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Relevance RelevanceConfig `yaml:"relevance"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Assistant AssistantConfig `yaml:"assistant"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// RelevanceConfig holds credentials and tuning for the Relevance AI platform.
// BaseURL is a template containing a {region} placeholder, e.g.
// "https://api-{region}.stack.tryrelevance.com/latest".
type RelevanceConfig struct {
	Region    string `yaml:"region"`
	BaseURL   string `yaml:"base_url"`
	ProjectID string `yaml:"project_id"`
	APIKey    string `yaml:"api_key"`

	MaxPollAttempts int `yaml:"max_poll_attempts"`

	PollDelay      time.Duration `yaml:"-"`
	RequestTimeout time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	PollDelayRaw      string `yaml:"poll_delay"`
	RequestTimeoutRaw string `yaml:"request_timeout"`
}

// Endpoint returns the base URL with the {region} placeholder expanded.
func (r RelevanceConfig) Endpoint() string {
	return strings.ReplaceAll(r.BaseURL, "{region}", r.Region)
}

// WebhookConfig holds dispatcher behavior configuration
type WebhookConfig struct {
	// UnknownMessagePolicy controls the response to unrecognized
	// message types: "reject" returns 400, "ack" returns 200.
	UnknownMessagePolicy string `yaml:"unknown_message_policy"`
}

// AssistantConfig holds the tunable fields of the assistant provisioning
// payload returned for assistant-request messages.
type AssistantConfig struct {
	ServerURL    string `yaml:"server_url"`
	ModelID      string `yaml:"model_id"`
	SystemPrompt string `yaml:"system_prompt"`
	FirstMessage string `yaml:"first_message"`
	VoiceID      string `yaml:"voice_id"`
	MaxTokens    int    `yaml:"max_tokens"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.Relevance.MaxPollAttempts == 0 {
		c.Relevance.MaxPollAttempts = DefaultMaxPollAttempts
	}
	if c.Relevance.PollDelay == 0 {
		c.Relevance.PollDelay = DefaultPollDelay
	}
	if c.Relevance.RequestTimeout == 0 {
		c.Relevance.RequestTimeout = DefaultRequestTimeout
	}
	if c.Webhook.UnknownMessagePolicy == "" {
		c.Webhook.UnknownMessagePolicy = UnknownMessageReject
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
// Relevance credentials are validated here so that a misconfigured gateway
// fails at startup rather than producing invalid upstream URLs per request.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Relevance.Region == "" {
		return fmt.Errorf("relevance.region is required")
	}
	if c.Relevance.BaseURL == "" {
		return fmt.Errorf("relevance.base_url is required")
	}
	if c.Relevance.ProjectID == "" {
		return fmt.Errorf("relevance.project_id is required")
	}
	if c.Relevance.APIKey == "" {
		return fmt.Errorf("relevance.api_key is required")
	}
	if c.Relevance.MaxPollAttempts < 1 {
		return fmt.Errorf("relevance.max_poll_attempts must be positive")
	}
	switch c.Webhook.UnknownMessagePolicy {
	case UnknownMessageAck, UnknownMessageReject:
	default:
		return fmt.Errorf("webhook.unknown_message_policy must be %q or %q", UnknownMessageAck, UnknownMessageReject)
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Relevance.PollDelayRaw != "" {
		cfg.Relevance.PollDelay, err = time.ParseDuration(cfg.Relevance.PollDelayRaw)
		if err != nil {
			return fmt.Errorf("parsing poll_delay %q: %w", cfg.Relevance.PollDelayRaw, err)
		}
	}

	if cfg.Relevance.RequestTimeoutRaw != "" {
		cfg.Relevance.RequestTimeout, err = time.ParseDuration(cfg.Relevance.RequestTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing request_timeout %q: %w", cfg.Relevance.RequestTimeoutRaw, err)
		}
	}

	return nil
}
