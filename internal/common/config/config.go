// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration shared by the worker manager and the API server.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	HTTP          HTTPConfig              `mapstructure:"http"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Matching      MatchingConfig          `mapstructure:"matching"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Payment       PaymentConfig           `mapstructure:"payment"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type HTTPConfig struct {
	Port            int      `mapstructure:"port"`
	MetricsPort     int      `mapstructure:"metrics_port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	RateLimitRPM    int      `mapstructure:"rate_limit_rpm"`
	RateLimitBurst  int      `mapstructure:"rate_limit_burst"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// Addr returns the listen address for the API server.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Mongo         MongoConfig         `mapstructure:"mongo"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the lib/pq connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses   []string `mapstructure:"addresses"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	LawyerIndex string   `mapstructure:"lawyer_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MongoConfig struct {
	URI             string `mapstructure:"uri"`
	Database        string `mapstructure:"database"`
	CasesCollection string `mapstructure:"cases_collection"`
}

// WorkerConfig holds the settings applicable to every Zeebe worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// --- Domain Configuration Sections ---

// MatchingConfig tunes the directory feeding the ranking engine.
type MatchingConfig struct {
	TopK            int    `mapstructure:"top_k"`
	DirectorySource string `mapstructure:"directory_source"` // memory | postgres | elasticsearch
	SeedFile        string `mapstructure:"seed_file"`
	CacheTTL        int    `mapstructure:"cache_ttl"`      // seconds
	SlowThreshold   int    `mapstructure:"slow_threshold"` // milliseconds
}

// CacheDuration returns the directory cache TTL.
func (m MatchingConfig) CacheDuration() time.Duration {
	return time.Duration(m.CacheTTL) * time.Second
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	Gemini struct {
		APIKey      string  `mapstructure:"api_key"`
		Model       string  `mapstructure:"model"`
		Timeout     int     `mapstructure:"timeout"` // milliseconds
		MaxTokens   int32   `mapstructure:"max_tokens"`
		Temperature float32 `mapstructure:"temperature"`
	} `mapstructure:"gemini"`

	ChatHistory struct {
		TTL      int `mapstructure:"ttl"` // seconds
		MaxTurns int `mapstructure:"max_turns"`
	} `mapstructure:"chat_history"`
}

// PaymentConfig selects and configures the payment gateway.
type PaymentConfig struct {
	Provider   string `mapstructure:"provider"` // mock | stripe
	Currency   string `mapstructure:"currency"`
	StripeKey  string `mapstructure:"stripe_key"`
	MockSecret string `mapstructure:"mock_secret"`
}

// NotificationConfig holds SES and SNS delivery settings.
type NotificationConfig struct {
	AWSRegion string `mapstructure:"aws_region"`
	Email     struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
}

// ObservabilityConfig configures tracing export.
type ObservabilityConfig struct {
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
