// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env, configs/config.yaml and configs/config.<APP_ENVIRONMENT>.yaml,
// then applies environment overrides, defaults and validation.
// CONFIG_FILE, when set, names a single file to load instead.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return LoadFromFile(path)
	}
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	candidates := []string{".env", "../.env", "../../.env", "../../../.env"}
	if root := findProjectRoot(); root != "" {
		candidates = append(candidates, filepath.Join(root, ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from well-known environment variables.
func overrideEmptyConfig(cfg *Config) {
	envOverrides := []struct {
		target *string
		env    string
	}{
		{&cfg.APIs.Gemini.APIKey, "GOOGLE_GEMINI_API_KEY"},
		{&cfg.Payment.StripeKey, "STRIPE_SECRET_KEY"},
		{&cfg.Payment.MockSecret, "PAYMENT_MOCK_SECRET"},
		{&cfg.Database.Postgres.User, "DB_USER"},
		{&cfg.Database.Postgres.Password, "DB_PASSWORD"},
		{&cfg.Database.Mongo.URI, "MONGO_URI"},
		{&cfg.Notifications.AWSRegion, "AWS_REGION"},
	}

	for _, o := range envOverrides {
		if *o.target != "" {
			continue
		}
		if val := os.Getenv(o.env); val != "" {
			*o.target = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "legal-marketplace"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.HTTP.MetricsPort == 0 {
		cfg.HTTP.MetricsPort = 9090
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15000
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30000
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10000
	}
	if cfg.HTTP.RateLimitRPM == 0 {
		cfg.HTTP.RateLimitRPM = 200
	}
	if cfg.HTTP.RateLimitBurst == 0 {
		cfg.HTTP.RateLimitBurst = 20
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.LawyerIndex == "" {
		cfg.Database.Elasticsearch.LawyerIndex = "lawyers"
	}
	if cfg.Database.Mongo.Database == "" {
		cfg.Database.Mongo.Database = "legal_marketplace"
	}
	if cfg.Database.Mongo.CasesCollection == "" {
		cfg.Database.Mongo.CasesCollection = "cases"
	}

	if cfg.Matching.TopK == 0 {
		cfg.Matching.TopK = 5
	}
	if cfg.Matching.DirectorySource == "" {
		cfg.Matching.DirectorySource = "memory"
	}
	if cfg.Matching.SeedFile == "" {
		cfg.Matching.SeedFile = "configs/lawyers.json"
	}
	if cfg.Matching.CacheTTL == 0 {
		cfg.Matching.CacheTTL = 300
	}
	if cfg.Matching.SlowThreshold == 0 {
		cfg.Matching.SlowThreshold = 500
	}

	if cfg.APIs.Gemini.Model == "" {
		cfg.APIs.Gemini.Model = "gemini-1.5-flash"
	}
	if cfg.APIs.Gemini.Timeout == 0 {
		cfg.APIs.Gemini.Timeout = 30000
	}
	if cfg.APIs.Gemini.MaxTokens == 0 {
		cfg.APIs.Gemini.MaxTokens = 2048
	}
	if cfg.APIs.ChatHistory.TTL == 0 {
		cfg.APIs.ChatHistory.TTL = 86400
	}
	if cfg.APIs.ChatHistory.MaxTurns == 0 {
		cfg.APIs.ChatHistory.MaxTurns = 20
	}

	if cfg.Payment.Provider == "" {
		cfg.Payment.Provider = "mock"
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "INR"
	}

	if cfg.Notifications.AWSRegion == "" {
		cfg.Notifications.AWSRegion = "ap-south-1"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
	if cfg.Observability.SampleRatio == 0 {
		cfg.Observability.SampleRatio = 1.0
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

// validateConfig rejects configurations that cannot start any binary.
func validateConfig(cfg *Config) error {
	switch cfg.Matching.DirectorySource {
	case "memory", "postgres", "elasticsearch":
	default:
		return fmt.Errorf("matching.directory_source must be memory, postgres or elasticsearch, got %q", cfg.Matching.DirectorySource)
	}

	if cfg.Matching.DirectorySource == "postgres" {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
	}

	if cfg.Matching.DirectorySource == "elasticsearch" && len(cfg.Database.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("database.elasticsearch.addresses is required")
	}

	if cfg.Matching.TopK < 1 {
		return fmt.Errorf("matching.top_k must be positive")
	}

	switch cfg.Payment.Provider {
	case "mock":
		if cfg.Payment.MockSecret == "" {
			return fmt.Errorf("payment.mock_secret is required for the mock provider")
		}
	case "stripe":
		if cfg.Payment.StripeKey == "" {
			return fmt.Errorf("payment.stripe_key is required for the stripe provider")
		}
	default:
		return fmt.Errorf("payment.provider must be mock or stripe, got %q", cfg.Payment.Provider)
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig returns the worker's settings or the defaults when it is not listed.
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled reports whether a worker should be started; unlisted workers are enabled.
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
