// internal/workers/advisory/generate-legal-advice/config.go
package generatelegaladvice

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 45 * time.Second,
	}
}
