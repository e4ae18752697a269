// internal/workers/legal/classify-legal-query/config.go
package classifylegalquery

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
