// internal/workers/legal/analyze-case-complexity/config.go
package analyzecasecomplexity

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
