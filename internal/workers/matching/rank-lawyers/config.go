// internal/workers/matching/rank-lawyers/config.go
package ranklawyers

import "time"

type Config struct {
	Timeout time.Duration
	// SlowThreshold logs a warning when ranking takes longer.
	SlowThreshold time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       15 * time.Second,
		SlowThreshold: 500 * time.Millisecond,
	}
}
