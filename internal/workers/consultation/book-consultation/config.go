// internal/workers/consultation/book-consultation/config.go
package bookconsultation

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
