// internal/workers/consultation/send-consultation-notification/config.go
package sendconsultationnotification

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
