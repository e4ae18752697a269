// internal/bootstrap/infra.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"legal-marketplace/internal/common/aws"
	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/database"
	"legal-marketplace/internal/common/logger"

	redisv8 "github.com/go-redis/redis/v8"
)

// Needs selects the optional backends a binary connects to.
type Needs struct {
	Mongo bool
}

// Infra holds the connected backends. Unconfigured backends stay nil.
type Infra struct {
	Postgres  *database.PostgresClient
	Redis     *database.RedisClient
	ChatRedis *redisv8.Client
	Search    *database.ElasticsearchClient
	Mongo     *database.MongoClient
	SES       *aws.SESClient
	SNS       *aws.SNSClient

	logger logger.Logger
}

const (
	connectRetries = 5
	connectDelay   = 2 * time.Second
)

// RetryWithBackoff runs operation until it succeeds, doubling the delay
// between attempts.
func RetryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying", map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// Connect opens every configured backend. Postgres and Elasticsearch are
// required only when the directory is sourced from them; otherwise a failed
// connection is logged and the backend is left nil.
func Connect(ctx context.Context, cfg *config.Config, needs Needs, log logger.Logger) (*Infra, error) {
	log = logger.ForComponent(log, "bootstrap")
	infra := &Infra{logger: log}

	if cfg.Database.Postgres.Host != "" {
		err := RetryWithBackoff(func() error {
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return err
			}
			infra.Postgres = pg
			return nil
		}, connectRetries, connectDelay, log, "PostgreSQL connection")
		if err != nil {
			if cfg.Matching.DirectorySource == "postgres" {
				infra.Close(ctx)
				return nil, err
			}
			log.Warn("continuing without PostgreSQL", map[string]interface{}{"error": err})
		}
	}

	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		err := RetryWithBackoff(func() error {
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}
			infra.Search = es
			return nil
		}, connectRetries, connectDelay, log, "Elasticsearch connection")
		if err != nil {
			if cfg.Matching.DirectorySource == "elasticsearch" {
				infra.Close(ctx)
				return nil, err
			}
			log.Warn("continuing without Elasticsearch", map[string]interface{}{"error": err})
		}
	}

	if cfg.Database.Redis.Address != "" {
		rc := database.NewRedis(cfg.Database.Redis)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("continuing without Redis", map[string]interface{}{"error": err})
			rc.Close()
		} else {
			infra.Redis = rc
			infra.ChatRedis = database.NewChatHistoryRedis(cfg.Database.Redis)
		}
	}

	if needs.Mongo && cfg.Database.Mongo.URI != "" {
		mc, err := database.NewMongo(ctx, cfg.Database.Mongo)
		if err != nil {
			log.Warn("continuing without MongoDB", map[string]interface{}{"error": err})
		} else {
			infra.Mongo = mc
		}
	}

	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		sesClient, snsClient, err := aws.NewClients(ctx, cfg.Notifications.AWSRegion)
		if err != nil {
			log.Warn("notifications disabled, AWS clients unavailable", map[string]interface{}{"error": err})
		} else {
			infra.SES, infra.SNS = sesClient, snsClient
		}
	}

	log.Info("infrastructure connected", map[string]interface{}{
		"postgres":      infra.Postgres != nil,
		"elasticsearch": infra.Search != nil,
		"redis":         infra.Redis != nil,
		"mongo":         infra.Mongo != nil,
		"aws":           infra.SES != nil,
	})
	return infra, nil
}

// HealthChecks returns a ping per connected backend.
func (i *Infra) HealthChecks() map[string]func(context.Context) error {
	checks := make(map[string]func(context.Context) error)
	if i.Postgres != nil {
		checks["postgres"] = i.Postgres.Ping
	}
	if i.Redis != nil {
		checks["redis"] = i.Redis.Ping
	}
	if i.Search != nil {
		checks["elasticsearch"] = i.Search.Ping
	}
	if i.Mongo != nil {
		checks["mongo"] = func(ctx context.Context) error {
			return i.Mongo.Client.Ping(ctx, nil)
		}
	}
	return checks
}

func (i *Infra) Close(ctx context.Context) {
	if i.Postgres != nil {
		if err := i.Postgres.Close(); err != nil {
			i.logger.Error("error closing PostgreSQL", map[string]interface{}{"error": err})
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.logger.Error("error closing Redis", map[string]interface{}{"error": err})
		}
	}
	if i.ChatRedis != nil {
		_ = i.ChatRedis.Close()
	}
	if i.Mongo != nil {
		if err := i.Mongo.Close(ctx); err != nil {
			i.logger.Error("error closing MongoDB", map[string]interface{}{"error": err})
		}
	}
}
