// internal/directory/factory.go
package directory

import (
	"database/sql"
	"fmt"

	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
)

const (
	SourceMemory        = "memory"
	SourcePostgres      = "postgres"
	SourceElasticsearch = "elasticsearch"
)

// Backends are the optional stores a directory can sit on. Nil fields are
// simply unavailable.
type Backends struct {
	DB          *sql.DB
	Redis       *redis.Client
	Search      *elasticsearch.Client
	SearchIndex string
}

// New builds the configured directory source and wraps it in the Redis cache
// when a client is supplied.
func New(cfg config.MatchingConfig, b Backends, log logger.Logger) (Lister, error) {
	var base Lister
	switch cfg.DirectorySource {
	case SourcePostgres:
		if b.DB == nil {
			return nil, fmt.Errorf("postgres directory requires a database connection")
		}
		base = NewPostgresDirectory(b.DB)
	case SourceElasticsearch:
		if b.Search == nil {
			return nil, fmt.Errorf("elasticsearch directory requires a search client")
		}
		base = NewSearchIndex(b.Search, b.SearchIndex)
	case SourceMemory, "":
		profiles, err := LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		base = NewMemoryDirectory(profiles)
	default:
		return nil, fmt.Errorf("unknown directory source %q", cfg.DirectorySource)
	}

	if b.Redis == nil {
		return base, nil
	}
	return NewCachedDirectory(base, b.Redis, cfg.CacheDuration(), log), nil
}
