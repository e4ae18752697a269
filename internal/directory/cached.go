// internal/directory/cached.go
package directory

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyAll      = "lawyers:all"
	cacheKeyIDPrefix = "lawyers:id:"
)

// CachedDirectory serves directory snapshots from Redis and falls back to the
// wrapped directory on a miss. Cache errors are logged, never returned.
type CachedDirectory struct {
	next   Directory
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedDirectory(next Directory, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedDirectory {
	return &CachedDirectory{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: logger.ForComponent(log, "directory-cache"),
	}
}

func (c *CachedDirectory) GetAllProfiles(ctx context.Context) ([]models.LawyerProfile, error) {
	var profiles []models.LawyerProfile
	if c.load(ctx, cacheKeyAll, &profiles) {
		return profiles, nil
	}

	profiles, err := c.next.GetAllProfiles(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, cacheKeyAll, profiles)
	return profiles, nil
}

func (c *CachedDirectory) GetByID(ctx context.Context, id string) (*models.LawyerProfile, error) {
	key := cacheKeyIDPrefix + id
	var profile models.LawyerProfile
	if c.load(ctx, key, &profile) {
		return &profile, nil
	}

	p, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, p)
	return p, nil
}

// List is not cached; filters are too varied to key on.
func (c *CachedDirectory) List(ctx context.Context, filter models.LawyerFilter) ([]models.LawyerProfile, error) {
	if lister, ok := c.next.(Lister); ok {
		return lister.List(ctx, filter)
	}
	all, err := c.GetAllProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return filterProfiles(all, filter), nil
}

// Create writes through to the wrapped directory and drops the snapshot key.
func (c *CachedDirectory) Create(ctx context.Context, profile *models.LawyerProfile) error {
	lister, ok := c.next.(Lister)
	if !ok {
		return stderrors.New("wrapped directory is read-only")
	}
	if err := lister.Create(ctx, profile); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

func (c *CachedDirectory) Invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, cacheKeyAll).Err(); err != nil {
		c.warn("cache invalidation failed", cacheKeyAll, err)
	}
}

func (c *CachedDirectory) load(ctx context.Context, key string, dest interface{}) bool {
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if !stderrors.Is(err, redis.Nil) {
			c.warn("cache read failed", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.logger.Warn("cache entry corrupt", map[string]interface{}{"key": key, "error": err})
		return false
	}
	return true
}

func (c *CachedDirectory) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.warn("cache write failed", key, err)
	}
}

func (c *CachedDirectory) warn(msg, key string, err error) {
	cerr := errors.NewCacheFailureError(err)
	c.logger.Warn(msg, map[string]interface{}{
		"key":       key,
		"code":      string(cerr.Code),
		"error":     cerr.Details,
		"retryable": cerr.Retryable,
	})
}
