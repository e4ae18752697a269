// internal/advisor/history.go
package advisor

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"legal-marketplace/internal/models"

	"github.com/go-redis/redis/v8"
)

const historyKeyPrefix = "chat:history:"

// HistoryStore keeps the recent turns of each advice session.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, msgs ...models.ChatMessage) error
	Recent(ctx context.Context, sessionID string, n int) ([]models.ChatMessage, error)
	Clear(ctx context.Context, sessionID string) error
}

// RedisHistoryStore stores a session as one JSON array with a sliding TTL.
type RedisHistoryStore struct {
	client   *redis.Client
	ttl      time.Duration
	maxTurns int
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration, maxTurns int) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, ttl: ttl, maxTurns: maxTurns}
}

func (s *RedisHistoryStore) load(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	data, err := s.client.Get(ctx, historyKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return []models.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	var msgs []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *RedisHistoryStore) Append(ctx context.Context, sessionID string, msgs ...models.ChatMessage) error {
	history, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	history = trimHistory(append(history, msgs...), s.maxTurns)

	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, historyKeyPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisHistoryStore) Recent(ctx context.Context, sessionID string, n int) ([]models.ChatMessage, error) {
	history, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return trimHistory(history, n), nil
}

func (s *RedisHistoryStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, historyKeyPrefix+sessionID).Err()
}

// MemoryHistoryStore is used when Redis is not configured.
type MemoryHistoryStore struct {
	mu       sync.Mutex
	sessions map[string][]models.ChatMessage
	maxTurns int
}

func NewMemoryHistoryStore(maxTurns int) *MemoryHistoryStore {
	return &MemoryHistoryStore{sessions: make(map[string][]models.ChatMessage), maxTurns: maxTurns}
}

func (s *MemoryHistoryStore) Append(_ context.Context, sessionID string, msgs ...models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = trimHistory(append(s.sessions[sessionID], msgs...), s.maxTurns)
	return nil
}

func (s *MemoryHistoryStore) Recent(_ context.Context, sessionID string, n int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recent := trimHistory(s.sessions[sessionID], n)
	out := make([]models.ChatMessage, len(recent))
	copy(out, recent)
	return out, nil
}

func (s *MemoryHistoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// trimHistory keeps the last n messages; n <= 0 keeps everything.
func trimHistory(msgs []models.ChatMessage, n int) []models.ChatMessage {
	if n > 0 && len(msgs) > n {
		return msgs[len(msgs)-n:]
	}
	return msgs
}
