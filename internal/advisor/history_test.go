// internal/advisor/history_test.go
package advisor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"legal-marketplace/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turn(i int) models.ChatMessage {
	return models.ChatMessage{Type: models.ChatRoleUser, Content: fmt.Sprintf("message %d", i), Timestamp: time.Unix(int64(i), 0).UTC()}
}

func TestRedisHistoryStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisHistoryStore(client, time.Hour, 4)
	ctx := context.Background()

	empty, err := store.Recent(ctx, "s1", 3)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := 1; i <= 6; i++ {
		require.NoError(t, store.Append(ctx, "s1", turn(i)))
	}

	all, err := store.Recent(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "message 3", all[0].Content)

	recent, err := store.Recent(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"message 5", "message 6"}, []string{recent[0].Content, recent[1].Content})

	assert.Equal(t, time.Hour, mr.TTL(historyKeyPrefix+"s1"))

	require.NoError(t, store.Clear(ctx, "s1"))
	assert.False(t, mr.Exists(historyKeyPrefix+"s1"))
}

func TestRedisHistoryStore_CorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, mr.Set(historyKeyPrefix+"bad", "{"))

	_, err := NewRedisHistoryStore(client, time.Hour, 10).Recent(context.Background(), "bad", 3)
	assert.Error(t, err)
}

func TestMemoryHistoryStore(t *testing.T) {
	store := NewMemoryHistoryStore(3)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s", turn(1), turn(2), turn(3), turn(4)))
	msgs, err := store.Recent(ctx, "s", 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
	assert.Equal(t, "message 2", msgs[0].Content)

	require.NoError(t, store.Clear(ctx, "s"))
	msgs, _ = store.Recent(ctx, "s", 10)
	assert.Empty(t, msgs)
}
