// internal/common/database/database_test.go
package database

import (
	"context"
	"testing"

	"legal-marketplace/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_PingAndClose(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()))
	require.NoError(t, client.Close())
}

func TestNewRedis_PingFailsWhenServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := NewRedis(config.RedisConfig{Address: addr})
	defer client.Close()

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestNewChatHistoryRedis_UsesNextDatabase(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewChatHistoryRedis(config.RedisConfig{Address: mr.Addr(), DB: 2})
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.DB(3).Exists("k"))
	assert.False(t, mr.DB(2).Exists("k"))
}

func TestNewPostgres_BuildsPool(t *testing.T) {
	client, err := NewPostgres(config.PostgresConfig{
		Host: "localhost", Port: 5432, User: "u", Database: "legal",
		SSLMode: "disable", MaxConnections: 4, MaxIdle: 2,
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 4, client.DB.Stats().MaxOpenConnections)
}
