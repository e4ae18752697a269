// internal/common/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"legal-marketplace/internal/common/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient holds the case management database.
type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo connects and pings within a bounded timeout.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return &MongoClient{Client: client, Database: client.Database(cfg.Database)}, nil
}

func (c *MongoClient) Close(ctx context.Context) error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Disconnect(ctx)
}
