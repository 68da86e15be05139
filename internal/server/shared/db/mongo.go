// Package db opens the MongoDB client used by the document store backends.
package db

import (
	"context"
	"fmt"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	connect = mongo.Connect

	ping = func(ctx context.Context, c *mongo.Client) error {
		return c.Ping(ctx, readpref.Primary())
	}
)

// ClientOptions builds driver options from the server configuration.
// Credentials are only attached when a user name is configured.
func ClientOptions(cfg *config.Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.DatabaseURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	if cfg.DatabaseUser != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.DatabaseUser,
			Password: cfg.DatabasePassword,
		})
	}

	return opts
}

// Connect opens a client and verifies the deployment is reachable.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := connect(ClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return client, nil
}
