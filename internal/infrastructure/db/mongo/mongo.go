package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "order-portal"
)

// Config names the deployment and database the session record is kept in.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Conn is an open MongoDB client bound to one database.
type Conn struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials the deployment and pings the primary before returning.
// Timeout bounds both, defaulting to ten seconds.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo: database name is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Conn{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Close disconnects the client.
func (c *Conn) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
