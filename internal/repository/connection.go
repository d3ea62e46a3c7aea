package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB dials the cart database and verifies it is reachable before
// anything gets wired on top of it. Pool bounds come from configuration.
func ConnectMongoDB(ctx context.Context, uri, database string, maxPool, minPool uint64) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(maxPool).
		SetMinPoolSize(minPool)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to cart database: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping cart database: %w", err)
	}

	return client.Database(database), nil
}
