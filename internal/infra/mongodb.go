package infra

import (
	"context"
	"fmt"

	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongodb connects to mongo and prepares indexes of configured database
func Mongodb(ctx context.Context, cfg config.MongoCfg) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetAppName("crm").
		SetMaxPoolSize(uint64(cfg.MaxPoolSize))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to establish connection to mongo - %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("didn't get response from mongo after sending ping request - %w", err)
	}

	if err := repository.EnsureMongoIndexes(ctx, client.Database(cfg.Database)); err != nil {
		return nil, err
	}
	return client, nil
}
