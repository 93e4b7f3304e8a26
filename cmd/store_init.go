package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/listings-api/internal/listing"
	"github.com/sells-group/listings-api/internal/source"
	"github.com/sells-group/listings-api/internal/store"
	"github.com/sells-group/listings-api/pkg/attom"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "listings.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.Pool.MaxConns,
			MinConns: cfg.Store.Pool.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initService wires the merge pipeline: store-backed internal source,
// provider-backed external source.
func initService(st store.Store) *listing.Service {
	client := attom.New(attom.Options{
		BaseURL: cfg.Attom.BaseURL,
		APIKey:  cfg.Attom.Key,
		Timeout: time.Duration(cfg.Attom.TimeoutSecs) * time.Second,
		RPS:     cfg.Attom.RPS,
	})
	return listing.NewService(source.NewStoreSource(st), source.NewAttomSource(client))
}
