// Package db selects the store driver configured for the process.
package db

import (
	"context"
	"fmt"

	"github.com/zhouzirui/medjourney/backend/internal/config"
	"github.com/zhouzirui/medjourney/backend/internal/store"
	"github.com/zhouzirui/medjourney/backend/internal/store/db/postgres"
	"github.com/zhouzirui/medjourney/backend/internal/store/db/sqlite"
)

// NewDriver opens the configured engine and ensures its schema exists.
func NewDriver(ctx context.Context, cfg config.StorageConfig) (store.Driver, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(ctx, cfg.Path, cfg.BusyTimeout)
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// Open is a convenience that wraps the configured driver in a Store.
func Open(ctx context.Context, cfg config.StorageConfig, opts ...store.Option) (*store.Store, error) {
	driver, err := NewDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return store.New(driver, opts...), nil
}
