// Package store provides the key-value storage port that holds tracker state,
// with file, SQLite, Redis, PostgreSQL and in-memory back ends.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/savings-orbit/pkg/constants"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a minimal key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a back end.
type Options struct {
	Driver string
	// Path is the directory for the file driver and the database file for sqlite.
	Path string
	// URL is the connection string for redis and postgres.
	URL string
}

// Open returns the store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", constants.StorageDriverFile:
		s, err := OpenFile(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.StorageDriverSQLite:
		s, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.StorageDriverRedis:
		s, err := OpenRedis(ctx, opts.URL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.StorageDriverPostgres:
		s, err := OpenPostgres(ctx, opts.URL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.StorageDriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", opts.Driver)
	}
}
