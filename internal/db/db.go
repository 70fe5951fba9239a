package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mithrel/pressgen/pkg/api"
)

// Store persists generated releases.
type Store interface {
	Put(ctx context.Context, r api.Record) error
	Get(ctx context.Context, id string) (api.Record, error)
	// List returns records newest first.
	List(ctx context.Context, q api.ListQuery) ([]api.Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Open returns a Store for dsn: "sqlite://<path>" or "mem://".
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		s, err := openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
		if err != nil {
			return nil, err
		}
		return s, nil
	case dsn == "mem://" || dsn == "mem":
		return newMemStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store dsn %q", dsn)
	}
}

const defaultListLimit = 50
