// Package storage persists users and financial records. The file backend
// mirrors two flat JSON files; the postgres backend keeps the same
// interface over two tables.
package storage

import (
	"context"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/entity/user"
)

const (
	FileBackend     = "file"
	PostgresBackend = "postgres"
)

// Storage is the full backend surface shared by both implementations.
type Storage interface {
	GetUser(ctx context.Context, username string) (user.User, bool, error)
	SaveUser(ctx context.Context, u user.User) error
	GetRecords(ctx context.Context, username string) ([]record.FinancialRecord, error)
	SaveRecords(ctx context.Context, username string, recs []record.FinancialRecord) error
}

// New picks the backend by name.
func New(backend string, fileCfg fileConfig, pgCfg pgConfig) (Storage, error) {
	switch backend {
	case FileBackend:
		return NewFileStorage(fileCfg), nil
	case PostgresBackend:
		return NewPostgresStorage(pgCfg)
	default:
		return nil, errors.Errorf("unknown storage backend %q", backend)
	}
}
