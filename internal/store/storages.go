package store

import (
	"context"

	"github.com/MKhiriev/survey-auth/internal/config"
	"github.com/MKhiriev/survey-auth/internal/logger"
)

// Storages aggregates every repository backed by the shared database
// connection. Constructed once at startup and injected into the service
// layer.
type Storages struct {
	UserRepository         UserRepository
	SystemConfigRepository SystemConfigRepository

	db *DB
}

// NewStorages opens the PostgreSQL connection described by cfg and wires all
// repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		SystemConfigRepository: NewSystemConfigRepository(db, logger),
		db:                     db,
	}, nil
}

// DB exposes the underlying connection for migrations at startup.
func (s *Storages) DB() *DB {
	return s.db
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
