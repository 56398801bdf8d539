package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/models"
)

// systemConfigRepository is the PostgreSQL-backed implementation of
// [SystemConfigRepository]. It manages the general key/value configuration
// table holding, among other things, the encrypted token-signing secret.
type systemConfigRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSystemConfigRepository constructs a [SystemConfigRepository] backed by
// the provided database connection and logger.
func NewSystemConfigRepository(db *DB, logger *logger.Logger) SystemConfigRepository {
	logger.Debug().Msg("creating system config repository")
	return &systemConfigRepository{
		db:     db,
		logger: logger,
	}
}

// FindByKey retrieves the configuration row for the given key.
//
// Error handling:
//   - Empty result set → [ErrConfigNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *systemConfigRepository) FindByKey(ctx context.Context, key string) (models.SystemConfig, error) {
	log := logger.FromContext(ctx)

	var config models.SystemConfig
	row := r.db.QueryRowContext(ctx, findConfigByKey, key)

	if err := row.Scan(&config.ID, &config.ConfigKey, &config.ConfigValue, &config.Encrypted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SystemConfig{}, ErrConfigNotFound
		}
		log.Err(err).Str("func", "*systemConfigRepository.FindByKey").Msg("error: config lookup failed")
		return models.SystemConfig{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return config, nil
}

// Save upserts the configuration row keyed on config.ConfigKey and returns
// the persisted representation. The ON CONFLICT clause keeps the operation
// idempotent: one row per key, updated in place.
func (r *systemConfigRepository) Save(ctx context.Context, config models.SystemConfig) (models.SystemConfig, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertConfig, config.ConfigKey, config.ConfigValue, config.Encrypted)

	var saved models.SystemConfig
	if err := row.Scan(&saved.ID, &saved.ConfigKey, &saved.ConfigValue, &saved.Encrypted); err != nil {
		log.Err(err).Str("func", "*systemConfigRepository.Save").Msg("error: config upsert failed")
		return models.SystemConfig{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}
