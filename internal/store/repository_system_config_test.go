package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/models"
)

func newTestConfigRepo(t *testing.T) (*systemConfigRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &systemConfigRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestFindByKey_Found(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "config_key", "config_value", "encrypted"}).
		AddRow(int64(1), models.ConfigKeyJWTSecret, "ciphertext", true)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, config_key, config_value, encrypted")).
		WithArgs(models.ConfigKeyJWTSecret).
		WillReturnRows(rows)

	got, err := repo.FindByKey(context.Background(), models.ConfigKeyJWTSecret)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.ConfigValue != "ciphertext" || !got.Encrypted {
		t.Errorf("unexpected config row: %+v", got)
	}
}

func TestFindByKey_NotFound(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, config_key, config_value, encrypted")).
		WithArgs("missing.key").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByKey(context.Background(), "missing.key")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got: %v", err)
	}
}

func TestSaveConfig_Upsert(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "config_key", "config_value", "encrypted"}).
		AddRow(int64(3), "app.feature.flag", "on", false)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO system_config")).
		WithArgs("app.feature.flag", "on", false).
		WillReturnRows(rows)

	saved, err := repo.Save(context.Background(), models.SystemConfig{
		ConfigKey:   "app.feature.flag",
		ConfigValue: "on",
		Encrypted:   false,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if saved.ID != 3 {
		t.Errorf("expected persisted ID 3, got %d", saved.ID)
	}
}
