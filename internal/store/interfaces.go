package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/survey-auth/models"
)

// UserRepository is the persistence boundary for user accounts and their
// credential fields. The authentication core consumes it as a lookup by
// username/email/reset-token plus a save operation; transactional discipline
// is the repository's concern.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByResetToken(ctx context.Context, token string) (models.User, error)

	// UpdateCredentials applies a partial credential mutation built by the
	// service layer. Returns ErrNoUserWasFound when the target row is absent.
	UpdateCredentials(ctx context.Context, update models.UserCredentialsUpdate) error

	// FindUsersWithPasswordExpiringOn returns active accounts whose password
	// expires exactly on the given calendar day. Used by the expiration
	// notifier worker.
	FindUsersWithPasswordExpiringOn(ctx context.Context, day time.Time) ([]models.User, error)
}

// SystemConfigRepository is the persistence boundary for the general
// key/value configuration table, including the encrypted token-signing
// secret.
type SystemConfigRepository interface {
	FindByKey(ctx context.Context, key string) (models.SystemConfig, error)

	// Save upserts the row for config.ConfigKey (one row per key invariant).
	Save(ctx context.Context, config models.SystemConfig) (models.SystemConfig, error)
}
