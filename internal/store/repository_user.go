package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, credential lookups, and credential mutations
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username,
		user.Email,
		user.PasswordHash,
		joinAuthorities(user.Authorities),
		user.Active,
		user.PasswordExpirationDate,
	)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: user creation failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByUsername retrieves the user record whose username matches exactly.
//
// Error handling:
//   - Empty result set → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, findUserByUsername, username)
}

// FindUserByEmail retrieves the user record whose email matches exactly.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email)
}

// FindUserByResetToken retrieves the user record carrying the given
// password-reset token. Expiry is not checked here; that is the service
// layer's decision.
func (r *userRepository) FindUserByResetToken(ctx context.Context, token string) (models.User, error) {
	return r.findOne(ctx, findUserByResetToken, token)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateCredentials applies a partial credential mutation built by
// [buildCredentialsUpdateQuery]. An update matching zero rows means the
// target user vanished and is reported as [ErrNoUserWasFound].
func (r *userRepository) UpdateCredentials(ctx context.Context, update models.UserCredentialsUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCredentialsUpdateQuery(update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateCredentials").Msg("error: building update query failed")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateCredentials").Msg("error: executing update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// FindUsersWithPasswordExpiringOn returns every active account whose
// password expires exactly on the given calendar day.
func (r *userRepository) FindUsersWithPasswordExpiringOn(ctx context.Context, day time.Time) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findUsersWithPasswordExpiringOn, day)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUsersWithPasswordExpiringOn").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.FindUsersWithPasswordExpiringOn").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared user scan.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var authorities string
	var passwordExpiration sql.NullTime
	var resetToken sql.NullString
	var resetTokenExpiry sql.NullTime

	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&authorities,
		&user.Active,
		&passwordExpiration,
		&resetToken,
		&resetTokenExpiry,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Authorities = splitAuthorities(authorities)
	if passwordExpiration.Valid {
		user.PasswordExpirationDate = passwordExpiration.Time
	}
	if resetToken.Valid {
		user.ResetPasswordToken = resetToken.String
	}
	if resetTokenExpiry.Valid {
		user.ResetPasswordTokenExpiry = resetTokenExpiry.Time
	}

	return user, nil
}

// joinAuthorities serialises the authority set into the comma-joined text
// column representation.
func joinAuthorities(authorities []models.Authority) string {
	return strings.Join(models.AuthoritiesToStrings(authorities), ",")
}

func splitAuthorities(column string) []models.Authority {
	if column == "" {
		return nil
	}
	return models.AuthoritiesFromStrings(strings.Split(column, ","))
}
