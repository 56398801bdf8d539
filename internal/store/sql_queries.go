package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/survey-auth/models"
)

const userColumns = `user_id, username, email, password_hash, authorities, active,
    password_expiration_date, reset_password_token, reset_password_token_expiry, created_at`

const (
	createUser = `INSERT INTO users (username, email, password_hash, authorities, active, password_expiration_date)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + userColumns + `;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByResetToken = `SELECT ` + userColumns + `
    FROM users
    WHERE reset_password_token = $1;`

	findUsersWithPasswordExpiringOn = `SELECT ` + userColumns + `
    FROM users
    WHERE active AND password_expiration_date::date = $1::date;`

	findConfigByKey = `SELECT id, config_key, config_value, encrypted
    FROM system_config
    WHERE config_key = $1;`

	upsertConfig = `INSERT INTO system_config (config_key, config_value, encrypted)
    VALUES ($1, $2, $3)
    ON CONFLICT (config_key)
    DO UPDATE SET config_value = EXCLUDED.config_value, encrypted = EXCLUDED.encrypted
    RETURNING id, config_key, config_value, encrypted;`
)

// buildCredentialsUpdateQuery dynamically builds the UPDATE statement for a
// partial credential mutation. Only columns named by the descriptor are
// touched; ClearResetToken nulls both reset columns in the same statement.
func buildCredentialsUpdateQuery(update models.UserCredentialsUpdate) (string, []any, error) {
	if update.Empty() {
		return "", nil, fmt.Errorf("%w: no credential fields to update", ErrBuildingSQLQuery)
	}

	builder := sq.Update("users").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"user_id": update.UserID})

	if update.PasswordHash != nil {
		builder = builder.Set("password_hash", *update.PasswordHash)
	}
	if update.PasswordExpirationDate != nil {
		builder = builder.Set("password_expiration_date", *update.PasswordExpirationDate)
	}
	if update.ClearResetToken {
		builder = builder.
			Set("reset_password_token", nil).
			Set("reset_password_token_expiry", nil)
	} else {
		if update.ResetPasswordToken != nil {
			builder = builder.Set("reset_password_token", *update.ResetPasswordToken)
		}
		if update.ResetPasswordTokenExpiry != nil {
			builder = builder.Set("reset_password_token_expiry", *update.ResetPasswordTokenExpiry)
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
