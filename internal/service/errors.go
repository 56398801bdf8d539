package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers a wrong password and an unknown username
	// alike, so that login responses do not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordExpired is returned when the credentials are correct but the
	// password has passed its expiration date and must be changed first.
	ErrPasswordExpired = errors.New("password is expired")

	// ErrAccountInactive is returned when the account exists but has been
	// deactivated.
	ErrAccountInactive = errors.New("account is inactive")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrResetTokenInvalid is returned when no in-flight reset handshake
	// matches the presented token.
	ErrResetTokenInvalid = errors.New("reset token is invalid")

	// ErrResetTokenExpired is returned when the presented reset token exists
	// but its validity window has closed. The token stays attached to the
	// account; only a new handshake replaces it.
	ErrResetTokenExpired = errors.New("reset token is expired")
)
