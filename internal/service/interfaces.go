package service

import (
	"context"
	"time"

	"github.com/MKhiriev/survey-auth/models"
)

// AuthService owns credential verification and the JWT token lifecycle:
// registration, login, token pair issuance, refresh, validation, and
// authenticated password changes.
type AuthService interface {
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, username, password string) (models.TokenPair, error)
	CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (models.TokenPair, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// ChangePassword verifies the current password before accepting the new
	// one. The new password must satisfy the password policy.
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error

	// AdminResetPassword overwrites a user's password without knowledge of
	// the current one. Restricted to administrative callers at the transport
	// layer.
	AdminResetPassword(ctx context.Context, username, newPassword string) error
}

// ConfigService reads and writes rows of the general key/value configuration
// table, transparently decrypting values flagged as encrypted at rest.
type ConfigService interface {
	GetConfigValue(ctx context.Context, key string) (string, error)
	GetRequiredConfigValue(ctx context.Context, key string) (string, error)
	SaveConfig(ctx context.Context, key, value string, encrypted bool) (models.SystemConfig, error)

	// EnsureSigningSecret returns the plaintext token-signing secret,
	// generating and persisting a fresh one (encrypted) when none exists yet.
	EnsureSigningSecret(ctx context.Context) (string, error)
}

// PasswordResetService drives the two-step forgotten-password handshake:
// initiation issues an opaque single-use token and mails it out, completion
// exchanges a live token for a new password.
type PasswordResetService interface {
	InitiateReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, token, newPassword string) error
}

// EmailSender delivers outbound notification mail. Implemented by the SMTP
// adapter; faked in tests.
type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, recipient, token string) error
	SendPasswordExpirationNotice(ctx context.Context, recipient string, expiresOn time.Time) error
}
