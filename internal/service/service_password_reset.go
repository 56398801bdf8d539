package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/survey-auth/internal/config"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/store"
	"github.com/MKhiriev/survey-auth/internal/utils"
	"github.com/MKhiriev/survey-auth/internal/validators"
	"github.com/MKhiriev/survey-auth/models"
)

// passwordResetService is the concrete implementation of PasswordResetService.
// It drives the two-step forgotten-password handshake: an opaque single-use
// token is attached to the account and mailed out, then exchanged within its
// validity window for a new password.
type passwordResetService struct {
	userRepository store.UserRepository
	emailSender    EmailSender
	tokens         *utils.UUIDGenerator
	policy         *validators.PasswordPolicy

	// resetTokenTTL is the validity window of an issued reset token.
	resetTokenTTL time.Duration

	// passwordValidity is how long a password accepted through the handshake
	// stays usable.
	passwordValidity time.Duration

	logger *logger.Logger
}

// NewPasswordResetService constructs a PasswordResetService wired to the
// given repository and mail sender, with lifecycle windows taken from cfg.
func NewPasswordResetService(userRepository store.UserRepository, emailSender EmailSender, cfg config.App, logger *logger.Logger) PasswordResetService {
	return &passwordResetService{
		userRepository:   userRepository,
		emailSender:      emailSender,
		tokens:           utils.NewUUIDGenerator(),
		policy:           validators.NewPasswordPolicy(),
		resetTokenTTL:    cfg.ResetTokenTTL,
		passwordValidity: time.Duration(cfg.PasswordValidityDays) * 24 * time.Hour,
		logger:           logger,
	}
}

// InitiateReset starts the handshake for the account registered under email.
//
// A fresh opaque token is attached to the account, replacing any previous
// one, and mailed to the address. An unknown email returns nil all the same:
// the response must not reveal whether an account exists. A repeated call
// before the previous token expires simply issues a new token; only the
// latest one is live.
func (p *passwordResetService) InitiateReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	foundUser, err := p.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Msg("reset requested for unknown email, replying as if sent")
			return nil
		}
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	token := p.tokens.Generate()
	expiry := time.Now().Add(p.resetTokenTTL)

	err = p.userRepository.UpdateCredentials(ctx, models.UserCredentialsUpdate{
		UserID:                   foundUser.UserID,
		ResetPasswordToken:       &token,
		ResetPasswordTokenExpiry: &expiry,
	})
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("attaching reset token failed")
		return fmt.Errorf("attaching reset token failed: %w", err)
	}

	if err := p.emailSender.SendPasswordResetEmail(ctx, foundUser.Email, token); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("sending reset email failed")
		return fmt.Errorf("sending reset email failed: %w", err)
	}

	log.Info().Int64("id", foundUser.UserID).Time("expires", expiry).Msg("password reset initiated")
	return nil
}

// CompleteReset exchanges a live reset token for a new password.
//
// Failure modes, in check order:
//   - ErrResetTokenInvalid when no account carries the presented token.
//   - ErrResetTokenExpired when the token's validity window has closed.
//     The token is left in place; it stays unusable either way.
//   - *validators.PolicyViolationError when the new password breaks the
//     policy. The token survives the failed attempt and may be retried.
//
// On success the password hash is replaced, the expiration date advances by
// the configured validity window, and the token is cleared so it can never
// be replayed.
func (p *passwordResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	foundUser, err := p.userRepository.FindUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrResetTokenInvalid
		}
		log.Err(err).Msg("user search by reset token failed")
		return fmt.Errorf("user search by reset token failed: %w", err)
	}

	if time.Now().After(foundUser.ResetPasswordTokenExpiry) {
		log.Error().Int64("id", foundUser.UserID).Msg("reset rejected: token expired")
		return ErrResetTokenExpired
	}

	if err := p.policy.Validate(newPassword); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	expiration := time.Now().Add(p.passwordValidity)
	err = p.userRepository.UpdateCredentials(ctx, models.UserCredentialsUpdate{
		UserID:                 foundUser.UserID,
		PasswordHash:           &hash,
		PasswordExpirationDate: &expiration,
		ClearResetToken:        true,
	})
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("credential update failed")
		return fmt.Errorf("credential update failed: %w", err)
	}

	log.Info().Int64("id", foundUser.UserID).Msg("password reset completed")
	return nil
}
