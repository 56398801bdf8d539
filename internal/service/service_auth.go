package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/survey-auth/internal/config"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/store"
	"github.com/MKhiriev/survey-auth/internal/utils"
	"github.com/MKhiriev/survey-auth/internal/validators"
	"github.com/MKhiriev/survey-auth/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the JWT token
// pair lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// policy validates every candidate password before it is accepted.
	policy *validators.PasswordPolicy

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// Loaded from the encrypted system configuration row at startup, never
	// from plain application config.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessTokenTTL and refreshTokenTTL control the lifetimes of the two
	// halves of an issued token pair.
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	// passwordValidity is how long a freshly set password stays usable.
	passwordValidity time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and populated with lifecycle parameters from cfg.
//
// tokenSignKey is passed separately because it is resolved from the encrypted
// system configuration store at startup rather than from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, tokenSignKey string, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:   userRepository,
		policy:           validators.NewPasswordPolicy(),
		tokenSignKey:     tokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		passwordValidity: time.Duration(cfg.PasswordValidityDays) * 24 * time.Hour,
		logger:           logger,
	}
}

// Register creates a new active user account.
//
// The candidate password must satisfy the password policy; all violations are
// reported together in a single *validators.PolicyViolationError. The stored
// hash is bcrypt, and the password expiration date is set to now plus the
// configured validity window.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if username, email, or password is empty.
//   - *validators.PolicyViolationError if the password breaks the policy.
//   - A wrapped storage error if the repository call fails (e.g. username or
//     email already taken — see store.ErrUserAlreadyExists).
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Email == "" || request.Password == "" {
		log.Error().Str("username", request.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if err := a.policy.Validate(request.Password); err != nil {
		log.Error().Str("username", request.Username).Msg("password policy violated during registration")
		return models.User{}, err
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	authorities := []models.Authority{models.RoleUser}
	if len(request.Roles) > 0 {
		authorities = authorities[:0]
		for _, raw := range request.Roles {
			authorities = append(authorities, models.ParseRole(raw))
		}
	}

	user := models.User{
		Username:               request.Username,
		Email:                  request.Email,
		PasswordHash:           hash,
		Authorities:            authorities,
		Active:                 true,
		PasswordExpirationDate: time.Now().Add(a.passwordValidity),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates a user by username and password and issues a token pair.
//
// Failure modes, in check order:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrInvalidCredentials if the user is unknown or the password is wrong.
//     The two cases are deliberately indistinguishable to the caller.
//   - ErrAccountInactive if the account has been deactivated.
//   - ErrPasswordExpired if the password matched but has passed its
//     expiration date. No tokens are issued until it is changed.
func (a *authService) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.TokenPair{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	if err := utils.VerifyPassword(foundUser.PasswordHash, password); err != nil {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	if !foundUser.Active {
		log.Error().Str("username", foundUser.Username).Msg("inactive account attempted login")
		return models.TokenPair{}, ErrAccountInactive
	}

	if foundUser.PasswordExpired(time.Now()) {
		log.Error().
			Str("username", foundUser.Username).
			Time("expired_on", foundUser.PasswordExpirationDate).
			Msg("login rejected: password expired")
		return models.TokenPair{}, ErrPasswordExpired
	}

	return a.CreateTokenPair(ctx, foundUser)
}

// CreateTokenPair issues a signed access/refresh token pair for the given user.
//
// The access token embeds the user's authority set in the "roles" claim; the
// refresh token carries identity only. Both are signed with the configured
// tokenSignKey and carry the configured tokenIssuer as the "iss" claim.
//
// Returns the pair on success or ErrTokenCreationFailed (wrapped) if either
// token cannot be generated.
func (a *authService) CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := utils.GenerateAccessToken(a.tokenIssuer, user.Username, user.Authorities, a.accessTokenTTL, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateRefreshToken(a.tokenIssuer, user.Username, a.refreshTokenTTL, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.NewTokenPair(access.SignedString, refresh.SignedString), nil
}

// RefreshTokens exchanges a live refresh token for a brand-new token pair.
//
// The authority set is re-derived from the user store rather than copied from
// the old token, so authority changes made after issuance take effect on the
// next refresh. The account must still exist and be active.
//
// Returns ErrTokenIsExpiredOrInvalid when the presented token fails
// validation or its subject no longer resolves to a usable account.
func (a *authService) RefreshTokens(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, token.Username())
	if err != nil {
		log.Err(err).Str("username", token.Username()).Msg("refresh rejected: subject lookup failed")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	if !foundUser.Active {
		log.Error().Str("username", foundUser.Username).Msg("refresh rejected: account inactive")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	return a.CreateTokenPair(ctx, foundUser)
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the expiry, and the issuer claim. Any validation failure (expired, wrong
// issuer, malformed, wrong algorithm) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ChangePassword replaces a user's password after verifying the current one.
//
// The old password must match the stored hash (ErrInvalidCredentials
// otherwise) and the new one must satisfy the password policy. On success the
// stored hash is replaced and the expiration date advances by the configured
// validity window.
func (a *authService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if username == "" || oldPassword == "" || newPassword == "" {
		log.Error().Str("username", username).Msg("invalid change-password data provided")
		return ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return ErrInvalidCredentials
	}

	if err := utils.VerifyPassword(foundUser.PasswordHash, oldPassword); err != nil {
		log.Error().Str("username", username).Msg("change-password rejected: wrong current password")
		return ErrInvalidCredentials
	}

	if err := a.policy.Validate(newPassword); err != nil {
		return err
	}

	return a.overwritePassword(ctx, foundUser.UserID, newPassword)
}

// AdminResetPassword overwrites a user's password without old-password
// verification. The new password must still satisfy the password policy.
// Any pending reset handshake on the account is invalidated.
func (a *authService) AdminResetPassword(ctx context.Context, username, newPassword string) error {
	log := logger.FromContext(ctx)

	if username == "" || newPassword == "" {
		log.Error().Str("username", username).Msg("invalid admin reset data provided")
		return ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return fmt.Errorf("user search by username failed: %w", err)
	}

	if err := a.policy.Validate(newPassword); err != nil {
		return err
	}

	return a.overwritePassword(ctx, foundUser.UserID, newPassword)
}

// overwritePassword hashes the accepted password and persists it together
// with the advanced expiration date, dropping any pending reset token.
func (a *authService) overwritePassword(ctx context.Context, userID int64, newPassword string) error {
	log := logger.FromContext(ctx)

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	expiration := time.Now().Add(a.passwordValidity)
	err = a.userRepository.UpdateCredentials(ctx, models.UserCredentialsUpdate{
		UserID:                 userID,
		PasswordHash:           &hash,
		PasswordExpirationDate: &expiration,
		ClearResetToken:        true,
	})
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("credential update failed")
		return fmt.Errorf("credential update failed: %w", err)
	}

	return nil
}
