package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/MKhiriev/survey-auth/internal/crypto"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/store"
	"github.com/MKhiriev/survey-auth/models"
)

// configService is the concrete implementation of ConfigService.
// It reads and writes the system_config table through a
// SystemConfigRepository and applies at-rest encryption to values flagged as
// sensitive using a SecretCipher.
type configService struct {
	configRepository store.SystemConfigRepository
	cipher           crypto.SecretCipher
	logger           *logger.Logger
}

// NewConfigService constructs a ConfigService over the given repository and
// cipher. The cipher must already have passed its construction self-test.
func NewConfigService(configRepository store.SystemConfigRepository, cipher crypto.SecretCipher, logger *logger.Logger) ConfigService {
	return &configService{
		configRepository: configRepository,
		cipher:           cipher,
		logger:           logger,
	}
}

// GetConfigValue returns the plaintext value for the given key.
//
// Rows flagged as encrypted are decrypted transparently; callers never see
// ciphertext. Returns store.ErrConfigNotFound when the key is absent, or a
// wrapped decryption error when the stored ciphertext cannot be opened (a
// sign of ciphertext tampering or a wrong encryption passphrase).
func (c *configService) GetConfigValue(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	row, err := c.configRepository.FindByKey(ctx, key)
	if err != nil {
		return "", err
	}

	if !row.Encrypted {
		return row.ConfigValue, nil
	}

	plaintext, err := c.cipher.Decrypt(row.ConfigValue)
	if err != nil {
		log.Err(err).Str("key", key).Msg("stored config value failed to decrypt")
		return "", fmt.Errorf("decrypting config value for key %q: %w", key, err)
	}

	return plaintext, nil
}

// GetRequiredConfigValue behaves like GetConfigValue but treats an absent or
// empty value as an error. Used for keys the application cannot run without.
func (c *configService) GetRequiredConfigValue(ctx context.Context, key string) (string, error) {
	value, err := c.GetConfigValue(ctx, key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("required config key %q has empty value", key)
	}
	return value, nil
}

// SaveConfig upserts a configuration row. When encrypted is true the value is
// sealed with the cipher before storage and the row is flagged accordingly.
func (c *configService) SaveConfig(ctx context.Context, key, value string, encrypted bool) (models.SystemConfig, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		return models.SystemConfig{}, ErrInvalidDataProvided
	}

	stored := value
	if encrypted {
		sealed, err := c.cipher.Encrypt(value)
		if err != nil {
			log.Err(err).Str("key", key).Msg("encrypting config value failed")
			return models.SystemConfig{}, fmt.Errorf("encrypting config value for key %q: %w", key, err)
		}
		stored = sealed
	}

	saved, err := c.configRepository.Save(ctx, models.SystemConfig{
		ConfigKey:   key,
		ConfigValue: stored,
		Encrypted:   encrypted,
	})
	if err != nil {
		log.Err(err).Str("key", key).Msg("saving config value failed")
		return models.SystemConfig{}, fmt.Errorf("saving config value for key %q: %w", key, err)
	}

	return saved, nil
}

// EnsureSigningSecret returns the plaintext JWT signing secret, creating one
// on first run.
//
// When no row exists for the signing-secret key, a fresh 256-bit random
// secret is generated, stored encrypted, and returned. An existing row is
// decrypted and returned as is, so every instance sharing the database signs
// and verifies with the same key.
func (c *configService) EnsureSigningSecret(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	secret, err := c.GetConfigValue(ctx, models.ConfigKeyJWTSecret)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, store.ErrConfigNotFound) {
		return "", err
	}

	generated, err := generateSigningSecret()
	if err != nil {
		return "", fmt.Errorf("generating signing secret: %w", err)
	}

	if _, err := c.SaveConfig(ctx, models.ConfigKeyJWTSecret, generated, true); err != nil {
		return "", err
	}

	log.Info().Str("key", models.ConfigKeyJWTSecret).Msg("generated and stored new token signing secret")
	return generated, nil
}

func generateSigningSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
