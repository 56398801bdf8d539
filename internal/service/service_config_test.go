package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/survey-auth/internal/crypto"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/mock"
	"github.com/MKhiriev/survey-auth/internal/store"
	"github.com/MKhiriev/survey-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func newTestConfigService(t *testing.T) (ConfigService, *mock.MockSystemConfigRepository, crypto.SecretCipher) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSystemConfigRepository(ctrl)
	cipher, err := crypto.NewSecretBox("test-passphrase-16b!")
	require.NoError(t, err)
	return NewConfigService(repo, cipher, logger.Nop()), repo, cipher
}

func TestGetConfigValue_Plaintext(t *testing.T) {
	svc, repo, _ := newTestConfigService(t)

	repo.EXPECT().
		FindByKey(gomock.Any(), "app.feature.flag").
		Return(models.SystemConfig{ConfigKey: "app.feature.flag", ConfigValue: "on"}, nil)

	value, err := svc.GetConfigValue(context.Background(), "app.feature.flag")
	require.NoError(t, err)
	assert.Equal(t, "on", value)
}

func TestGetConfigValue_EncryptedRowIsDecrypted(t *testing.T) {
	svc, repo, cipher := newTestConfigService(t)

	sealed, err := cipher.Encrypt("the-plain-secret")
	require.NoError(t, err)

	repo.EXPECT().
		FindByKey(gomock.Any(), models.ConfigKeyJWTSecret).
		Return(models.SystemConfig{
			ConfigKey:   models.ConfigKeyJWTSecret,
			ConfigValue: sealed,
			Encrypted:   true,
		}, nil)

	value, err := svc.GetConfigValue(context.Background(), models.ConfigKeyJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "the-plain-secret", value)
}

func TestGetConfigValue_TamperedCiphertext(t *testing.T) {
	svc, repo, _ := newTestConfigService(t)

	repo.EXPECT().
		FindByKey(gomock.Any(), models.ConfigKeyJWTSecret).
		Return(models.SystemConfig{
			ConfigKey:   models.ConfigKeyJWTSecret,
			ConfigValue: "bm90IGEgdmFsaWQgYmxvYg==",
			Encrypted:   true,
		}, nil)

	_, err := svc.GetConfigValue(context.Background(), models.ConfigKeyJWTSecret)
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestGetRequiredConfigValue_Missing(t *testing.T) {
	svc, repo, _ := newTestConfigService(t)

	repo.EXPECT().
		FindByKey(gomock.Any(), "absent.key").
		Return(models.SystemConfig{}, store.ErrConfigNotFound)

	_, err := svc.GetRequiredConfigValue(context.Background(), "absent.key")
	assert.ErrorIs(t, err, store.ErrConfigNotFound)
}

func TestSaveConfig_EncryptsBeforeStorage(t *testing.T) {
	svc, repo, cipher := newTestConfigService(t)

	var stored models.SystemConfig
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg models.SystemConfig) (models.SystemConfig, error) {
			stored = cfg
			cfg.ID = 1
			return cfg, nil
		})

	_, err := svc.SaveConfig(context.Background(), "app.api.key", "sensitive-value", true)
	require.NoError(t, err)

	assert.True(t, stored.Encrypted)
	assert.NotEqual(t, "sensitive-value", stored.ConfigValue, "sensitive values must never reach the table in plaintext")

	roundTripped, err := cipher.Decrypt(stored.ConfigValue)
	require.NoError(t, err)
	assert.Equal(t, "sensitive-value", roundTripped)
}

func TestEnsureSigningSecret_GeneratedOnFirstRun(t *testing.T) {
	svc, repo, cipher := newTestConfigService(t)

	repo.EXPECT().
		FindByKey(gomock.Any(), models.ConfigKeyJWTSecret).
		Return(models.SystemConfig{}, store.ErrConfigNotFound)

	var stored models.SystemConfig
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg models.SystemConfig) (models.SystemConfig, error) {
			stored = cfg
			return cfg, nil
		})

	secret, err := svc.EnsureSigningSecret(context.Background())
	require.NoError(t, err)
	assert.Len(t, secret, 64, "expected a hex-encoded 256-bit secret")

	assert.Equal(t, models.ConfigKeyJWTSecret, stored.ConfigKey)
	assert.True(t, stored.Encrypted)

	roundTripped, err := cipher.Decrypt(stored.ConfigValue)
	require.NoError(t, err)
	assert.Equal(t, secret, roundTripped)
}

func TestEnsureSigningSecret_ExistingRowWins(t *testing.T) {
	svc, repo, cipher := newTestConfigService(t)

	sealed, err := cipher.Encrypt("previously-generated")
	require.NoError(t, err)

	repo.EXPECT().
		FindByKey(gomock.Any(), models.ConfigKeyJWTSecret).
		Return(models.SystemConfig{
			ConfigKey:   models.ConfigKeyJWTSecret,
			ConfigValue: sealed,
			Encrypted:   true,
		}, nil)

	secret, err := svc.EnsureSigningSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "previously-generated", secret)
}
