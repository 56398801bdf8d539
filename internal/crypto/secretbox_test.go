package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassphrase = "correct-horse-battery-staple-32b!"

func newTestBox(t *testing.T) SecretCipher {
	t.Helper()
	box, err := NewSecretBox(testPassphrase)
	require.NoError(t, err)
	return box
}

func TestNewSecretBox_PassphraseTooShort(t *testing.T) {
	_, err := NewSecretBox("short")
	assert.ErrorIs(t, err, ErrPassphraseTooShort)
}

func TestNewSecretBox_KeyLengthSelection(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
	}{
		{"aes-128 from 16-char passphrase", strings.Repeat("a", 16)},
		{"aes-192 from 24-char passphrase", strings.Repeat("b", 24)},
		{"aes-256 from 32-char passphrase", strings.Repeat("c", 32)},
		{"aes-256 from longer passphrase", strings.Repeat("d", 48)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := NewSecretBox(tt.passphrase)
			require.NoError(t, err)
			require.NotNil(t, box)
		})
	}
}

func TestSecretBox_RoundTrip(t *testing.T) {
	box := newTestBox(t)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"plain secret", "super-secret-jwt-signing-key"},
		{"empty string", ""},
		{"unicode", "секретное значение 🔑"},
		{"long value", strings.Repeat("x", 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := box.Encrypt(tt.plaintext)
			require.NoError(t, err)

			opened, err := box.Decrypt(sealed)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, opened)
		})
	}
}

func TestSecretBox_EncryptIsNonDeterministic(t *testing.T) {
	box := newTestBox(t)

	first, err := box.Encrypt("same input")
	require.NoError(t, err)
	second, err := box.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two encryptions of the same value must differ")
}

func TestSecretBox_DecryptRejectsTamperedBlob(t *testing.T) {
	box := newTestBox(t)

	sealed, err := box.Encrypt("value under test")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	// flip one bit inside the ciphertext portion
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = box.Decrypt(tampered)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestSecretBox_DecryptRejectsMalformedInput(t *testing.T) {
	box := newTestBox(t)

	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"shorter than nonce", base64.StdEncoding.EncodeToString([]byte("tiny"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := box.Decrypt(tt.encoded)
			assert.ErrorIs(t, err, ErrDecryptionFailed)
		})
	}
}

func TestSecretBox_DecryptWithDifferentPassphraseFails(t *testing.T) {
	box := newTestBox(t)

	sealed, err := box.Encrypt("cross-key value")
	require.NoError(t, err)

	otherBox, err := NewSecretBox("another-passphrase-of-32-chars!!")
	require.NoError(t, err)

	_, err = otherBox.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
