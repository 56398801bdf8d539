// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors returned by the secret cipher. Callers should match them
// with [errors.Is]; any decryption failure must be treated as fatal to the
// dependent operation.
var (
	// ErrPassphraseTooShort is returned by NewSecretBox when the passphrase
	// cannot back even an AES-128 key.
	ErrPassphraseTooShort = errors.New("encryption passphrase must be at least 16 characters long")

	// ErrEncryptionFailed wraps any failure while sealing a value.
	ErrEncryptionFailed = errors.New("error encrypting data")

	// ErrDecryptionFailed wraps any failure while opening a value, including
	// authentication-tag mismatch and malformed input.
	ErrDecryptionFailed = errors.New("error decrypting data")
)

// secretBox is the private implementation of [SecretCipher].
// It holds a single AES-GCM AEAD built once from the configured passphrase.
type secretBox struct {
	aead cipher.AEAD
}

// NewSecretBox derives an AES master key from passphrase and constructs a
// [SecretCipher] around AES-GCM.
//
// Key derivation follows the original configuration contract: the first
// 32, 24, or 16 bytes of the passphrase become the key — the longest AES key
// length the passphrase can fill. A passphrase shorter than 16 bytes is
// rejected with [ErrPassphraseTooShort].
//
// Construction runs an encrypt/decrypt self-test round-trip. A failed
// self-test is a broken cipher and makes construction fail; the owning
// process must abort startup rather than continue with unusable encryption.
func NewSecretBox(passphrase string) (SecretCipher, error) {
	keyBytes, err := selectKeyBytes(passphrase)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("error creating AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM mode: %w", err)
	}

	box := &secretBox{aead: gcm}

	if err := box.selfTest(); err != nil {
		return nil, fmt.Errorf("encryption self-test failed: %w", err)
	}

	return box, nil
}

// selectKeyBytes picks the AES key material from the passphrase prefix:
// 32 bytes when available (AES-256), else 24 (AES-192), else 16 (AES-128).
func selectKeyBytes(passphrase string) ([]byte, error) {
	raw := []byte(passphrase)

	var keyLen int
	switch {
	case len(raw) >= 32:
		keyLen = 32
	case len(raw) >= 24:
		keyLen = 24
	case len(raw) >= 16:
		keyLen = 16
	default:
		return nil, ErrPassphraseTooShort
	}

	key := make([]byte, keyLen)
	copy(key, raw[:keyLen])
	return key, nil
}

// Encrypt implements [SecretCipher]. It reads a fresh 12-byte nonce from the
// OS CSPRNG, seals plaintext with AES-GCM, and returns the blob as
// base64(nonce ‖ ciphertext). The per-call nonce guarantees two encryptions
// of the same plaintext produce different blobs.
func (s *secretBox) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	// Prepend the nonce so Decrypt can split it out.
	sealed := s.aead.Seal(nil, nonce, []byte(plaintext), nil)
	blob := append(nonce, sealed...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [SecretCipher]. It splits the nonce prefix from the
// decoded blob and opens the ciphertext, verifying the authentication tag.
//
// Any failure (bad base64, blob shorter than the nonce, tag mismatch) is
// reported as [ErrDecryptionFailed]. A tag mismatch almost always means the
// configured passphrase differs from the one used at encryption time.
func (s *secretBox) Decrypt(encoded string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// selfTest round-trips a fixed probe value through the freshly built AEAD.
func (s *secretBox) selfTest() error {
	const probe = "initialization test"

	sealed, err := s.Encrypt(probe)
	if err != nil {
		return err
	}

	opened, err := s.Decrypt(sealed)
	if err != nil {
		return err
	}

	if opened != probe {
		return errors.New("self-test round-trip produced different plaintext")
	}

	return nil
}
