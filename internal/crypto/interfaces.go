// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements at-rest protection for sensitive configuration
// values stored in the general config table (most importantly the token
// signing secret).
//
// Values are sealed with AES-GCM under a master key derived from a
// configured passphrase. The output format is base64(nonce ‖ ciphertext)
// with a fresh random nonce per call, so encrypting the same value twice
// never yields the same blob.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/secret_cipher_mock.go -package=mock

// SecretCipher seals and opens individual string values at rest.
//
// Implementations must be safe for concurrent use: the master key is
// read-only after construction.
type SecretCipher interface {
	// Encrypt seals plaintext and returns base64(nonce ‖ ciphertext).
	// Each call uses a fresh random nonce.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a blob produced by Encrypt. Returns ErrDecryptionFailed
	// if the authentication tag does not verify or the blob is malformed;
	// corrupted plaintext is never returned silently.
	Decrypt(encoded string) (string, error)
}
