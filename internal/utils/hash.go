package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
//
// The resulting hash embeds its own salt and cost factor, so no extra
// material needs to be stored next to it.
//
// Parameters:
//
//	password - the plaintext candidate, must be non-empty
//
// Returns:
//
//	string - the bcrypt hash suitable for storage
//	error  - non-nil if the password is empty or hashing fails
//
// Example usage:
//
//	hash, err := utils.HashPassword("Abcdefg1!")
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
//
// The comparison is performed by bcrypt itself and is safe against timing
// side channels; callers must never fall back to raw string equality.
//
// Returns nil when the password matches, or a non-nil error when the hash is
// empty, malformed, or the password does not match.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("password hash is empty")
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
