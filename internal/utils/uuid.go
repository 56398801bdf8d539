package utils

import "github.com/google/uuid"

// UUIDGenerator produces opaque random identifiers with UUID-grade entropy.
// Used for password-reset tokens, where guessability would break the reset
// handshake.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
