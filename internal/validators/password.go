// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation and enforcement of business
// rules across the application.
//
// The password policy validator is the security-relevant member: it checks a
// candidate password against every composition rule and reports ALL violated
// rules at once, so callers can show the user the complete list of unmet
// requirements in a single response instead of one rule per attempt.
package validators

import (
	"strings"
	"unicode"
)

// minPasswordLength is the minimum accepted candidate password length.
const minPasswordLength = 8

// specialCharacters is the accepted special-character set, matching the
// policy communicated to users in violation messages.
const specialCharacters = `!@#$%^&*()_+-=[]{};':",./<>?`

// Violation messages, one per policy rule. Safe to display to the caller:
// they describe the caller's own input, never internal state.
const (
	ViolationLength    = "Password must be at least 8 characters long."
	ViolationUppercase = "Password must contain at least one uppercase letter."
	ViolationLowercase = "Password must contain at least one lowercase letter."
	ViolationDigit     = "Password must contain at least one number."
	ViolationSpecial   = `Password must contain at least one special character (e.g., !@#$%^&*()_+-=[]{};':",./<>?).`
)

// PasswordPolicy validates candidate passwords against the composition rules
// of the account security policy. The zero value is ready to use; the type
// exists so the policy can be injected and substituted in tests.
type PasswordPolicy struct{}

// NewPasswordPolicy constructs a [PasswordPolicy].
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{}
}

// Validate checks candidate against every policy rule:
//   - length >= 8
//   - at least one uppercase letter
//   - at least one lowercase letter
//   - at least one digit
//   - at least one character from the special-character set
//
// It accumulates all violated rules rather than stopping at the first and
// returns a [*PolicyViolationError] carrying the full list, or nil when the
// candidate satisfies every rule. An empty candidate fails all five rules
// except the ones it vacuously cannot violate, which in practice means all
// rules are reported.
func (p *PasswordPolicy) Validate(candidate string) error {
	var violations []string

	if len(candidate) < minPasswordLength {
		violations = append(violations, ViolationLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialCharacters, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		violations = append(violations, ViolationUppercase)
	}
	if !hasLower {
		violations = append(violations, ViolationLowercase)
	}
	if !hasDigit {
		violations = append(violations, ViolationDigit)
	}
	if !hasSpecial {
		violations = append(violations, ViolationSpecial)
	}

	if len(violations) > 0 {
		return &PolicyViolationError{Violations: violations}
	}

	return nil
}
