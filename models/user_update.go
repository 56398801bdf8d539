package models

import "time"

// UserCredentialsUpdate describes a partial mutation of a user's credential
// fields. Nil pointer fields are left untouched; ClearResetToken nulls both
// reset-token columns in the same statement.
//
// All credential mutations (self-service change, admin reset, reset-flow
// completion, reset initiation) go through this descriptor so the dynamic
// UPDATE builder is the single place that touches credential columns.
type UserCredentialsUpdate struct {
	// UserID identifies the user row to mutate.
	UserID int64

	// PasswordHash replaces the stored bcrypt hash when non-nil.
	PasswordHash *string

	// PasswordExpirationDate replaces the password expiry date when non-nil.
	// Set together with PasswordHash on every successful password mutation.
	PasswordExpirationDate *time.Time

	// ResetPasswordToken attaches a new reset token when non-nil.
	ResetPasswordToken *string

	// ResetPasswordTokenExpiry sets the reset token expiry when non-nil.
	ResetPasswordTokenExpiry *time.Time

	// ClearResetToken nulls both reset-token columns. Mutually exclusive
	// with setting ResetPasswordToken in the same update.
	ClearResetToken bool
}

// Empty reports whether the update would touch no columns at all.
func (u UserCredentialsUpdate) Empty() bool {
	return u.PasswordHash == nil &&
		u.PasswordExpirationDate == nil &&
		u.ResetPasswordToken == nil &&
		u.ResetPasswordTokenExpiry == nil &&
		!u.ClearResetToken
}
