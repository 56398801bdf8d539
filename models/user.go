package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login identifier used during authentication
	// and embedded as the "sub" claim of every issued token.
	Username string `json:"username"`

	// Email is the unique address used for the password-reset handshake
	// and expiration notifications.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never populated from or serialized to JSON.
	PasswordHash string `json:"-"`

	// Authorities is the set of authority strings granted to the user
	// (roles and operation permissions). Embedded into access tokens.
	Authorities []Authority `json:"authorities,omitempty"`

	// Active reports whether the account may authenticate at all.
	Active bool `json:"active"`

	// PasswordExpirationDate is the day after which the current password may
	// no longer be used to log in. Advanced on every password mutation.
	PasswordExpirationDate time.Time `json:"-"`

	// ResetPasswordToken is the opaque single-use token of an in-flight
	// password-reset handshake. Empty when no reset is pending.
	ResetPasswordToken string `json:"-"`

	// ResetPasswordTokenExpiry is the instant after which ResetPasswordToken
	// becomes permanently unusable. Zero when no reset is pending.
	ResetPasswordTokenExpiry time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PasswordExpired reports whether the user's password has reached its
// expiration date as of now. A password expiring today is already unusable.
func (u User) PasswordExpired(now time.Time) bool {
	if u.PasswordExpirationDate.IsZero() {
		return false
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := u.PasswordExpirationDate.Date()
	today := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return !today.Before(expiry)
}
