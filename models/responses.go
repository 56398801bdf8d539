package models

// MessageResponse is the generic body returned by endpoints that have no
// structured payload (registration, forgot/reset password outcomes).
//
// Forgot-password deliberately returns the same MessageResponse whether or
// not the email is known, so the response shape carries no enumeration
// side channel.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of any non-2xx JSON response.
// Message is always safe to display to the caller; Violations carries the
// full password-policy rule list when the error is a policy violation.
type ErrorResponse struct {
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}
