package validators

import "strings"

// PolicyViolationError reports every password-policy rule a candidate
// violated. It is a typed error so transport layers can surface the complete
// violation list to the caller while still matching it with [errors.As].
type PolicyViolationError struct {
	// Violations holds one user-facing message per violated rule, in policy
	// order (length, uppercase, lowercase, digit, special character).
	Violations []string
}

// Error joins all violation messages into a single string, mirroring the
// one-response-per-attempt contract of the policy.
func (e *PolicyViolationError) Error() string {
	return "Password policy violated: " + strings.Join(e.Violations, " ")
}
