package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every token issued by this service.
//
// It embeds [jwt.RegisteredClaims] for the standard claim set (sub, exp, iat)
// and adds the "roles" claim holding the subject's authority strings.
// Refresh tokens leave Roles empty; the authority set is re-derived from the
// user store at refresh time.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Roles is the authority set granted to the subject at issuance time.
	// Present only in access tokens.
	Roles []string `json:"roles,omitempty"`
}

// Token wraps a signed JWT with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set of the token.
	Claims TokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// Username returns the token subject, the username the token asserts.
func (t *Token) Username() string {
	return t.Claims.Subject
}

// Authorities returns the typed authority set embedded in the token.
// Empty for refresh tokens.
func (t *Token) Authorities() []Authority {
	return AuthoritiesFromStrings(t.Claims.Roles)
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is the access/refresh credential pair returned by login and
// refresh operations.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// NewTokenPair builds a [TokenPair] with the conventional "Bearer" type tag.
func NewTokenPair(access, refresh string) TokenPair {
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}
}
