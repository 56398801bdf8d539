package models

// Principal is the identity asserted by a validated token: the username and
// the authority set granted to it. It is never persisted; instances are
// built transiently from user records at issuance time or from parsed token
// claims at request time.
type Principal struct {
	Username    string
	Authorities []Authority
}

// IsAdmin reports whether any granted authority carries user administration
// rights.
func (p Principal) IsAdmin() bool {
	for _, a := range p.Authorities {
		if a.IsAdmin() {
			return true
		}
	}
	return false
}
