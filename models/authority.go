package models

// Authority is a single granted permission carried inside access tokens,
// either a role (ROLE_* prefix) or an operation permission (OP_* prefix).
//
// Authorities are compared by value; the typed string prevents ad hoc raw
// string matching from spreading across packages.
type Authority string

// Roles known to the system. Operation authorities (e.g. "OP_CREATE_SURVEY")
// are granted dynamically and pass through untyped.
const (
	RoleUser        Authority = "ROLE_USER"
	RoleUserAdmin   Authority = "ROLE_USER_ADMIN"
	RoleSystemAdmin Authority = "ROLE_SYSTEM_ADMIN"
)

// knownRoles maps the raw role strings accepted during registration and
// admin user management to their typed values.
var knownRoles = map[string]Authority{
	"ROLE_USER":         RoleUser,
	"ROLE_USER_ADMIN":   RoleUserAdmin,
	"ROLE_SYSTEM_ADMIN": RoleSystemAdmin,
}

// ParseRole maps a raw role string to a known role Authority.
// Unknown strings fall back to [RoleUser].
func ParseRole(raw string) Authority {
	if role, ok := knownRoles[raw]; ok {
		return role
	}
	return RoleUser
}

// String returns the raw authority string.
// It implements the [fmt.Stringer] interface.
func (a Authority) String() string {
	return string(a)
}

// IsAdmin reports whether the authority grants user administration rights.
func (a Authority) IsAdmin() bool {
	return a == RoleUserAdmin || a == RoleSystemAdmin
}

// AuthoritiesToStrings converts a typed authority set to the raw string
// slice embedded in the "roles" token claim.
func AuthoritiesToStrings(authorities []Authority) []string {
	if authorities == nil {
		return nil
	}
	out := make([]string, 0, len(authorities))
	for _, a := range authorities {
		out = append(out, string(a))
	}
	return out
}

// AuthoritiesFromStrings converts the raw "roles" claim of a parsed token
// back to a typed authority set.
func AuthoritiesFromStrings(raw []string) []Authority {
	if raw == nil {
		return nil
	}
	out := make([]Authority, 0, len(raw))
	for _, s := range raw {
		out = append(out, Authority(s))
	}
	return out
}
