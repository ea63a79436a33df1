package valueobjects

// Role is the coarse-grained access role attached to a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// ValidRoles returns the assignable roles.
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleViewer}
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleViewer:
		return true
	}
	return false
}

// CanManage reports whether the role may create and modify records.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanOverride reports whether the role may force status changes outside
// the guarded lifecycle transitions.
func (r Role) CanOverride() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// ParseRole validates a raw string into a Role.
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.IsValid()
}
