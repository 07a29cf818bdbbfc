package authorization

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleSuperadmin UserRole = "superadmin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsSuperadmin() bool {
	return r == RoleSuperadmin
}

func (r UserRole) IsValid() bool {
	return r == RoleSuperadmin || r == RoleUser
}

// ParseUserRole falls back to RoleUser for anything unrecognised.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// Resources and actions checked by the permission middleware.
const (
	ResourceAdminContent   = "admin.content"
	ResourceAdminSupport   = "admin.support"
	ResourceAdminUsers     = "admin.users"
	ResourceAdminSystem    = "admin.system"
	ResourceAdminAnalytics = "admin.analytics"

	ActionRead  = "read"
	ActionWrite = "write"
)
