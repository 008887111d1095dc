// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Default role for registered property seekers
	RoleBuyer Role = "buyer"

	// Sales agents who follow up on captured leads
	RoleAgent Role = "agent"

	// Back-office staff managing the property catalogue and leads
	RoleAdmin Role = "admin"

	// Unrestricted platform access
	RoleSuperAdmin Role = "super_admin"
)

// PermissionAll is the wildcard permission marker meaning "all permissions".
const PermissionAll = "*"

// # Permission Keys

const (
	PermPropertiesRead   = "properties:read"
	PermPropertiesWrite  = "properties:write"
	PermLeadsRead        = "leads:read"
	PermLeadsManage      = "leads:manage"
	PermFavoritesManage  = "favorites:manage"
	PermBlogWrite        = "blog:write"
	PermUsersManage      = "users:manage"
)

// rolePermissions is the static role→capability table. It is fixed at
// compile time and independent of any per-user database state: escalation
// requires a new role, never a data change.
var rolePermissions = map[Role][]string{
	RoleBuyer: {
		PermPropertiesRead,
		PermFavoritesManage,
	},
	RoleAgent: {
		PermPropertiesRead,
		PermFavoritesManage,
		PermLeadsRead,
	},
	RoleAdmin: {
		PermPropertiesRead,
		PermPropertiesWrite,
		PermLeadsRead,
		PermLeadsManage,
		PermBlogWrite,
	},
	RoleSuperAdmin: {
		PermissionAll,
	},
}

// PermissionsForRole returns the capability set for role. An unknown role
// yields an empty set (fail closed).
func PermissionsForRole(role Role) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the granted set satisfies required.
// The single-element wildcard set matches any permission string.
func HasPermission(granted []string, required string) bool {
	for _, p := range granted {
		if p == PermissionAll || p == required {
			return true
		}
	}
	return false
}

// IsBackOffice reports whether the role may enter the admin back-office.
func (r Role) IsBackOffice() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsValid reports whether r is one of the four platform roles.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}
