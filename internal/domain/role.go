package domain

import "slices"

// Role is a realm role name as carried in realm_access.roles
type Role string

const (
	// RolePlatformAdmin may act on users of every business
	RolePlatformAdmin Role = "PLATFORM-ADMIN"

	// RoleBusinessOwner may act only on users of its own business
	RoleBusinessOwner Role = "BUSINESS-OWNER"
)

// UserManagementRoles are the roles allowed to call user management operations
var UserManagementRoles = []Role{RolePlatformAdmin, RoleBusinessOwner}

// RoleMapping is a realm role as assigned by the identity provider
type RoleMapping struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HasRole checks if a slice of roles contains a specific role
func HasRole(roles []string, role Role) bool {
	return slices.Contains(roles, string(role))
}

// HasAnyRole checks if a slice of roles contains any of the specified roles
func HasAnyRole(roles []string, requiredRoles ...Role) bool {
	for _, required := range requiredRoles {
		if HasRole(roles, required) {
			return true
		}
	}
	return false
}

// UnionRoles appends the roles missing from current, keeping the first occurrence order.
func UnionRoles(current []string, add ...string) []string {
	result := make([]string, 0, len(current)+len(add))
	seen := make(map[string]struct{}, len(current)+len(add))
	for _, role := range append(slices.Clone(current), add...) {
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		result = append(result, role)
	}
	return result
}

// SubtractRoles returns current without any of the given roles.
func SubtractRoles(current []string, remove ...string) []string {
	result := make([]string, 0, len(current))
	for _, role := range current {
		if slices.Contains(remove, role) {
			continue
		}
		result = append(result, role)
	}
	return result
}
