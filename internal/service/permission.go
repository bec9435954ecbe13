package service

import (
	"github.com/kingrain94/user-management-api/internal/domain"
)

// RoleMap tells, for every required role, whether the caller holds it
type RoleMap map[domain.Role]bool

func (m RoleMap) Has(role domain.Role) bool {
	return m[role]
}

// CheckPermissions fails with PermissionDenied unless the caller holds at least
// one of the required roles.
func CheckPermissions(callerRoles []string, method string, requiredRoles ...domain.Role) (RoleMap, error) {
	roles := make(RoleMap, len(requiredRoles))
	granted := false
	for _, required := range requiredRoles {
		held := domain.HasRole(callerRoles, required)
		roles[required] = held
		granted = granted || held
	}

	if !granted {
		return nil, domain.ErrPermissionDenied.In(method)
	}
	return roles, nil
}
