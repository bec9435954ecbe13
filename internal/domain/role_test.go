package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionRoles(t *testing.T) {
	roles := UnionRoles([]string{"BUSINESS-OWNER"}, "SYSADMIN", "BUSINESS-OWNER", "SYSADMIN")
	assert.Equal(t, []string{"BUSINESS-OWNER", "SYSADMIN"}, roles)

	again := UnionRoles(roles, "SYSADMIN")
	assert.Equal(t, roles, again)
}

func TestSubtractRoles(t *testing.T) {
	roles := SubtractRoles([]string{"A", "B", "C"}, "B", "X")
	assert.Equal(t, []string{"A", "C"}, roles)
	assert.Empty(t, SubtractRoles(nil, "A"))
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, HasAnyRole([]string{"BUSINESS-OWNER"}, UserManagementRoles...))
	assert.False(t, HasAnyRole([]string{"POS"}, UserManagementRoles...))
	assert.False(t, HasAnyRole(nil, UserManagementRoles...))
}

func TestUserFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, UserFilter{Page: 0, Count: 10}.Offset())
	assert.Equal(t, 20, UserFilter{Page: 2, Count: 10}.Offset())
}
