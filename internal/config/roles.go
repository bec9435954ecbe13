package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kingrain94/user-management-api/internal/domain"
)

// RoleConfig holds the role assignment rules of the service
type RoleConfig struct {
	// AllowedToAssign maps a caller role to the roles it may grant
	AllowedToAssign map[string][]string
	// FirstUserRoles are granted to the first user of a business
	FirstUserRoles []string
}

// LoadRoleConfig parses USER_ROLES_ALLOW_TO_ASSIGN and ROLE_FIRST_USER_ASSIGN.
//
//	USER_ROLES_ALLOW_TO_ASSIGN={"PLATFORM-ADMIN":["BUSINESS-OWNER","POS"],"BUSINESS-OWNER":["POS"]}
//	ROLE_FIRST_USER_ASSIGN={"roles":["BUSINESS-OWNER"]}
func LoadRoleConfig() (*RoleConfig, error) {
	cfg := &RoleConfig{AllowedToAssign: map[string][]string{}}

	if raw := os.Getenv("USER_ROLES_ALLOW_TO_ASSIGN"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.AllowedToAssign); err != nil {
			return nil, fmt.Errorf("invalid USER_ROLES_ALLOW_TO_ASSIGN: %w", err)
		}
	}

	if raw := os.Getenv("ROLE_FIRST_USER_ASSIGN"); raw != "" {
		var first domain.RoleList
		if err := json.Unmarshal([]byte(raw), &first); err != nil {
			return nil, fmt.Errorf("invalid ROLE_FIRST_USER_ASSIGN: %w", err)
		}
		cfg.FirstUserRoles = first.Roles
	}

	return cfg, nil
}

// AllowedRoles returns the roles the caller may assign, deduplicated in config order
func (c *RoleConfig) AllowedRoles(callerRoles []string) []string {
	var allowed []string
	for _, role := range callerRoles {
		allowed = domain.UnionRoles(allowed, c.AllowedToAssign[role]...)
	}
	return allowed
}
