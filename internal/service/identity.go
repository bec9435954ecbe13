package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/kingrain94/user-management-api/internal/keycloak"
)

// resolveRealmRoles looks up the realm role representations for names.
// Names unknown to the realm are left out.
func resolveRealmRoles(ctx context.Context, idp IdentityProvider, names []string) ([]keycloak.RoleRepresentation, error) {
	if len(names) == 0 {
		return nil, nil
	}

	realmRoles, err := idp.ListRealmRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list realm roles: %w", err)
	}

	resolved := make([]keycloak.RoleRepresentation, 0, len(names))
	for _, role := range realmRoles {
		if slices.Contains(names, role.Name) {
			resolved = append(resolved, role)
		}
	}
	return resolved, nil
}
