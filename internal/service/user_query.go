package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// GetUsers lists users newest first. A search filter is served by the search
// index and falls back to Postgres when the index is unavailable.
func (s *UserService) GetUsers(ctx context.Context, token *domain.AuthToken, args dto.GetUsersArgs) ([]domain.User, error) {
	filter, err := s.scopedFilter(token, "getUsers", args.BusinessID)
	if err != nil {
		return nil, err
	}

	filter.SearchFilter = strings.TrimSpace(args.SearchFilter)
	filter.Page = max(args.Page, 0)
	filter.Count = args.Count
	if filter.Count <= 0 {
		filter.Count = defaultPageSize
	}
	filter.Count = min(filter.Count, maxPageSize)

	if filter.SearchFilter != "" {
		users, err := s.repo.Search().Search(ctx, filter)
		if err == nil {
			return nonNilUsers(users), nil
		}
		s.logger.Warn("Search index unavailable, falling back to Postgres",
			zap.Error(err),
			zap.String("search_filter", filter.SearchFilter))
	}

	users, err := s.repo.User().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return nonNilUsers(users), nil
}

func (s *UserService) GetUserCount(ctx context.Context, token *domain.AuthToken, args dto.GetUserCountArgs) (int64, error) {
	filter, err := s.scopedFilter(token, "getUserCount", args.BusinessID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.User().Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (s *UserService) GetUser(ctx context.Context, token *domain.AuthToken, args dto.GetUserArgs) (*domain.User, error) {
	const method = "getUser"

	filter, err := s.scopedFilter(token, method, args.BusinessID)
	if err != nil {
		return nil, err
	}
	if args.ID == "" {
		return nil, domain.ErrMissingData.In(method)
	}

	return s.findScopedUser(ctx, args.ID, filter.BusinessID, method)
}

// GetRoles returns the roles the caller is allowed to assign.
func (s *UserService) GetRoles(_ context.Context, token *domain.AuthToken, _ dto.NoArgs) ([]string, error) {
	if _, err := CheckPermissions(token.Roles(), "getRoles", domain.UserManagementRoles...); err != nil {
		return nil, err
	}
	return dto.FromRoleNames(s.roles.AllowedRoles(token.Roles())), nil
}

// GetUserRoleMapping returns the realm roles mapped to the user's identity
// that the caller is allowed to see.
func (s *UserService) GetUserRoleMapping(ctx context.Context, token *domain.AuthToken, args dto.GetUserRoleMappingArgs) ([]domain.RoleMapping, error) {
	const method = "getUserRoleMapping"

	filter, err := s.scopedFilter(token, method, "")
	if err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, domain.ErrMissingData.In(method)
	}

	user, err := s.findScopedUser(ctx, args.UserID, filter.BusinessID, method)
	if err != nil {
		return nil, err
	}

	mappings := []domain.RoleMapping{}
	if !user.HasAuth() {
		return mappings, nil
	}

	realmRoles, err := s.idp.GetRealmRoleMappings(ctx, user.Auth.UserKeycloakID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role mappings of user %s: %w", user.ID, err)
	}

	allowed := s.roles.AllowedRoles(token.Roles())
	for _, role := range realmRoles {
		if slices.Contains(allowed, role.Name) {
			mappings = append(mappings, domain.RoleMapping{ID: role.ID, Name: role.Name})
		}
	}
	return mappings, nil
}

// scopedFilter checks the caller may query users and pins non-admins to their
// own business. A non-admin token without a business sees nothing.
func (s *UserService) scopedFilter(token *domain.AuthToken, method, businessID string) (domain.UserFilter, error) {
	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return domain.UserFilter{}, err
	}

	if !roles.Has(domain.RolePlatformAdmin) {
		if token.BusinessID == "" {
			return domain.UserFilter{}, domain.ErrMissingBusiness.In(method)
		}
		businessID = token.BusinessID
	}
	return domain.UserFilter{BusinessID: businessID}, nil
}

// findScopedUser hides users of other businesses behind UserNotFound.
func (s *UserService) findScopedUser(ctx context.Context, id, businessID, method string) (*domain.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound.In(method)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	if businessID != "" && user.BusinessID != businessID {
		return nil, domain.ErrUserNotFound.In(method)
	}
	return user, nil
}

func nonNilUsers(users []domain.User) []domain.User {
	if users == nil {
		return []domain.User{}
	}
	return users
}
