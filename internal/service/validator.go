package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/keycloak"
	"github.com/kingrain94/user-management-api/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{8,}$`)

// UserValidator runs the checks of every user command in a fixed order:
// role, required fields, business scope, self modification, domain rules.
// The first failing check wins and nothing is written before all pass.
type UserValidator struct {
	users repository.UserRepository
	idp   IdentityProvider
	roles *config.RoleConfig
}

func NewUserValidator(users repository.UserRepository, idp IdentityProvider, roles *config.RoleConfig) *UserValidator {
	return &UserValidator{
		users: users,
		idp:   idp,
		roles: roles,
	}
}

func (v *UserValidator) ValidateUserCreation(ctx context.Context, token *domain.AuthToken, args dto.CreateUserArgs) (*domain.User, error) {
	const method = "createUser"

	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, err
	}

	if args.Input == nil || args.Input.GeneralInfo == nil {
		return nil, domain.ErrMissingData.In(method)
	}
	info := args.Input.GeneralInfo.Normalize()
	if missingGeneralInfo(info) {
		return nil, domain.ErrMissingData.In(method)
	}
	businessID := strings.TrimSpace(args.BusinessID)
	if businessID == "" {
		return nil, domain.ErrMissingBusiness.In(method)
	}

	if err := checkBusiness(roles, token, businessID, method); err != nil {
		return nil, err
	}

	if err := v.checkEmailAvailable(ctx, method, info.Email, nil); err != nil {
		return nil, err
	}

	state := false
	if args.Input.State != nil {
		state = *args.Input.State
	}

	return &domain.User{
		BusinessID:  businessID,
		GeneralInfo: info,
		State:       state,
		Roles:       []string{},
	}, nil
}

func (v *UserValidator) ValidateUpdateUserGeneralInfo(ctx context.Context, token *domain.AuthToken, args dto.UpdateUserGeneralInfoArgs) (*domain.User, domain.GeneralInfo, error) {
	const method = "updateUserGeneralInfo"

	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, domain.GeneralInfo{}, err
	}

	if args.UserID == "" || args.Input == nil || args.Input.GeneralInfo == nil {
		return nil, domain.GeneralInfo{}, domain.ErrMissingData.In(method)
	}
	info := args.Input.GeneralInfo.Normalize()
	if missingGeneralInfo(info) {
		return nil, domain.GeneralInfo{}, domain.ErrMissingData.In(method)
	}

	target, err := v.checkTarget(ctx, token, roles, args.UserID, method, false)
	if err != nil {
		return nil, domain.GeneralInfo{}, err
	}

	if !strings.EqualFold(info.Email, target.GeneralInfo.Email) {
		if err := v.checkEmailAvailable(ctx, method, info.Email, target); err != nil {
			return nil, domain.GeneralInfo{}, err
		}
	}

	return target, info, nil
}

func (v *UserValidator) ValidateUpdateUserState(ctx context.Context, token *domain.AuthToken, args dto.UpdateUserStateArgs) (*domain.User, bool, error) {
	const method = "updateUserState"

	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, false, err
	}

	if args.UserID == "" || args.State == nil {
		return nil, false, domain.ErrMissingData.In(method)
	}

	target, err := v.checkTarget(ctx, token, roles, args.UserID, method, false)
	if err != nil {
		return nil, false, err
	}

	return target, *args.State, nil
}

func (v *UserValidator) ValidateCreateUserAuth(ctx context.Context, token *domain.AuthToken, args dto.CreateUserAuthArgs) (*domain.User, dto.AuthInput, error) {
	const method = "createUserAuth"

	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, dto.AuthInput{}, err
	}

	if args.UserID == "" || args.Input == nil {
		return nil, dto.AuthInput{}, domain.ErrMissingData.In(method)
	}
	input := *args.Input
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return nil, dto.AuthInput{}, domain.ErrMissingData.In(method)
	}
	if !usernamePattern.MatchString(input.Username) {
		return nil, dto.AuthInput{}, domain.ErrInvalidFormat.In(method)
	}

	target, err := v.checkTarget(ctx, token, roles, args.UserID, method, false)
	if err != nil {
		return nil, dto.AuthInput{}, err
	}

	if target.HasAuth() {
		return nil, dto.AuthInput{}, domain.ErrCredentialsAlreadyExist.In(method)
	}

	existing, err := v.idp.FindUsers(ctx, keycloak.UserQuery{Username: input.Username, Exact: true})
	if err != nil {
		return nil, dto.AuthInput{}, fmt.Errorf("failed to look up username: %w", err)
	}
	for _, user := range existing {
		if strings.EqualFold(user.Username, input.Username) {
			return nil, dto.AuthInput{}, domain.ErrUsernameAlreadyUsed.In(method)
		}
	}

	if err := v.checkEmailAvailable(ctx, method, target.GeneralInfo.Email, target); err != nil {
		return nil, dto.AuthInput{}, err
	}

	return target, input, nil
}

func (v *UserValidator) ValidateRemoveUserAuth(ctx context.Context, token *domain.AuthToken, args dto.RemoveUserAuthArgs) (*domain.User, error) {
	const method = "removeUserAuth"

	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, err
	}

	if args.UserID == "" {
		return nil, domain.ErrMissingData.In(method)
	}

	target, err := v.checkTarget(ctx, token, roles, args.UserID, method, false)
	if err != nil {
		return nil, err
	}

	if !target.HasAuth() {
		return nil, domain.ErrNoAuthCredentials.In(method)
	}

	return target, nil
}

func (v *UserValidator) ValidatePasswordReset(ctx context.Context, token *domain.AuthToken, args dto.ResetUserPasswordArgs) (*domain.User, dto.PasswordInput, error) {
	const method = "resetUserPassword"

	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, dto.PasswordInput{}, err
	}

	if args.UserID == "" || args.Input == nil || args.Input.Password == "" {
		return nil, dto.PasswordInput{}, domain.ErrMissingData.In(method)
	}

	target, err := v.checkTarget(ctx, token, roles, args.UserID, method, false)
	if err != nil {
		return nil, dto.PasswordInput{}, err
	}

	if !target.HasAuth() {
		return nil, dto.PasswordInput{}, domain.ErrNoAuthCredentials.In(method)
	}

	return target, *args.Input, nil
}

// ValidateUserRoles is shared by addRolesToTheUser and removeRolesFromUser.
func (v *UserValidator) ValidateUserRoles(ctx context.Context, token *domain.AuthToken, args dto.UserRolesArgs, method string) (*domain.User, []string, error) {
	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, nil, err
	}

	if args.UserID == "" || args.Input == nil {
		return nil, nil, domain.ErrMissingData.In(method)
	}
	requested := domain.UnionRoles(nil, trimAll(args.Input.Roles)...)
	if len(requested) == 0 {
		return nil, nil, domain.ErrMissingData.In(method)
	}

	target, err := v.checkTarget(ctx, token, roles, args.UserID, method, false)
	if err != nil {
		return nil, nil, err
	}

	allowed := v.roles.AllowedRoles(token.Roles())
	for _, role := range requested {
		if !slices.Contains(allowed, role) {
			return nil, nil, domain.ErrPermissionDenied.In(method)
		}
	}

	return target, requested, nil
}

func (v *UserValidator) ValidateHistoryExport(ctx context.Context, token *domain.AuthToken, args dto.ExportUserHistoryArgs) (*domain.User, error) {
	const method = "exportUserHistory"

	roles, err := CheckPermissions(token.Roles(), method, domain.UserManagementRoles...)
	if err != nil {
		return nil, err
	}

	if args.UserID == "" {
		return nil, domain.ErrMissingData.In(method)
	}

	// reading one's own history is not a modification
	return v.checkTarget(ctx, token, roles, args.UserID, method, true)
}

// checkTarget runs the business scope, self modification and existence checks
// against the stored user, in that order.
func (v *UserValidator) checkTarget(ctx context.Context, token *domain.AuthToken, roles RoleMap, userID, method string, allowSelf bool) (*domain.User, error) {
	target, err := v.users.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	if target != nil {
		if err := checkBusiness(roles, token, target.BusinessID, method); err != nil {
			return nil, err
		}
	}

	if !allowSelf && userID == token.UserID() {
		return nil, domain.ErrSelfUpdateForbidden.In(method)
	}

	if target == nil {
		return nil, domain.ErrUserNotFound.In(method)
	}

	return target, nil
}

// checkEmailAvailable fails when email belongs to someone other than target,
// either in the profile store or in the identity provider.
func (v *UserValidator) checkEmailAvailable(ctx context.Context, method, email string, target *domain.User) error {
	existing, err := v.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if target == nil || existing.ID != target.ID {
			return domain.ErrEmailAlreadyUsed.In(method)
		}
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("failed to look up email: %w", err)
	}

	accounts, err := v.idp.FindUsers(ctx, keycloak.UserQuery{Email: email, Exact: true})
	if err != nil {
		return fmt.Errorf("failed to look up email in identity provider: %w", err)
	}
	for _, account := range accounts {
		if !strings.EqualFold(account.Email, email) {
			continue
		}
		if target != nil && target.HasAuth() && account.ID == target.Auth.UserKeycloakID {
			continue
		}
		return domain.ErrEmailAlreadyUsed.In(method)
	}

	return nil
}

func checkBusiness(roles RoleMap, token *domain.AuthToken, businessID, method string) error {
	if roles.Has(domain.RolePlatformAdmin) {
		return nil
	}
	if token.BusinessID == "" || businessID != token.BusinessID {
		return domain.ErrCrossBusinessForbidden.In(method)
	}
	return nil
}

func missingGeneralInfo(info domain.GeneralInfo) bool {
	return info.Name == "" || info.Lastname == "" || info.Email == "" || info.Phone == ""
}

func trimAll(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		trimmed = append(trimmed, strings.TrimSpace(value))
	}
	return trimmed
}
