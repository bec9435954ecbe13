package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/keycloak"
	"github.com/kingrain94/user-management-api/internal/repository"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

// UserService handles the user management queries and mutations.
// Mutations never write to the profile store directly: they emit events
// that the projector applies.
type UserService struct {
	repo      repository.Repository
	validator *UserValidator
	idp       IdentityProvider
	events    EventEmitter
	history   HistoryScheduler
	roles     *config.RoleConfig
	logger    *logger.Logger
}

func NewUserService(repo repository.Repository, idp IdentityProvider, events EventEmitter, history HistoryScheduler, roles *config.RoleConfig, logger *logger.Logger) *UserService {
	return &UserService{
		repo:      repo,
		validator: NewUserValidator(repo.User(), idp, roles),
		idp:       idp,
		events:    events,
		history:   history,
		roles:     roles,
		logger:    logger.Named("user_service"),
	}
}

func (s *UserService) CreateUser(ctx context.Context, token *domain.AuthToken, args dto.CreateUserArgs) (*dto.MutationResult, error) {
	user, err := s.validator.ValidateUserCreation(ctx, token, args)
	if err != nil {
		return nil, err
	}

	user.ID = uuid.New().String()
	if err := s.emit(ctx, token, domain.EventUserCreated, user.ID, user); err != nil {
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("User with id: %s has been created", user.ID)), nil
}

func (s *UserService) UpdateUserGeneralInfo(ctx context.Context, token *domain.AuthToken, args dto.UpdateUserGeneralInfoArgs) (*dto.MutationResult, error) {
	target, info, err := s.validator.ValidateUpdateUserGeneralInfo(ctx, token, args)
	if err != nil {
		return nil, err
	}

	payload := domain.UserGeneralInfoPayload{ID: target.ID, GeneralInfo: info}
	if err := s.emit(ctx, token, domain.EventUserGeneralInfoUpdated, target.ID, payload); err != nil {
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("User general info with id: %s has been updated", target.ID)), nil
}

func (s *UserService) UpdateUserState(ctx context.Context, token *domain.AuthToken, args dto.UpdateUserStateArgs) (*dto.MutationResult, error) {
	target, state, err := s.validator.ValidateUpdateUserState(ctx, token, args)
	if err != nil {
		return nil, err
	}

	eventType := domain.EventUserDeactivated
	if state {
		eventType = domain.EventUserActivated
	}
	payload := domain.UserStatePayload{ID: target.ID, State: state}
	if err := s.emit(ctx, token, eventType, target.ID, payload); err != nil {
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("User status of the user with id: %s has been updated", target.ID)), nil
}

// CreateUserAuth provisions the identity provider account, sets its password
// and maps the profile roles before emitting UserAuthCreated. The account is
// removed again if any later step fails.
func (s *UserService) CreateUserAuth(ctx context.Context, token *domain.AuthToken, args dto.CreateUserAuthArgs) (*dto.MutationResult, error) {
	const method = "createUserAuth"

	target, input, err := s.validator.ValidateCreateUserAuth(ctx, token, args)
	if err != nil {
		return nil, err
	}

	keycloakID, err := s.idp.CreateUser(ctx, keycloak.UserRepresentation{
		Username:   input.Username,
		FirstName:  target.GeneralInfo.Name,
		LastName:   target.GeneralInfo.Lastname,
		Email:      target.GeneralInfo.Email,
		Enabled:    keycloak.BoolPtr(target.State),
		Attributes: map[string][]string{"businessId": {target.BusinessID}},
	})
	if err != nil {
		if errors.Is(err, keycloak.ErrConflict) {
			return nil, domain.ErrUsernameAlreadyUsed.In(method).Wrap(err)
		}
		return nil, fmt.Errorf("failed to create identity for user %s: %w", target.ID, err)
	}

	if err := s.provisionIdentity(ctx, keycloakID, target, input); err != nil {
		s.rollbackIdentity(ctx, keycloakID)
		return nil, err
	}

	payload := domain.UserAuthPayload{UserKeycloakID: keycloakID, Username: input.Username}
	if err := s.emit(ctx, token, domain.EventUserAuthCreated, target.ID, payload); err != nil {
		s.rollbackIdentity(ctx, keycloakID)
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("User auth of the user with id: %s has been created", target.ID)), nil
}

func (s *UserService) provisionIdentity(ctx context.Context, keycloakID string, target *domain.User, input dto.AuthInput) error {
	if err := s.idp.ResetPassword(ctx, keycloakID, keycloak.PasswordCredential(input.Password, input.Temporary)); err != nil {
		return fmt.Errorf("failed to set password for user %s: %w", target.ID, err)
	}

	realmRoles, err := resolveRealmRoles(ctx, s.idp, target.Roles)
	if err != nil {
		return err
	}
	if err := s.idp.AddRealmRoleMappings(ctx, keycloakID, realmRoles); err != nil {
		return fmt.Errorf("failed to map roles for user %s: %w", target.ID, err)
	}
	return nil
}

func (s *UserService) rollbackIdentity(ctx context.Context, keycloakID string) {
	if err := s.idp.DeleteUser(ctx, keycloakID); err != nil {
		s.logger.Error("Failed to remove partially created identity", err, zap.String("keycloak_id", keycloakID))
	}
}

func (s *UserService) RemoveUserAuth(ctx context.Context, token *domain.AuthToken, args dto.RemoveUserAuthArgs) (*dto.MutationResult, error) {
	const method = "removeUserAuth"

	target, err := s.validator.ValidateRemoveUserAuth(ctx, token, args)
	if err != nil {
		return nil, err
	}

	keycloakID := target.Auth.UserKeycloakID
	if err := s.idp.DeleteUser(ctx, keycloakID); err != nil {
		if _, getErr := s.idp.GetUser(ctx, keycloakID); !errors.Is(getErr, keycloak.ErrNotFound) {
			return nil, domain.ErrDeletionNotConfirmed.In(method).Wrap(err)
		}
		s.logger.Warn("Identity already removed from identity provider",
			zap.String("user_id", target.ID),
			zap.String("keycloak_id", keycloakID))
	}

	payload := domain.UserAuthPayload{UserKeycloakID: keycloakID, Username: target.Auth.Username}
	if err := s.emit(ctx, token, domain.EventUserAuthDeleted, target.ID, payload); err != nil {
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("User auth of the user with id: %s has been deleted", target.ID)), nil
}

func (s *UserService) ResetUserPassword(ctx context.Context, token *domain.AuthToken, args dto.ResetUserPasswordArgs) (*dto.MutationResult, error) {
	target, input, err := s.validator.ValidatePasswordReset(ctx, token, args)
	if err != nil {
		return nil, err
	}

	keycloakID := target.Auth.UserKeycloakID
	if err := s.idp.ResetPassword(ctx, keycloakID, keycloak.PasswordCredential(input.Password, input.Temporary)); err != nil {
		return nil, fmt.Errorf("failed to reset password for user %s: %w", target.ID, err)
	}

	payload := domain.UserPasswordPayload{UserKeycloakID: keycloakID, Temporary: input.Temporary}
	if err := s.emit(ctx, token, domain.EventUserAuthPasswordUpdated, target.ID, payload); err != nil {
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("Password of the user with id: %s has been changed", target.ID)), nil
}

func (s *UserService) AddRolesToTheUser(ctx context.Context, token *domain.AuthToken, args dto.UserRolesArgs) (*dto.MutationResult, error) {
	target, roles, err := s.validator.ValidateUserRoles(ctx, token, args, "addRolesToTheUser")
	if err != nil {
		return nil, err
	}

	payload := domain.UserRolesPayload{ID: target.ID, UserRoles: domain.RoleList{Roles: roles}}
	if err := s.emit(ctx, token, domain.EventUserRolesAdded, target.ID, payload); err != nil {
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("User roles: %s had been added to the user with id: %s", strings.Join(roles, ","), target.ID)), nil
}

func (s *UserService) RemoveRolesFromUser(ctx context.Context, token *domain.AuthToken, args dto.UserRolesArgs) (*dto.MutationResult, error) {
	target, roles, err := s.validator.ValidateUserRoles(ctx, token, args, "removeRolesFromUser")
	if err != nil {
		return nil, err
	}

	payload := domain.UserRolesPayload{ID: target.ID, UserRoles: domain.RoleList{Roles: roles}}
	if err := s.emit(ctx, token, domain.EventUserRolesRemoved, target.ID, payload); err != nil {
		return nil, err
	}

	return dto.NewMutationResult(fmt.Sprintf("User roles: %s had been removed from the user with id: %s", strings.Join(roles, ","), target.ID)), nil
}

// ExportUserHistory schedules an S3 export of every event of the user.
func (s *UserService) ExportUserHistory(ctx context.Context, token *domain.AuthToken, args dto.ExportUserHistoryArgs) (*dto.MutationResult, error) {
	target, err := s.validator.ValidateHistoryExport(ctx, token, args)
	if err != nil {
		return nil, err
	}

	if err := s.history.SendHistoryExport(ctx, target.ID, target.BusinessID, token.PreferredUsername); err != nil {
		return nil, fmt.Errorf("failed to schedule history export: %w", err)
	}

	return dto.NewMutationResult(fmt.Sprintf("Event history of the user with id: %s has been scheduled for export", target.ID)), nil
}

func (s *UserService) emit(ctx context.Context, token *domain.AuthToken, eventType, aggregateID string, data any) error {
	event, err := domain.NewUserEvent(eventType, aggregateID, token.PreferredUsername, data)
	if err != nil {
		return err
	}
	return s.events.Emit(ctx, event)
}
