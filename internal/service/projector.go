package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/keycloak"
	"github.com/kingrain94/user-management-api/internal/repository"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

// UserUpdatedSubscription is the materialized view type published after every
// applied user event.
const UserUpdatedSubscription = "UserUpdatedSubscription"

type eventHandler func(ctx context.Context, event *domain.DomainEvent) error

// UserEventProjector applies user events to the profile store, the search
// index and the identity provider. Every handler can be applied more than once.
type UserEventProjector struct {
	users          repository.UserRepository
	search         repository.SearchRepository
	idp            IdentityProvider
	views          ViewPublisher
	firstUserRoles []string
	logger         *logger.Logger
	handlers       map[string]eventHandler
}

func NewUserEventProjector(repo repository.Repository, idp IdentityProvider, views ViewPublisher, roles *config.RoleConfig, logger *logger.Logger) *UserEventProjector {
	p := &UserEventProjector{
		users:          repo.User(),
		search:         repo.Search(),
		idp:            idp,
		views:          views,
		firstUserRoles: roles.FirstUserRoles,
		logger:         logger.Named("user_projector"),
	}

	p.handlers = map[string]eventHandler{
		domain.EventUserCreated:             p.handleUserCreated,
		domain.EventUserGeneralInfoUpdated:  p.handleGeneralInfoUpdated,
		domain.EventUserActivated:           p.handleStateUpdated,
		domain.EventUserDeactivated:         p.handleStateUpdated,
		domain.EventUserAuthCreated:         p.handleAuthCreated,
		domain.EventUserAuthDeleted:         p.handleAuthDeleted,
		domain.EventUserRolesAdded:          p.handleRolesAdded,
		domain.EventUserRolesRemoved:        p.handleRolesRemoved,
		domain.EventUserAuthPasswordUpdated: p.handlePasswordUpdated,
	}
	return p
}

// Handle applies event. A nil error means the event may be acknowledged.
func (p *UserEventProjector) Handle(ctx context.Context, event *domain.DomainEvent) error {
	handler, ok := p.handlers[event.EventType]
	if !ok || event.AggregateType != domain.AggregateTypeUser {
		p.logger.Warn("Skipping unsupported event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("aggregate_type", event.AggregateType))
		return nil
	}

	err := handler(ctx, event)
	if errors.Is(err, repository.ErrNotFound) {
		p.logger.Warn("Skipping event of unknown user",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("aggregate_id", event.AggregateID))
		return nil
	}
	return err
}

func (p *UserEventProjector) handleUserCreated(ctx context.Context, event *domain.DomainEvent) error {
	var user domain.User
	if err := event.Decode(&user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = event.AggregateID
	}

	existing, err := p.users.GetByID(ctx, user.ID)
	switch {
	case err == nil:
		return p.refresh(ctx, existing)
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("failed to get user %s: %w", user.ID, err)
	}

	count, err := p.users.Count(ctx, domain.UserFilter{BusinessID: user.BusinessID})
	if err != nil {
		return fmt.Errorf("failed to count users of business %s: %w", user.BusinessID, err)
	}
	if count == 0 {
		user.Roles = domain.UnionRoles(user.Roles, p.firstUserRoles...)
	}
	if user.Roles == nil {
		user.Roles = []string{}
	}
	user.Auth = nil
	if user.CreatedAt.IsZero() {
		user.CreatedAt = event.Timestamp
	}
	user.UpdatedAt = event.Timestamp

	if err := p.users.Create(ctx, &user); err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.ID, err)
	}
	return p.refresh(ctx, &user)
}

func (p *UserEventProjector) handleGeneralInfoUpdated(ctx context.Context, event *domain.DomainEvent) error {
	var payload domain.UserGeneralInfoPayload
	if err := event.Decode(&payload); err != nil {
		return err
	}

	user, err := p.users.UpdateGeneralInfo(ctx, event.AggregateID, payload.GeneralInfo)
	if err != nil {
		return err
	}

	if user.HasAuth() {
		err := p.idp.UpdateUser(ctx, user.Auth.UserKeycloakID, keycloak.UserRepresentation{
			FirstName: user.GeneralInfo.Name,
			LastName:  user.GeneralInfo.Lastname,
			Email:     user.GeneralInfo.Email,
		})
		if err != nil {
			return fmt.Errorf("failed to update identity of user %s: %w", user.ID, err)
		}
	}
	return p.refresh(ctx, user)
}

func (p *UserEventProjector) handleStateUpdated(ctx context.Context, event *domain.DomainEvent) error {
	state := event.EventType == domain.EventUserActivated

	user, err := p.users.UpdateState(ctx, event.AggregateID, state)
	if err != nil {
		return err
	}

	if user.HasAuth() {
		err := p.idp.UpdateUser(ctx, user.Auth.UserKeycloakID, keycloak.UserRepresentation{
			Enabled: keycloak.BoolPtr(state),
		})
		if err != nil {
			return fmt.Errorf("failed to update identity state of user %s: %w", user.ID, err)
		}
	}
	return p.refresh(ctx, user)
}

func (p *UserEventProjector) handleAuthCreated(ctx context.Context, event *domain.DomainEvent) error {
	var payload domain.UserAuthPayload
	if err := event.Decode(&payload); err != nil {
		return err
	}

	user, err := p.users.SetAuth(ctx, event.AggregateID, &domain.AuthLink{
		UserKeycloakID: payload.UserKeycloakID,
		Username:       payload.Username,
	})
	if err != nil {
		return err
	}
	return p.refresh(ctx, user)
}

func (p *UserEventProjector) handleAuthDeleted(ctx context.Context, event *domain.DomainEvent) error {
	user, err := p.users.SetAuth(ctx, event.AggregateID, nil)
	if err != nil {
		return err
	}
	return p.refresh(ctx, user)
}

func (p *UserEventProjector) handleRolesAdded(ctx context.Context, event *domain.DomainEvent) error {
	var payload domain.UserRolesPayload
	if err := event.Decode(&payload); err != nil {
		return err
	}

	user, err := p.users.AddRoles(ctx, event.AggregateID, payload.UserRoles.Roles)
	if err != nil {
		return err
	}

	if user.HasAuth() {
		realmRoles, err := resolveRealmRoles(ctx, p.idp, payload.UserRoles.Roles)
		if err != nil {
			return err
		}
		if err := p.idp.AddRealmRoleMappings(ctx, user.Auth.UserKeycloakID, realmRoles); err != nil {
			return fmt.Errorf("failed to map roles of user %s: %w", user.ID, err)
		}
	}
	return p.refresh(ctx, user)
}

func (p *UserEventProjector) handleRolesRemoved(ctx context.Context, event *domain.DomainEvent) error {
	var payload domain.UserRolesPayload
	if err := event.Decode(&payload); err != nil {
		return err
	}

	user, err := p.users.RemoveRoles(ctx, event.AggregateID, payload.UserRoles.Roles)
	if err != nil {
		return err
	}

	if user.HasAuth() {
		realmRoles, err := resolveRealmRoles(ctx, p.idp, payload.UserRoles.Roles)
		if err != nil {
			return err
		}
		if err := p.idp.DeleteRealmRoleMappings(ctx, user.Auth.UserKeycloakID, realmRoles); err != nil {
			return fmt.Errorf("failed to unmap roles of user %s: %w", user.ID, err)
		}
	}
	return p.refresh(ctx, user)
}

// The password already lives in the identity provider.
func (p *UserEventProjector) handlePasswordUpdated(_ context.Context, event *domain.DomainEvent) error {
	p.logger.Debug("Password updated", zap.String("aggregate_id", event.AggregateID))
	return nil
}

// refresh re-indexes user and notifies subscribers. Only the notification is
// required to succeed, the index is rebuilt on the next event of the user.
func (p *UserEventProjector) refresh(ctx context.Context, user *domain.User) error {
	if err := p.search.Index(ctx, user); err != nil {
		p.logger.Warn("Failed to index user", zap.Error(err), zap.String("user_id", user.ID))
	}

	if err := p.views.PublishMaterializedView(ctx, UserUpdatedSubscription, user); err != nil {
		return fmt.Errorf("failed to publish %s for user %s: %w", UserUpdatedSubscription, user.ID, err)
	}
	return nil
}
