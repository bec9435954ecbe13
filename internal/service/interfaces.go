package service

import (
	"context"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/keycloak"
)

//go:generate mockery --name IdentityProvider --output ../mocks
type IdentityProvider interface {
	FindUsers(ctx context.Context, query keycloak.UserQuery) ([]keycloak.UserRepresentation, error)
	GetUser(ctx context.Context, id string) (*keycloak.UserRepresentation, error)
	CreateUser(ctx context.Context, user keycloak.UserRepresentation) (string, error)
	UpdateUser(ctx context.Context, id string, user keycloak.UserRepresentation) error
	DeleteUser(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id string, credential keycloak.CredentialRepresentation) error
	ListRealmRoles(ctx context.Context) ([]keycloak.RoleRepresentation, error)
	GetRealmRoleMappings(ctx context.Context, userID string) ([]keycloak.RoleRepresentation, error)
	AddRealmRoleMappings(ctx context.Context, userID string, roles []keycloak.RoleRepresentation) error
	DeleteRealmRoleMappings(ctx context.Context, userID string, roles []keycloak.RoleRepresentation) error
}

//go:generate mockery --name TokenIssuer --output ../mocks
type TokenIssuer interface {
	PasswordGrant(ctx context.Context, username, password string) (*keycloak.TokenResponse, error)
	RefreshGrant(ctx context.Context, refreshToken string) (*keycloak.TokenResponse, error)
}

//go:generate mockery --name EventEmitter --output ../mocks
type EventEmitter interface {
	Emit(ctx context.Context, event *domain.DomainEvent) error
}

//go:generate mockery --name EventQueue --output ../mocks
type EventQueue interface {
	SendEvent(ctx context.Context, event *domain.DomainEvent) error
}

//go:generate mockery --name HistoryScheduler --output ../mocks
type HistoryScheduler interface {
	SendHistoryExport(ctx context.Context, aggregateID, businessID, requestedBy string) error
}

//go:generate mockery --name ViewPublisher --output ../mocks
type ViewPublisher interface {
	PublishMaterializedView(ctx context.Context, viewType string, data any) error
}
