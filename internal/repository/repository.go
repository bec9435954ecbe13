package repository

import (
	"context"
	"errors"

	"github.com/kingrain94/user-management-api/internal/domain"
)

// ErrNotFound is returned when the requested record does not exist
var ErrNotFound = errors.New("record not found")

//go:generate mockery --name UserRepository --output ../mocks
type UserRepository interface {
	// Create inserts the user unless a user with the same id already exists
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	Count(ctx context.Context, filter domain.UserFilter) (int64, error)
	UpdateGeneralInfo(ctx context.Context, id string, info domain.GeneralInfo) (*domain.User, error)
	UpdateState(ctx context.Context, id string, state bool) (*domain.User, error)
	// SetAuth links or, with a nil auth, unlinks the identity provider account
	SetAuth(ctx context.Context, id string, auth *domain.AuthLink) (*domain.User, error)
	AddRoles(ctx context.Context, id string, roles []string) (*domain.User, error)
	RemoveRoles(ctx context.Context, id string, roles []string) (*domain.User, error)
}

//go:generate mockery --name EventRepository --output ../mocks
type EventRepository interface {
	Append(ctx context.Context, event *domain.DomainEvent) error
	ListByAggregate(ctx context.Context, aggregateType, aggregateID string) ([]domain.DomainEvent, error)
	// ListUnacknowledged returns the events not yet acknowledged by group in append order
	ListUnacknowledged(ctx context.Context, aggregateType, group string, limit int) ([]domain.DomainEvent, error)
	Acknowledge(ctx context.Context, eventID, group string) error
	IsAcknowledged(ctx context.Context, eventID, group string) (bool, error)
}

//go:generate mockery --name SearchRepository --output ../mocks
type SearchRepository interface {
	Index(ctx context.Context, user *domain.User) error
	Search(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	EnsureIndex(ctx context.Context) error
}

//go:generate mockery --name PostgresRepository --output ../mocks
type PostgresRepository interface {
	User() UserRepository
	Event() EventRepository
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	PostgresRepository
	Search() SearchRepository
}
