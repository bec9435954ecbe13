package service

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/repository"
)

func ownerToken(sub, businessID string) *domain.AuthToken {
	return &domain.AuthToken{
		RegisteredClaims:  jwt.RegisteredClaims{Subject: sub},
		PreferredUsername: "owner." + sub,
		BusinessID:        businessID,
		RealmAccess:       domain.RealmAccess{Roles: []string{"BUSINESS-OWNER"}},
	}
}

func adminToken(sub string) *domain.AuthToken {
	return &domain.AuthToken{
		RegisteredClaims:  jwt.RegisteredClaims{Subject: sub},
		PreferredUsername: "admin." + sub,
		RealmAccess:       domain.RealmAccess{Roles: []string{"PLATFORM-ADMIN"}},
	}
}

func posToken(sub, businessID string) *domain.AuthToken {
	return &domain.AuthToken{
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
		BusinessID:       businessID,
		RealmAccess:      domain.RealmAccess{Roles: []string{"POS"}},
	}
}

func testRoleConfig() *config.RoleConfig {
	return &config.RoleConfig{
		AllowedToAssign: map[string][]string{
			"PLATFORM-ADMIN": {"BUSINESS-OWNER", "POS", "SYSADMIN"},
			"BUSINESS-OWNER": {"POS"},
		},
		FirstUserRoles: []string{"BUSINESS-OWNER"},
	}
}

func testGeneralInfo(email string) *domain.GeneralInfo {
	return &domain.GeneralInfo{
		Name:         "Ana",
		Lastname:     "Lopez",
		DocumentType: "CC",
		DocumentID:   "1020",
		Email:        email,
		Phone:        "3001234567",
	}
}

func storedUser(id, businessID string) *domain.User {
	return &domain.User{
		ID:          id,
		BusinessID:  businessID,
		GeneralInfo: *testGeneralInfo(id + "@example.com"),
		Roles:       []string{"POS"},
		State:       true,
	}
}

func linkedUser(id, businessID, keycloakID string) *domain.User {
	user := storedUser(id, businessID)
	user.Auth = &domain.AuthLink{UserKeycloakID: keycloakID, Username: "user." + id}
	return user
}

// memoryUserRepository is an in-memory profile store for projector round trips.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]domain.User{}}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		r.users[user.ID] = *user
	}
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.GeneralInfo.Email == email {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepository) List(_ context.Context, filter domain.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []domain.User
	for _, user := range r.users {
		if filter.BusinessID == "" || user.BusinessID == filter.BusinessID {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *memoryUserRepository) Count(ctx context.Context, filter domain.UserFilter) (int64, error) {
	users, _ := r.List(ctx, filter)
	return int64(len(users)), nil
}

func (r *memoryUserRepository) UpdateGeneralInfo(_ context.Context, id string, info domain.GeneralInfo) (*domain.User, error) {
	return r.mutate(id, func(user *domain.User) { user.GeneralInfo = info })
}

func (r *memoryUserRepository) UpdateState(_ context.Context, id string, state bool) (*domain.User, error) {
	return r.mutate(id, func(user *domain.User) { user.State = state })
}

func (r *memoryUserRepository) SetAuth(_ context.Context, id string, auth *domain.AuthLink) (*domain.User, error) {
	return r.mutate(id, func(user *domain.User) { user.Auth = auth })
}

func (r *memoryUserRepository) AddRoles(_ context.Context, id string, roles []string) (*domain.User, error) {
	return r.mutate(id, func(user *domain.User) { user.Roles = domain.UnionRoles(user.Roles, roles...) })
}

func (r *memoryUserRepository) RemoveRoles(_ context.Context, id string, roles []string) (*domain.User, error) {
	return r.mutate(id, func(user *domain.User) { user.Roles = domain.SubtractRoles(user.Roles, roles...) })
}

func (r *memoryUserRepository) mutate(id string, fn func(user *domain.User)) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(&user)
	r.users[id] = user
	return &user, nil
}
