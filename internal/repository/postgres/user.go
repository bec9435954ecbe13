package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/user-management-api/internal/domain"
)

type UserRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewUserRepository(writerDB, readerDB *gorm.DB) *UserRepository {
	return &UserRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Roles == nil {
		user.Roles = []string{}
	}
	return r.writerDB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.readerDB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.readerDB.WithContext(ctx).
		Where("LOWER(general_info_email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	var users []domain.User

	query := r.applyFilter(r.readerDB.WithContext(ctx).Model(&domain.User{}), filter).
		Order("created_at DESC")

	if filter.Count > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Count)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, filter domain.UserFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.readerDB.WithContext(ctx).Model(&domain.User{}), filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) applyFilter(query *gorm.DB, filter domain.UserFilter) *gorm.DB {
	if filter.BusinessID != "" {
		query = query.Where("business_id = ?", filter.BusinessID)
	}
	if term := strings.TrimSpace(filter.SearchFilter); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		query = query.Where("general_info_name ILIKE ? OR general_info_lastname ILIKE ? OR general_info_document_id ILIKE ?",
			pattern, pattern, pattern)
	}
	return query
}

func (r *UserRepository) UpdateGeneralInfo(ctx context.Context, id string, info domain.GeneralInfo) (*domain.User, error) {
	return r.mutate(ctx, id, func(user *domain.User) {
		user.GeneralInfo = info
	})
}

func (r *UserRepository) UpdateState(ctx context.Context, id string, state bool) (*domain.User, error) {
	return r.mutate(ctx, id, func(user *domain.User) {
		user.State = state
	})
}

func (r *UserRepository) SetAuth(ctx context.Context, id string, auth *domain.AuthLink) (*domain.User, error) {
	return r.mutate(ctx, id, func(user *domain.User) {
		user.Auth = auth
	})
}

func (r *UserRepository) AddRoles(ctx context.Context, id string, roles []string) (*domain.User, error) {
	return r.mutate(ctx, id, func(user *domain.User) {
		user.Roles = domain.UnionRoles(user.Roles, roles...)
	})
}

func (r *UserRepository) RemoveRoles(ctx context.Context, id string, roles []string) (*domain.User, error) {
	return r.mutate(ctx, id, func(user *domain.User) {
		user.Roles = domain.SubtractRoles(user.Roles, roles...)
	})
}

// mutate loads the row under a FOR UPDATE lock, applies fn and saves it.
func (r *UserRepository) mutate(ctx context.Context, id string, fn func(user *domain.User)) (*domain.User, error) {
	var user domain.User

	err := r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		fn(&user)
		if user.Roles == nil {
			user.Roles = []string{}
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
