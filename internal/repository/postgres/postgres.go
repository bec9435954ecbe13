package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/repository"
)

type postgresRepository struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.PostgresRepository {
	return &postgresRepository{
		userRepo:  NewUserRepository(dbConnections.Writer, dbConnections.Reader),
		eventRepo: NewEventRepository(dbConnections.Writer, dbConnections.Reader),
	}
}

func (r *postgresRepository) User() repository.UserRepository {
	return r.userRepo
}

func (r *postgresRepository) Event() repository.EventRepository {
	return r.eventRepo
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
