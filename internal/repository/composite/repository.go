package composite

import (
	opensearchclient "github.com/opensearch-project/opensearch-go/v2"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/repository"
	"github.com/kingrain94/user-management-api/internal/repository/opensearch"
	"github.com/kingrain94/user-management-api/internal/repository/postgres"
)

type compositeRepository struct {
	postgresRepo repository.PostgresRepository
	searchRepo   repository.SearchRepository
}

func NewCompositeRepository(dbConnections *config.DatabaseConnections, osClient *opensearchclient.Client, osConfig *config.OpenSearchConfig) repository.Repository {
	return &compositeRepository{
		postgresRepo: postgres.NewPostgresRepository(dbConnections),
		searchRepo:   opensearch.NewRepository(osClient, osConfig),
	}
}

func (r *compositeRepository) User() repository.UserRepository {
	return r.postgresRepo.User()
}

func (r *compositeRepository) Event() repository.EventRepository {
	return r.postgresRepo.Event()
}

func (r *compositeRepository) Search() repository.SearchRepository {
	return r.searchRepo
}
