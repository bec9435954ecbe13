package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
)

// userDocument is the indexed form of a user. The source may not carry _id.
type userDocument struct {
	ID          string             `json:"id"`
	BusinessID  string             `json:"businessId"`
	GeneralInfo domain.GeneralInfo `json:"generalInfo"`
	Auth        *domain.AuthLink   `json:"auth,omitempty"`
	Roles       []string           `json:"roles"`
	State       bool               `json:"state"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func toDocument(user *domain.User) userDocument {
	return userDocument{
		ID:          user.ID,
		BusinessID:  user.BusinessID,
		GeneralInfo: user.GeneralInfo,
		Auth:        user.Auth,
		Roles:       user.Roles,
		State:       user.State,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func (d userDocument) toUser() domain.User {
	return domain.User{
		ID:          d.ID,
		BusinessID:  d.BusinessID,
		GeneralInfo: d.GeneralInfo,
		Auth:        d.Auth,
		Roles:       d.Roles,
		State:       d.State,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type Repository struct {
	client *opensearch.Client
	config *config.OpenSearchConfig
}

func NewRepository(client *opensearch.Client, config *config.OpenSearchConfig) *Repository {
	return &Repository{
		client: client,
		config: config,
	}
}

// Index upserts the user document, keyed by the user id
func (r *Repository) Index(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(toDocument(user))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      r.config.GetIndexName(),
		DocumentID: user.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

func (r *Repository) Search(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	queryJSON, err := json.Marshal(buildSearchQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{r.config.GetIndexName()},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("search request failed: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source userDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	users := make([]domain.User, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		users = append(users, hit.Source.toUser())
	}

	return users, nil
}

// buildSearchQuery matches the filter text as a prefix of the name fields or the document id
func buildSearchQuery(filter domain.UserFilter) map[string]any {
	must := make([]map[string]any, 0)

	if filter.BusinessID != "" {
		must = append(must, map[string]any{
			"term": map[string]any{"businessId": filter.BusinessID},
		})
	}

	if term := strings.TrimSpace(filter.SearchFilter); term != "" {
		must = append(must, map[string]any{
			"bool": map[string]any{
				"should": []map[string]any{
					{
						"multi_match": map[string]any{
							"query":  term,
							"type":   "phrase_prefix",
							"fields": []string{"generalInfo.name", "generalInfo.lastname"},
						},
					},
					{
						"prefix": map[string]any{
							"generalInfo.documentId": map[string]any{"value": term, "case_insensitive": true},
						},
					},
				},
				"minimum_should_match": 1,
			},
		})
	}

	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": must,
			},
		},
		"sort": []map[string]any{
			{"createdAt": map[string]any{"order": "desc"}},
		},
	}

	if filter.Count > 0 {
		query["from"] = filter.Offset()
		query["size"] = filter.Count
	}

	return query
}

func indexMapping() string {
	return `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"businessId": { "type": "keyword" },
				"generalInfo": {
					"properties": {
						"name": { "type": "text" },
						"lastname": { "type": "text" },
						"documentType": { "type": "keyword" },
						"documentId": { "type": "keyword" },
						"email": { "type": "keyword" },
						"phone": { "type": "keyword" }
					}
				},
				"auth": {
					"properties": {
						"userKeycloakId": { "type": "keyword" },
						"username": { "type": "keyword" }
					}
				},
				"roles": { "type": "keyword" },
				"state": { "type": "boolean" },
				"createdAt": { "type": "date" },
				"updatedAt": { "type": "date" }
			}
		},
		"settings": {
			"index": {
				"number_of_shards": 1,
				"number_of_replicas": 1,
				"refresh_interval": "1s"
			}
		}
	}`
}

// EnsureIndex creates the users index when it does not exist yet
func (r *Repository) EnsureIndex(ctx context.Context) error {
	indexName := r.config.GetIndexName()

	exists := opensearchapi.IndicesExistsRequest{
		Index: []string{indexName},
	}
	res, err := exists.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	create := opensearchapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(indexMapping()),
	}

	res, err = create.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	return nil
}
