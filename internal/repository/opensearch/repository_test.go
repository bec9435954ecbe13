package opensearch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/user-management-api/internal/domain"
)

func TestBuildSearchQuery(t *testing.T) {
	query := buildSearchQuery(domain.UserFilter{BusinessID: "b1", SearchFilter: " jo ", Page: 2, Count: 5})

	assert.Equal(t, 10, query["from"])
	assert.Equal(t, 5, query["size"])

	raw, err := json.Marshal(query)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `"term":{"businessId":"b1"}`)
	assert.Contains(t, body, `"query":"jo"`)
	assert.Contains(t, body, `"generalInfo.documentId"`)
	assert.Contains(t, body, `"createdAt":{"order":"desc"}`)
}

func TestBuildSearchQuery_NoCriteria(t *testing.T) {
	query := buildSearchQuery(domain.UserFilter{})

	_, hasFrom := query["from"]
	assert.False(t, hasFrom)

	boolQuery := query["query"].(map[string]any)["bool"].(map[string]any)
	assert.Empty(t, boolQuery["must"])
}

func TestIndexMapping_IsValidJSON(t *testing.T) {
	var mapping map[string]any
	require.NoError(t, json.Unmarshal([]byte(indexMapping()), &mapping))
	assert.Contains(t, mapping, "mappings")
}

func TestUserDocument_RoundTrip(t *testing.T) {
	user := &domain.User{
		ID:          "u1",
		BusinessID:  "b1",
		GeneralInfo: domain.GeneralInfo{Name: "John", Email: "john@example.com"},
		Auth:        &domain.AuthLink{UserKeycloakID: "kc-1", Username: "john.doe1"},
		Roles:       []string{"POS"},
		State:       true,
	}

	raw, err := json.Marshal(toDocument(user))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"_id"`)

	var doc userDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, *user, doc.toUser())
}
