package config

import (
	"net/http"
	"time"

	"github.com/kingrain94/user-management-api/internal/keycloak"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

type KeycloakConfig struct {
	BaseURL        string
	Realm          string
	ClientID       string
	ClientSecret   string
	PublicClientID string
	Timeout        time.Duration
}

// DefaultKeycloakConfig returns the Keycloak backend configuration from environment variables
func DefaultKeycloakConfig() *KeycloakConfig {
	return &KeycloakConfig{
		BaseURL:        getEnvWithDefault("KEYCLOAK_BACKEND_BASE_URL", "http://localhost:8080"),
		Realm:          getEnvWithDefault("KEYCLOAK_BACKEND_REALM_NAME", "DEV_EMI"),
		ClientID:       getEnvWithDefault("KEYCLOAK_BACKEND_CLIENT_ID", "user-management"),
		ClientSecret:   getEnvWithDefault("KEYCLOAK_BACKEND_CLIENT_SECRET", ""),
		PublicClientID: getEnvWithDefault("KEYCLOAK_CLIENT_ID", "emi"),
		Timeout:        getEnvDurationWithDefault("KEYCLOAK_TIMEOUT", 10*time.Second),
	}
}

func (c *KeycloakConfig) GetClient(log *logger.Logger) *keycloak.Client {
	httpClient := &http.Client{Timeout: c.Timeout}
	return keycloak.New(c.BaseURL, c.Realm, c.ClientID, c.ClientSecret, c.PublicClientID, httpClient, log)
}
