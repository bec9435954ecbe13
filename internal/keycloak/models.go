package keycloak

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("keycloak: resource not found")
	ErrConflict     = errors.New("keycloak: resource already exists")
	ErrInvalidGrant = errors.New("keycloak: invalid grant")
)

// APIError is a non-2xx answer of the Admin REST API
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: keycloak returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Unwrap maps well known statuses to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	}
	return nil
}

// UserRepresentation is the Keycloak user resource
type UserRepresentation struct {
	ID               string              `json:"id,omitempty"`
	Username         string              `json:"username,omitempty"`
	Email            string              `json:"email,omitempty"`
	FirstName        string              `json:"firstName,omitempty"`
	LastName         string              `json:"lastName,omitempty"`
	Enabled          *bool               `json:"enabled,omitempty"`
	EmailVerified    *bool               `json:"emailVerified,omitempty"`
	Attributes       map[string][]string `json:"attributes,omitempty"`
	CreatedTimestamp int64               `json:"createdTimestamp,omitempty"`
}

// UserQuery filters the users listing. Empty fields are ignored.
type UserQuery struct {
	Username string
	Email    string
	Exact    bool
	Max      int
}

// CredentialRepresentation is the body of reset-password
type CredentialRepresentation struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// PasswordCredential builds a password credential.
func PasswordCredential(value string, temporary bool) CredentialRepresentation {
	return CredentialRepresentation{Type: "password", Value: value, Temporary: temporary}
}

// RoleRepresentation is a realm role
type RoleRepresentation struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Composite   bool   `json:"composite,omitempty"`
	ClientRole  bool   `json:"clientRole,omitempty"`
	ContainerID string `json:"containerId,omitempty"`
}

// TokenResponse is the answer of the OpenID Connect token endpoint
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	RefreshExpiresIn int    `json:"refresh_expires_in,omitempty"`
	TokenType        string `json:"token_type"`
}

type tokenError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
