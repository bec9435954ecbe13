// Package keycloak is a client of the Keycloak Admin REST API and token endpoint.
//
// The service account token is obtained through the client credentials flow and
// cached until 30 seconds before it expires.
package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/pkg/logger"
)

type Client struct {
	baseURL        string
	realm          string
	clientID       string
	clientSecret   string
	publicClientID string

	httpClient *http.Client
	logger     *logger.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New creates a Keycloak client. publicClientID is the client end users log in
// through and is used for password and refresh grants.
func New(baseURL, realm, clientID, clientSecret, publicClientID string, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		realm:          realm,
		clientID:       clientID,
		clientSecret:   clientSecret,
		publicClientID: publicClientID,
		httpClient:     httpClient,
		logger:         log.Named("keycloak_client"),
	}
}

func (c *Client) tokenEndpoint() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.baseURL, c.realm)
}

func (c *Client) adminBaseURL() string {
	return fmt.Sprintf("%s/admin/realms/%s", c.baseURL, c.realm)
}

// getToken returns the cached service account token, refreshing it 30s before expiry.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Add(30*time.Second).Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	token, err := c.requestToken(ctx, url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	})
	if err != nil {
		return "", err
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	c.logger.Debug("service account token refreshed", zap.Time("expires_at", c.tokenExpiry))

	return c.accessToken, nil
}

func (c *Client) requestToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request keycloak token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var tokenErr tokenError
		if json.Unmarshal(body, &tokenErr) == nil && tokenErr.Error == "invalid_grant" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidGrant, tokenErr.ErrorDescription)
		}
		return nil, &APIError{Operation: "token", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to decode keycloak token: %w", err)
	}

	return &token, nil
}

// PasswordGrant exchanges end user credentials for a token.
func (c *Client) PasswordGrant(ctx context.Context, username, password string) (*TokenResponse, error) {
	return c.requestToken(ctx, url.Values{
		"grant_type": {"password"},
		"client_id":  {c.publicClientID},
		"username":   {username},
		"password":   {password},
	})
}

// RefreshGrant exchanges a refresh token for a new token.
func (c *Client) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	return c.requestToken(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.publicClientID},
		"refresh_token": {refreshToken},
	})
}

func (c *Client) doAuthorized(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get service account token: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.adminBaseURL()+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func decodeResponse(operation string, resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("%s: failed to decode keycloak response: %w", operation, err)
		}
	}

	return nil
}

func checkResponse(operation string, resp *http.Response, expectedStatus int) error {
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}

// --- Users ---

// FindUsers lists realm users matching query.
func (c *Client) FindUsers(ctx context.Context, query UserQuery) ([]UserRepresentation, error) {
	params := url.Values{}
	if query.Username != "" {
		params.Set("username", query.Username)
	}
	if query.Email != "" {
		params.Set("email", query.Email)
	}
	if query.Exact {
		params.Set("exact", "true")
	}
	if query.Max > 0 {
		params.Set("max", strconv.Itoa(query.Max))
	}

	path := "/users"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.doAuthorized(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var users []UserRepresentation
	if err := decodeResponse("FindUsers", resp, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*UserRepresentation, error) {
	resp, err := c.doAuthorized(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var user UserRepresentation
	if err := decodeResponse("GetUser", resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateUser creates a user and returns the id taken from the Location header.
func (c *Client) CreateUser(ctx context.Context, user UserRepresentation) (string, error) {
	resp, err := c.doAuthorized(ctx, http.MethodPost, "/users", user)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", &APIError{Operation: "CreateUser", StatusCode: resp.StatusCode, Body: string(body)}
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("CreateUser: missing Location header")
	}

	parts := strings.Split(strings.TrimRight(location, "/"), "/")
	return parts[len(parts)-1], nil
}

// UpdateUser applies the non-empty fields of user.
func (c *Client) UpdateUser(ctx context.Context, id string, user UserRepresentation) error {
	resp, err := c.doAuthorized(ctx, http.MethodPut, "/users/"+url.PathEscape(id), user)
	if err != nil {
		return err
	}

	return checkResponse("UpdateUser", resp, http.StatusNoContent)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.doAuthorized(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	return checkResponse("DeleteUser", resp, http.StatusNoContent)
}

func (c *Client) ResetPassword(ctx context.Context, id string, credential CredentialRepresentation) error {
	resp, err := c.doAuthorized(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/reset-password", credential)
	if err != nil {
		return err
	}

	return checkResponse("ResetPassword", resp, http.StatusNoContent)
}

// --- Roles ---

func (c *Client) ListRealmRoles(ctx context.Context) ([]RoleRepresentation, error) {
	resp, err := c.doAuthorized(ctx, http.MethodGet, "/roles", nil)
	if err != nil {
		return nil, err
	}

	var roles []RoleRepresentation
	if err := decodeResponse("ListRealmRoles", resp, &roles); err != nil {
		return nil, err
	}

	return roles, nil
}

func (c *Client) GetRealmRoleMappings(ctx context.Context, userID string) ([]RoleRepresentation, error) {
	resp, err := c.doAuthorized(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/role-mappings/realm", nil)
	if err != nil {
		return nil, err
	}

	var roles []RoleRepresentation
	if err := decodeResponse("GetRealmRoleMappings", resp, &roles); err != nil {
		return nil, err
	}

	return roles, nil
}

func (c *Client) AddRealmRoleMappings(ctx context.Context, userID string, roles []RoleRepresentation) error {
	if len(roles) == 0 {
		return nil
	}

	resp, err := c.doAuthorized(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/role-mappings/realm", roles)
	if err != nil {
		return err
	}

	return checkResponse("AddRealmRoleMappings", resp, http.StatusNoContent)
}

func (c *Client) DeleteRealmRoleMappings(ctx context.Context, userID string, roles []RoleRepresentation) error {
	if len(roles) == 0 {
		return nil
	}

	resp, err := c.doAuthorized(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID)+"/role-mappings/realm", roles)
	if err != nil {
		return err
	}

	return checkResponse("DeleteRealmRoleMappings", resp, http.StatusNoContent)
}
