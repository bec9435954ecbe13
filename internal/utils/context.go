package utils

import (
	"context"
	"errors"

	"github.com/kingrain94/user-management-api/internal/domain"
)

type ContextKey string

const (
	AuthTokenKey  ContextKey = "auth_token"
	BusinessIDKey ContextKey = "business_id"
)

var (
	ErrNoTokenInContext      = errors.New("no auth token found in context")
	ErrNoBusinessIDInContext = errors.New("no businessId found in auth token")
)

// WithAuthToken stores the verified caller token in ctx
func WithAuthToken(ctx context.Context, token *domain.AuthToken) context.Context {
	ctx = context.WithValue(ctx, AuthTokenKey, token)
	return context.WithValue(ctx, BusinessIDKey, token.BusinessID)
}

func GetAuthTokenFromContext(ctx context.Context) (*domain.AuthToken, error) {
	token, ok := ctx.Value(AuthTokenKey).(*domain.AuthToken)
	if !ok || token == nil {
		return nil, ErrNoTokenInContext
	}
	return token, nil
}

func GetBusinessIDFromContext(ctx context.Context) (string, error) {
	businessID, ok := ctx.Value(BusinessIDKey).(string)
	if !ok || businessID == "" {
		return "", ErrNoBusinessIDInContext
	}
	return businessID, nil
}
