package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/keycloak"
	"github.com/kingrain94/user-management-api/internal/mocks"
)

func TestTokenService_GetToken(t *testing.T) {
	ctx := context.Background()
	issued := &keycloak.TokenResponse{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 300, RefreshExpiresIn: 1800}

	t.Run("password grant", func(t *testing.T) {
		issuer := mocks.NewTokenIssuer(t)
		issuer.On("PasswordGrant", ctx, "ana.lopez", "s3cret").Return(issued, nil)

		token, err := NewTokenService(issuer).GetToken(ctx, nil, dto.GetTokenArgs{Username: "ana.lopez", Password: "s3cret"})

		require.NoError(t, err)
		assert.Equal(t, &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 300, RefreshExpiresIn: 1800}, token)
	})

	t.Run("refresh token wins", func(t *testing.T) {
		issuer := mocks.NewTokenIssuer(t)
		issuer.On("RefreshGrant", ctx, "refresh").Return(issued, nil)

		_, err := NewTokenService(issuer).GetToken(ctx, nil, dto.GetTokenArgs{Username: "ana.lopez", Password: "s3cret", RefreshToken: "refresh"})

		require.NoError(t, err)
	})

	t.Run("invalid grant", func(t *testing.T) {
		issuer := mocks.NewTokenIssuer(t)
		issuer.On("PasswordGrant", ctx, "ana.lopez", "wrong").Return(nil, keycloak.ErrInvalidGrant)

		_, err := NewTokenService(issuer).GetToken(ctx, nil, dto.GetTokenArgs{Username: "ana.lopez", Password: "wrong"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentialsOrToken)
	})

	t.Run("identity provider down", func(t *testing.T) {
		issuer := mocks.NewTokenIssuer(t)
		issuer.On("RefreshGrant", ctx, "refresh").Return(nil, errors.New("connection refused"))

		_, err := NewTokenService(issuer).GetToken(ctx, nil, dto.GetTokenArgs{RefreshToken: "refresh"})

		assert.ErrorIs(t, domain.AsError(err), domain.ErrInternal)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewTokenService(mocks.NewTokenIssuer(t)).GetToken(ctx, nil, dto.GetTokenArgs{Username: "ana.lopez"})

		assert.ErrorIs(t, err, domain.ErrMissingData)
	})
}
