package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/keycloak"
)

// TokenService issues end user tokens for the sales gateway. Callers are not
// authenticated.
type TokenService struct {
	issuer TokenIssuer
}

func NewTokenService(issuer TokenIssuer) *TokenService {
	return &TokenService{issuer: issuer}
}

// GetToken uses the refresh token when one is given, the password grant otherwise.
func (s *TokenService) GetToken(ctx context.Context, _ *domain.AuthToken, args dto.GetTokenArgs) (*dto.TokenResponse, error) {
	const method = "getToken"

	var (
		token *keycloak.TokenResponse
		err   error
	)
	switch {
	case args.RefreshToken != "":
		token, err = s.issuer.RefreshGrant(ctx, args.RefreshToken)
	case args.Username != "" && args.Password != "":
		token, err = s.issuer.PasswordGrant(ctx, args.Username, args.Password)
	default:
		return nil, domain.ErrMissingData.In(method)
	}

	if err != nil {
		if errors.Is(err, keycloak.ErrInvalidGrant) {
			return nil, domain.ErrInvalidCredentialsOrToken.In(method)
		}
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      token.AccessToken,
		RefreshToken:     token.RefreshToken,
		ExpiresIn:        token.ExpiresIn,
		RefreshExpiresIn: token.RefreshExpiresIn,
	}, nil
}
