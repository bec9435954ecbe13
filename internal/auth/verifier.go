// Package auth verifies the RS256 access tokens issued by Keycloak.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

var ErrMissingToken = errors.New("missing token")

const (
	jwksRefreshInterval = 10 * time.Minute
	jwksClientTimeout   = 10 * time.Second
	leeway              = 30 * time.Second
)

type Verifier struct {
	keyfunc jwt.Keyfunc
	issuer  string
}

// NewVerifier uses the JWKS endpoint when one is configured and the static
// public key otherwise.
func NewVerifier(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Verifier, error) {
	if cfg.JWKSURL != "" {
		return NewJWKSVerifier(ctx, cfg.JWKSURL, cfg.JWTIssuer, log)
	}
	return NewPEMVerifier(cfg.JWTPublicKey, cfg.JWTIssuer)
}

func NewPEMVerifier(publicKeyPEM, issuer string) (*Verifier, error) {
	if strings.TrimSpace(publicKeyPEM) == "" {
		return nil, errors.New("JWT_PUBLIC_KEY or JWT_JWKS_URL is required")
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT public key: %w", err)
	}

	return NewVerifierWithKeyfunc(func(*jwt.Token) (any, error) {
		return key, nil
	}, issuer), nil
}

// NewJWKSVerifier keeps the key set of jwksURL refreshed in the background.
// Startup does not fail while Keycloak is still unreachable.
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer string, log *logger.Logger) (*Verifier, error) {
	u, err := url.ParseRequestURI(jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS storage: failed to parse given URL %q: %w", jwksURL, err)
	}
	storage, err := jwkset.NewStorageFromHTTP(u, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: jwksClientTimeout},
		Ctx:                       ctx,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           jwksRefreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			log.Error("Failed to refresh JWKS", err, zap.String("url", jwksURL))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{
		Ctx:     ctx,
		Storage: storage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create keyfunc: %w", err)
	}

	return NewVerifierWithKeyfunc(k.Keyfunc, issuer), nil
}

func NewVerifierWithKeyfunc(kf jwt.Keyfunc, issuer string) *Verifier {
	return &Verifier{keyfunc: kf, issuer: issuer}
}

// Verify parses a raw or "Bearer " prefixed token.
func (v *Verifier) Verify(raw string) (*domain.AuthToken, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 6 && strings.EqualFold(raw[:6], "bearer") && (len(raw) == 6 || raw[6] == ' ' || raw[6] == '\t') {
		raw = strings.TrimSpace(raw[6:])
	}
	if raw == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &domain.AuthToken{}
	if _, err := jwt.ParseWithClaims(raw, claims, v.keyfunc, opts...); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("invalid token: missing subject")
	}
	return claims, nil
}
