package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/utils"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

//go:generate mockery --name TokenVerifier --output ../mocks
type TokenVerifier interface {
	Verify(raw string) (*domain.AuthToken, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *logger.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// JWTAuth rejects requests without a valid token. Browsers cannot set headers
// on websocket upgrades, so the token query parameter is accepted as well.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := rawToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		token, err := m.verifier.Verify(raw)
		if err != nil {
			m.logger.Debug("Rejected token", zap.Error(err), zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		setAuthToken(c, token)
		c.Next()
	}
}

// OptionalJWTAuth stores the caller token when a valid one is present and
// never aborts. The gateway adapter answers invalid tokens itself.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := rawToken(c); raw != "" {
			if token, err := m.verifier.Verify(raw); err == nil {
				setAuthToken(c, token)
			}
		}
		c.Next()
	}
}

// RequireAnyRole checks the caller holds at least one of roles
func (m *AuthMiddleware) RequireAnyRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := utils.GetAuthTokenFromContext(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authentication found"})
			return
		}

		if !domain.HasAnyRole(token.Roles(), roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

func setAuthToken(c *gin.Context, token *domain.AuthToken) {
	c.Set(string(utils.AuthTokenKey), token)
	c.Request = c.Request.WithContext(utils.WithAuthToken(c.Request.Context(), token))
}

func rawToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return c.Query("token")
}
