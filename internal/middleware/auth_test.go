package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/mocks"
	"github.com/kingrain94/user-management-api/internal/utils"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	verifier *mocks.TokenVerifier
	auth     *AuthMiddleware
	owner    *domain.AuthToken
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.verifier = mocks.NewTokenVerifier(s.T())
	s.auth = NewAuthMiddleware(s.verifier, logger.NewNop())
	s.owner = &domain.AuthToken{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "owner-1"},
		BusinessID:       "biz-1",
		RealmAccess:      domain.RealmAccess{Roles: []string{"BUSINESS-OWNER"}},
	}
}

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) serve(handlers []gin.HandlerFunc, target, header string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/protected", append(handlers, func(c *gin.Context) {
		token, err := utils.GetAuthTokenFromContext(c.Request.Context())
		if err != nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, token.UserID())
	})...)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestJWTAuth_BearerHeader() {
	// Arrange
	s.verifier.On("Verify", "good").Return(s.owner, nil)

	// Act
	w := s.serve([]gin.HandlerFunc{s.auth.JWTAuth()}, "/protected", "Bearer good")

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.Equal("owner-1", w.Body.String())
}

func (s *AuthMiddlewareTestSuite) TestJWTAuth_QueryToken() {
	s.verifier.On("Verify", "good").Return(s.owner, nil)

	w := s.serve([]gin.HandlerFunc{s.auth.JWTAuth()}, "/protected?token=good", "")

	s.Equal(http.StatusOK, w.Code)
	s.Equal("owner-1", w.Body.String())
}

func (s *AuthMiddlewareTestSuite) TestJWTAuth_MissingToken() {
	w := s.serve([]gin.HandlerFunc{s.auth.JWTAuth()}, "/protected", "")

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestJWTAuth_MalformedHeader() {
	w := s.serve([]gin.HandlerFunc{s.auth.JWTAuth()}, "/protected", "Basic dXNlcjpwYXNz")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.verifier.AssertNotCalled(s.T(), "Verify", mock.Anything)
}

func (s *AuthMiddlewareTestSuite) TestJWTAuth_InvalidToken() {
	s.verifier.On("Verify", "expired").Return(nil, errors.New("token is expired"))

	w := s.serve([]gin.HandlerFunc{s.auth.JWTAuth()}, "/protected", "Bearer expired")

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestOptionalJWTAuth_InvalidTokenPassesThrough() {
	s.verifier.On("Verify", "expired").Return(nil, errors.New("token is expired"))

	w := s.serve([]gin.HandlerFunc{s.auth.OptionalJWTAuth()}, "/protected", "Bearer expired")

	s.Equal(http.StatusOK, w.Code)
	s.Equal("anonymous", w.Body.String())
}

func (s *AuthMiddlewareTestSuite) TestRequireAnyRole_Allowed() {
	s.verifier.On("Verify", "good").Return(s.owner, nil)

	w := s.serve([]gin.HandlerFunc{s.auth.JWTAuth(), s.auth.RequireAnyRole(domain.RolePlatformAdmin, domain.RoleBusinessOwner)}, "/protected", "Bearer good")

	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestRequireAnyRole_Forbidden() {
	s.verifier.On("Verify", "good").Return(s.owner, nil)

	w := s.serve([]gin.HandlerFunc{s.auth.JWTAuth(), s.auth.RequireAnyRole(domain.RolePlatformAdmin)}, "/protected", "Bearer good")

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestRequireAnyRole_Anonymous() {
	w := s.serve([]gin.HandlerFunc{s.auth.RequireAnyRole(domain.RolePlatformAdmin)}, "/protected", "")

	s.Equal(http.StatusUnauthorized, w.Code)
}
