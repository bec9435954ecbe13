package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/middleware"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

type Server struct {
	graphql       *GraphQLHandler
	subscriptions *SubscriptionHandler
	auth          *middleware.AuthMiddleware
	rateLimit     *middleware.RateLimitMiddleware
	validation    *middleware.ValidationMiddleware
	globalLimit   int
}

func NewServer(
	gateways []Dispatcher,
	views ViewSource,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	globalLimit int,
	logger *logger.Logger,
) *Server {
	return &Server{
		graphql:       NewGraphQLHandler(gateways...),
		subscriptions: NewSubscriptionHandler(views, logger),
		auth:          auth,
		rateLimit:     rateLimit,
		validation:    validation,
		globalLimit:   globalLimit,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	// Apply security middleware first
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.SanitizeInput())
	api.Use(s.validation.ValidateRequestSize(1 * 1024 * 1024)) // 1MB max
	api.Use(s.validation.ValidateContentType("application/json"))

	api.Use(s.rateLimit.GlobalRateLimit(s.globalLimit))

	{
		// the adapter answers missing or invalid tokens inside the envelope
		api.POST("/graphql/:gateway/:kind/:name", s.auth.OptionalJWTAuth(), s.rateLimit.BusinessRateLimit(), s.graphql.Execute)

		subscriptions := api.Group("/subscriptions", s.auth.JWTAuth(), s.auth.RequireAnyRole(domain.RolePlatformAdmin, domain.RoleBusinessOwner))
		{
			subscriptions.GET("/user-updated", s.subscriptions.UserUpdated)
		}
	}
}

// StartSubscriptionHub starts pushing user updates to websocket clients
func (s *Server) StartSubscriptionHub() {
	go s.subscriptions.Start()
}

func (s *Server) StopSubscriptionHub() {
	s.subscriptions.Stop()
}
