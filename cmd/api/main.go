package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/docs"
	"github.com/kingrain94/user-management-api/internal/api"
	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/auth"
	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/gateway"
	"github.com/kingrain94/user-management-api/internal/middleware"
	"github.com/kingrain94/user-management-api/internal/repository/composite"
	"github.com/kingrain94/user-management-api/internal/repository/postgres"
	"github.com/kingrain94/user-management-api/internal/service"
	"github.com/kingrain94/user-management-api/internal/service/pubsub"
	"github.com/kingrain94/user-management-api/internal/service/queue"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

// @title           User Management Swagger API
// @version         1.0
// @description     Command and query side of the user management service.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	runMigrations := flag.Bool("migrate", false, "apply database migrations before starting")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	roles, err := config.LoadRoleConfig()
	if err != nil {
		appLogger.Fatal("Failed to load role config", err)
	}

	if *runMigrations {
		if err := postgres.Migrate(config.WriterMigrationURL(), appLogger); err != nil {
			appLogger.Fatal("Failed to migrate database", err)
		}
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	appLogger.Info("Database connections established - writer and reader connected")

	// Initialize OpenSearch
	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := repo.Search().EnsureIndex(startupCtx); err != nil {
		// search falls back to the profile store
		appLogger.Warn("Failed to ensure search index", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	redisPubSub := pubsub.NewRedisPubSub(redisClient, appLogger)
	defer redisPubSub.Close()
	views := pubsub.NewMaterializedViewChannel(redisPubSub, cfg.MaterializedViewTopic)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	keycloakClient := config.DefaultKeycloakConfig().GetClient(appLogger)

	verifier, err := auth.NewVerifier(startupCtx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize token verifier", err)
	}

	// Initialize services
	eventStore := service.NewEventStore(repo.Event(), sqsService, appLogger)
	userService := service.NewUserService(repo, keycloakClient, eventStore, sqsService, roles, appLogger)
	tokenService := service.NewTokenService(keycloakClient)

	// Gateways
	userGateway := gateway.NewAdapter(cfg.GatewayName, redisPubSub, verifier, cfg.RequestTimeout, appLogger)
	gateway.RegisterUserManagement(userGateway, userService)

	salesGateway := gateway.NewAdapter(cfg.SalesGatewayName, redisPubSub, verifier, cfg.RequestTimeout, appLogger)
	gateway.RegisterSales(salesGateway, tokenService)

	listenCtx, stopListening := context.WithCancel(context.Background())
	defer stopListening()

	for _, g := range []*gateway.Adapter{userGateway, salesGateway} {
		go func(g *gateway.Adapter) {
			appLogger.Info("Listening for gateway operations", zap.String("gateway", g.Name()), zap.Int("operations", len(g.Topics())))
			if err := g.Listen(listenCtx); err != nil {
				appLogger.Fatal("Lost broker subscription", err, zap.String("gateway", g.Name()))
			}
		}(g)
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(verifier, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)

	// Initialize server
	server := api.NewServer(
		[]api.Dispatcher{userGateway, salesGateway},
		views,
		authMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
		cfg.GlobalRateLimit,
		appLogger,
	)
	server.StartSubscriptionHub()

	// Initialize router
	router := gin.Default()
	router.Use(middleware.Metrics())

	// Swagger documentation endpoint
	docs.SwaggerInfo.Title = "User Management API"
	docs.SwaggerInfo.Description = "Command and query side of the user management service"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	stopListening()
	server.StopSubscriptionHub()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
