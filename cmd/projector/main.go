package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/repository/composite"
	"github.com/kingrain94/user-management-api/internal/repository/postgres"
	"github.com/kingrain94/user-management-api/internal/service"
	"github.com/kingrain94/user-management-api/internal/service/pubsub"
	"github.com/kingrain94/user-management-api/internal/service/queue"
	"github.com/kingrain94/user-management-api/internal/worker"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

func main() {
	runMigrations := flag.Bool("migrate", false, "apply database migrations before starting")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

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

	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	redisClient, err := config.DefaultRedisConfig().GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	views := pubsub.NewMaterializedViewChannel(pubsub.NewRedisPubSub(redisClient, appLogger), cfg.MaterializedViewTopic)

	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	keycloakClient := config.DefaultKeycloakConfig().GetClient(appLogger)

	projector := service.NewUserEventProjector(repo, keycloakClient, views, roles, appLogger)

	workerConfig := config.DefaultWorkerConfig()
	eventWorker := worker.NewEventWorker(sqsService, repo.Event(), projector, worker.EventWorkerConfig{
		QueueURL:               sqsService.EventQueueURL(),
		ConsumerGroup:          cfg.ConsumerGroup,
		WorkerCount:            workerConfig.EventWorkers,
		PollInterval:           workerConfig.PollInterval,
		MaxConsecutiveFailures: workerConfig.MaxConsecutiveFailures,
	}, appLogger)

	// Events that missed the queue are applied before live delivery starts
	replayCtx, cancelReplay := context.WithTimeout(context.Background(), 5*time.Minute)
	replayed, err := eventWorker.Replay(replayCtx)
	cancelReplay()
	if err != nil {
		appLogger.Fatal("Failed to replay unacknowledged events", err, zap.Int("replayed", replayed))
	}

	eventWorker.Start()
	appLogger.Info("Projector started", zap.String("consumer_group", cfg.ConsumerGroup))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-eventWorker.Err():
		appLogger.Fatal("Event queue unavailable", err)
	}

	appLogger.Info("Shutting down projector...")
	eventWorker.Stop()
	appLogger.Info("Projector stopped")
	appLogger.Sync()
}
