package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/repository/postgres"
	"github.com/kingrain94/user-management-api/internal/service/queue"
	"github.com/kingrain94/user-management-api/internal/worker"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	// Initialize PostgreSQL with database connections
	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	postgresRepo := postgres.NewPostgresRepository(dbConnections)

	appLogger.Info("Database connections established for archive worker")

	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to create S3 client", err)
	}

	workerConfig := config.DefaultWorkerConfig()
	archiveWorker := worker.NewArchiveWorker(
		sqsService,
		sqsService.HistoryQueueURL(),
		postgresRepo.Event(),
		appLogger,
		workerConfig.ArchiveWorkers,
		workerConfig.PollInterval,
		s3Client,
		s3Config,
	)

	archiveWorker.Start()
	appLogger.Info("Archive worker started")

	// Wait for interrupt signal to gracefully shutdown the worker
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	archiveWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
