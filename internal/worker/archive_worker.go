package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/repository"
	"github.com/kingrain94/user-management-api/internal/service/queue"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

//go:generate mockery --name ObjectUploader --output ../mocks
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// HistoryArchive is the document written for an exportUserHistory request
type HistoryArchive struct {
	AggregateType string               `json:"aggregateType"`
	AggregateID   string               `json:"aggregateId"`
	BusinessID    string               `json:"businessId"`
	RequestedBy   string               `json:"requestedBy"`
	RequestedAt   time.Time            `json:"requestedAt"`
	ArchivedAt    time.Time            `json:"archivedAt"`
	EventCount    int                  `json:"eventCount"`
	Events        []domain.DomainEvent `json:"events"`
}

// ArchiveWorker writes the event history of an aggregate to S3 for every
// history export request found on the history queue.
type ArchiveWorker struct {
	queue        MessageQueue
	queueURL     string
	events       repository.EventRepository
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
	s3Client     ObjectUploader
	s3Config     *config.S3Config
	now          func() time.Time
}

func NewArchiveWorker(
	queue MessageQueue,
	queueURL string,
	events repository.EventRepository,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
	s3Client ObjectUploader,
	s3Config *config.S3Config,
) *ArchiveWorker {
	return &ArchiveWorker{
		queue:        queue,
		queueURL:     queueURL,
		events:       events,
		logger:       logger.Named("archive_worker"),
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10,
		waitTime:     20,
		shutdownChan: make(chan struct{}),
		s3Client:     s3Client,
		s3Config:     s3Config,
		now:          time.Now,
	}
}

func (w *ArchiveWorker) Start() {
	w.logger.Info("Starting Archive workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *ArchiveWorker) Stop() {
	w.logger.Info("Stopping Archive workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All Archive workers stopped")
}

func (w *ArchiveWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Archive Worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Archive Worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(context.Background()); err != nil {
				w.logger.Errorf("Archive Worker %d failed to process messages: %v", workerID, err)
			}
		}
	}
}

func (w *ArchiveWorker) processMessages(ctx context.Context) error {
	messages, err := w.queue.ReceiveMessages(ctx, w.queueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if msg.DecodeErr == nil && msg.Message.Type == queue.MessageTypeHistoryExport {
			if _, err := w.exportHistory(ctx, msg.Message); err != nil {
				w.logger.Error("Failed to export history", err, zap.String("aggregate_id", msg.Message.AggregateID))
				continue
			}
		} else {
			w.logger.Warn("Dropping unexpected message on history queue", zap.String("type", string(msg.Message.Type)))
		}

		// Only delete the message if processing was successful
		if err := w.queue.DeleteMessage(ctx, w.queueURL, msg.ReceiptHandle); err != nil {
			w.logger.Error("Failed to delete message", err)
		}
	}

	return nil
}

// exportHistory uploads the archive and returns its object key
func (w *ArchiveWorker) exportHistory(ctx context.Context, msg queue.Message) (string, error) {
	aggregateType := msg.AggregateType
	if aggregateType == "" {
		aggregateType = domain.AggregateTypeUser
	}

	events, err := w.events.ListByAggregate(ctx, aggregateType, msg.AggregateID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch events of %s %s: %w", aggregateType, msg.AggregateID, err)
	}
	if events == nil {
		events = []domain.DomainEvent{}
	}

	archivedAt := w.now().UTC()
	archive := HistoryArchive{
		AggregateType: aggregateType,
		AggregateID:   msg.AggregateID,
		BusinessID:    msg.BusinessID,
		RequestedBy:   msg.RequestedBy,
		RequestedAt:   msg.Timestamp,
		ArchivedAt:    archivedAt,
		EventCount:    len(events),
		Events:        events,
	}

	jsonData, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal history to JSON: %w", err)
	}

	key := historyKey(w.s3Config.KeyPrefix, msg.BusinessID, msg.AggregateID, archivedAt)
	_, err = w.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jsonData),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"aggregate-id": msg.AggregateID,
			"business-id":  msg.BusinessID,
			"requested-by": msg.RequestedBy,
			"event-count":  strconv.Itoa(len(events)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload history to S3: %w", err)
	}

	w.logger.Info("History exported",
		zap.String("bucket", w.s3Config.BucketName),
		zap.String("key", key),
		zap.Int("events", len(events)))
	return key, nil
}

func historyKey(prefix, businessID, aggregateID string, at time.Time) string {
	if businessID == "" {
		businessID = "no-business"
	}
	return fmt.Sprintf("%s/%s/%s/history_%s.json", prefix, businessID, aggregateID, at.Format("2006-01-02_15-04-05"))
}
