package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/repository"
	"github.com/kingrain94/user-management-api/internal/service/queue"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

const replayBatchSize = 100

var (
	eventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_management_events_processed_total",
			Help: "Domain events handled by the projector",
		},
		[]string{"event_type", "result"},
	)

	receiveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_management_event_receive_failures_total",
			Help: "Failed receives from the event queue",
		},
	)
)

// ErrTooManyReceiveFailures is reported on Err when the queue stays unreachable
var ErrTooManyReceiveFailures = errors.New("too many consecutive receive failures")

//go:generate mockery --name EventHandler --output ../mocks
type EventHandler interface {
	Handle(ctx context.Context, event *domain.DomainEvent) error
}

//go:generate mockery --name MessageQueue --output ../mocks
type MessageQueue interface {
	ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedMessage, error)
	DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error
}

type EventWorkerConfig struct {
	QueueURL               string
	ConsumerGroup          string
	WorkerCount            int
	PollInterval           time.Duration
	MaxConsecutiveFailures int
}

// EventWorker feeds domain events to the projector. Events are acknowledged
// for the consumer group only after they were applied, then removed from the
// queue, so a crash in between causes a redelivery and never a loss.
type EventWorker struct {
	queue        MessageQueue
	events       repository.EventRepository
	handler      EventHandler
	config       EventWorkerConfig
	logger       *logger.Logger
	maxMessages  int32
	waitTime     int32
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
	errChan      chan error

	failureMu sync.Mutex
	failures  int
}

func NewEventWorker(
	queue MessageQueue,
	events repository.EventRepository,
	handler EventHandler,
	config EventWorkerConfig,
	logger *logger.Logger,
) *EventWorker {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 1
	}
	if config.MaxConsecutiveFailures <= 0 {
		config.MaxConsecutiveFailures = 5
	}

	return &EventWorker{
		queue:        queue,
		events:       events,
		handler:      handler,
		config:       config,
		logger:       logger.Named("event_worker"),
		maxMessages:  10, // Process up to 10 messages at a time
		waitTime:     20, // Long polling: wait up to 20 seconds for messages
		shutdownChan: make(chan struct{}),
		errChan:      make(chan error, 1),
	}
}

// Replay applies, in store order, every event the consumer group has not
// acknowledged yet. It stops at the first event that fails.
func (w *EventWorker) Replay(ctx context.Context) (int, error) {
	replayed := 0
	for {
		pending, err := w.events.ListUnacknowledged(ctx, domain.AggregateTypeUser, w.config.ConsumerGroup, replayBatchSize)
		if err != nil {
			return replayed, fmt.Errorf("failed to list unacknowledged events: %w", err)
		}
		if len(pending) == 0 {
			w.logger.Info("Replay finished", zap.Int("replayed", replayed))
			return replayed, nil
		}

		for i := range pending {
			event := &pending[i]
			if err := w.apply(ctx, event); err != nil {
				return replayed, fmt.Errorf("failed to replay event %s: %w", event.ID, err)
			}
			replayed++
		}
	}
}

func (w *EventWorker) Start() {
	w.logger.Info("Starting event workers...", zap.Int("workers", w.config.WorkerCount))

	for i := 0; i < w.config.WorkerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *EventWorker) Stop() {
	w.logger.Info("Stopping event workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All event workers stopped")
}

// Err reports ErrTooManyReceiveFailures once the failure threshold is reached
func (w *EventWorker) Err() <-chan error {
	return w.errChan
}

func (w *EventWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Worker %d started", workerID)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-w.shutdownChan
		cancel()
	}()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(ctx); err != nil {
				w.logger.Error("Failed to process messages", err, zap.Int("worker", workerID))
			}
		}
	}
}

func (w *EventWorker) processMessages(ctx context.Context) error {
	messages, err := w.queue.ReceiveMessages(ctx, w.config.QueueURL, w.maxMessages, w.waitTime)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		w.receiveFailed()
		return fmt.Errorf("failed to receive messages: %w", err)
	}
	w.receiveSucceeded()

	// once an event fails, later events of its aggregate wait for redelivery
	blocked := make(map[string]bool)
	for _, msg := range messages {
		if event := msg.Message.Event; msg.DecodeErr == nil && event != nil {
			if blocked[event.AggregateID] {
				w.logger.Debug("Holding back event behind failed one",
					zap.String("event_id", event.ID),
					zap.String("aggregate_id", event.AggregateID))
				continue
			}
			if !w.processMessage(ctx, msg) {
				blocked[event.AggregateID] = true
				continue
			}
		} else if !w.processMessage(ctx, msg) {
			continue
		}

		if err := w.queue.DeleteMessage(ctx, w.config.QueueURL, msg.ReceiptHandle); err != nil {
			w.logger.Error("Failed to delete message", err)
		}
	}

	return nil
}

// processMessage reports whether msg can be removed from the queue
func (w *EventWorker) processMessage(ctx context.Context, msg queue.ReceivedMessage) bool {
	if msg.DecodeErr != nil {
		w.logger.Warn("Dropping undecodable message", zap.Error(msg.DecodeErr))
		return true
	}
	if msg.Message.Type != queue.MessageTypeDomainEvent || msg.Message.Event == nil {
		w.logger.Warn("Dropping unexpected message", zap.String("type", string(msg.Message.Type)))
		return true
	}

	event := msg.Message.Event
	acknowledged, err := w.events.IsAcknowledged(ctx, event.ID, w.config.ConsumerGroup)
	if err != nil {
		w.logger.Error("Failed to check acknowledgment", err, zap.String("event_id", event.ID))
		return false
	}
	if acknowledged {
		w.logger.Debug("Skipping acknowledged event", zap.String("event_id", event.ID))
		eventsProcessed.WithLabelValues(event.EventType, "duplicate").Inc()
		return true
	}

	if err := w.apply(ctx, event); err != nil {
		w.logger.Error("Failed to apply event", err,
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType))
		return false
	}
	return true
}

func (w *EventWorker) apply(ctx context.Context, event *domain.DomainEvent) error {
	if err := w.handler.Handle(ctx, event); err != nil {
		eventsProcessed.WithLabelValues(event.EventType, "error").Inc()
		return err
	}
	if err := w.events.Acknowledge(ctx, event.ID, w.config.ConsumerGroup); err != nil {
		eventsProcessed.WithLabelValues(event.EventType, "error").Inc()
		return fmt.Errorf("failed to acknowledge event %s: %w", event.ID, err)
	}
	eventsProcessed.WithLabelValues(event.EventType, "ok").Inc()
	return nil
}

func (w *EventWorker) receiveFailed() {
	receiveFailures.Inc()

	w.failureMu.Lock()
	defer w.failureMu.Unlock()

	w.failures++
	if w.failures == w.config.MaxConsecutiveFailures {
		select {
		case w.errChan <- ErrTooManyReceiveFailures:
		default:
		}
	}
}

func (w *EventWorker) receiveSucceeded() {
	w.failureMu.Lock()
	defer w.failureMu.Unlock()
	w.failures = 0
}
