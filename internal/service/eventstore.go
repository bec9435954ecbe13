package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/repository"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

// EventStore appends events to Postgres and forwards them to the projector queue.
type EventStore struct {
	events repository.EventRepository
	queue  EventQueue
	logger *logger.Logger
}

func NewEventStore(events repository.EventRepository, queue EventQueue, logger *logger.Logger) *EventStore {
	return &EventStore{
		events: events,
		queue:  queue,
		logger: logger,
	}
}

// Emit fails only when the event could not be persisted. Events that never
// reached the queue are picked up by the projector's startup replay.
func (s *EventStore) Emit(ctx context.Context, event *domain.DomainEvent) error {
	if err := s.events.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to append %s event: %w", event.EventType, err)
	}

	if err := s.queue.SendEvent(ctx, event); err != nil {
		s.logger.Error("Failed to send event to queue", err,
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("aggregate_id", event.AggregateID))
	}

	return nil
}
