package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/user-management-api/internal/domain"
)

type EventRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewEventRepository(writerDB, readerDB *gorm.DB) *EventRepository {
	return &EventRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *EventRepository) Append(ctx context.Context, event *domain.DomainEvent) error {
	if err := r.writerDB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to append event %s: %w", event.EventType, err)
	}
	return nil
}

func (r *EventRepository) ListByAggregate(ctx context.Context, aggregateType, aggregateID string) ([]domain.DomainEvent, error) {
	var events []domain.DomainEvent
	err := r.readerDB.WithContext(ctx).
		Where("aggregate_type = ? AND aggregate_id = ?", aggregateType, aggregateID).
		Order("sequence ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list aggregate events: %w", err)
	}
	return events, nil
}

// ListUnacknowledged reads from the writer so a restart never misses fresh appends.
func (r *EventRepository) ListUnacknowledged(ctx context.Context, aggregateType, group string, limit int) ([]domain.DomainEvent, error) {
	var events []domain.DomainEvent

	query := r.writerDB.WithContext(ctx).
		Where("aggregate_type = ?", aggregateType).
		Where("NOT EXISTS (SELECT 1 FROM event_acknowledgments a WHERE a.event_id = events.id AND a.consumer_group = ?)", group).
		Order("sequence ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list unacknowledged events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Acknowledge(ctx context.Context, eventID, group string) error {
	ack := domain.EventAcknowledgment{
		EventID:        eventID,
		ConsumerGroup:  group,
		AcknowledgedAt: time.Now().UTC(),
	}
	err := r.writerDB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ack).Error
	if err != nil {
		return fmt.Errorf("failed to acknowledge event %s: %w", eventID, err)
	}
	return nil
}

func (r *EventRepository) IsAcknowledged(ctx context.Context, eventID, group string) (bool, error) {
	var count int64
	err := r.writerDB.WithContext(ctx).Model(&domain.EventAcknowledgment{}).
		Where("event_id = ? AND consumer_group = ?", eventID, group).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check acknowledgment: %w", err)
	}
	return count > 0, nil
}
