package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	AggregateTypeUser = "User"
	EventTypeVersion  = 1
)

const (
	EventUserCreated             = "UserCreated"
	EventUserGeneralInfoUpdated  = "UserGeneralInfoUpdated"
	EventUserActivated           = "UserActivated"
	EventUserDeactivated         = "UserDeactivated"
	EventUserAuthCreated         = "UserAuthCreated"
	EventUserAuthDeleted         = "UserAuthDeleted"
	EventUserAuthPasswordUpdated = "UserAuthPasswordUpdated"
	EventUserRolesAdded          = "UserRolesAdded"
	EventUserRolesRemoved        = "UserRolesRemoved"
)

// DomainEvent is an immutable entry of the event store
type DomainEvent struct {
	ID               string          `gorm:"primaryKey;type:text" json:"id"`
	Sequence         int64           `gorm:"->;column:sequence" json:"sequence,omitempty"`
	EventType        string          `gorm:"type:text;not null" json:"eventType"`
	EventTypeVersion int             `gorm:"not null" json:"eventTypeVersion"`
	AggregateType    string          `gorm:"type:text;not null" json:"aggregateType"`
	AggregateID      string          `gorm:"type:text;not null" json:"aggregateId"`
	Data             json.RawMessage `gorm:"type:jsonb" json:"data"`
	User             string          `gorm:"column:acting_user;type:text" json:"user"`
	Timestamp        time.Time       `gorm:"type:timestamp with time zone;not null" json:"timestamp"`
}

func (DomainEvent) TableName() string {
	return "events"
}

// Decode unmarshals the event payload into v.
func (e *DomainEvent) Decode(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.EventType, err)
	}
	return nil
}

// NewUserEvent builds a User aggregate event with a fresh id.
func NewUserEvent(eventType, aggregateID, actingUser string, data any) (*DomainEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return &DomainEvent{
		ID:               uuid.New().String(),
		EventType:        eventType,
		EventTypeVersion: EventTypeVersion,
		AggregateType:    AggregateTypeUser,
		AggregateID:      aggregateID,
		Data:             payload,
		User:             actingUser,
		Timestamp:        time.Now().UTC(),
	}, nil
}

// EventAcknowledgment records that a consumer group finished processing an event
type EventAcknowledgment struct {
	EventID        string    `gorm:"primaryKey;type:text" json:"eventId"`
	ConsumerGroup  string    `gorm:"primaryKey;type:text" json:"consumerGroup"`
	AcknowledgedAt time.Time `gorm:"type:timestamp with time zone;not null" json:"acknowledgedAt"`
}

func (EventAcknowledgment) TableName() string {
	return "event_acknowledgments"
}

// Event payloads

type UserGeneralInfoPayload struct {
	ID          string      `json:"_id"`
	GeneralInfo GeneralInfo `json:"generalInfo"`
}

type UserStatePayload struct {
	ID    string `json:"_id"`
	State bool   `json:"state"`
}

type RoleList struct {
	Roles []string `json:"roles"`
}

type UserRolesPayload struct {
	ID        string   `json:"_id"`
	UserRoles RoleList `json:"userRoles"`
}

type UserAuthPayload struct {
	UserKeycloakID string `json:"userKeycloakId"`
	Username       string `json:"username"`
}

type UserPasswordPayload struct {
	UserKeycloakID string `json:"userKeycloakId"`
	Temporary      bool   `json:"temporary"`
}
