package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/mocks"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

func TestEventStore_Emit(t *testing.T) {
	ctx := context.Background()
	event, err := domain.NewUserEvent(domain.EventUserActivated, "user-1", "admin", domain.UserStatePayload{ID: "user-1", State: true})
	require.NoError(t, err)

	t.Run("appends then queues", func(t *testing.T) {
		events := mocks.NewEventRepository(t)
		queue := mocks.NewEventQueue(t)
		events.On("Append", ctx, event).Return(nil)
		queue.On("SendEvent", ctx, event).Return(nil)

		assert.NoError(t, NewEventStore(events, queue, logger.NewNop()).Emit(ctx, event))
	})

	t.Run("queue failure is not fatal", func(t *testing.T) {
		events := mocks.NewEventRepository(t)
		queue := mocks.NewEventQueue(t)
		events.On("Append", ctx, event).Return(nil)
		queue.On("SendEvent", ctx, event).Return(errors.New("throttled"))

		assert.NoError(t, NewEventStore(events, queue, logger.NewNop()).Emit(ctx, event))
	})

	t.Run("append failure", func(t *testing.T) {
		events := mocks.NewEventRepository(t)
		queue := mocks.NewEventQueue(t)
		events.On("Append", ctx, event).Return(errors.New("connection reset"))

		err := NewEventStore(events, queue, logger.NewNop()).Emit(ctx, event)

		assert.Error(t, err)
		queue.AssertNotCalled(t, "SendEvent", ctx, event)
	})
}
