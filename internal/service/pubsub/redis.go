package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/pkg/logger"
)

// ErrSubscriptionClosed is returned by Listen when the broker drops the subscription
var ErrSubscriptionClosed = errors.New("broker subscription closed")

// Message is the envelope exchanged on every broker topic
type Message struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	ReplyTo       string          `json:"replyTo,omitempty"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Timestamp     int64           `json:"timestamp"`
	Data          json.RawMessage `json:"data"`
}

// NewMessage wraps data into a Message with a fresh id.
func NewMessage(msgType string, data any) (*Message, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s message: %w", msgType, err)
	}

	return &Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      payload,
	}, nil
}

type RedisPubSub struct {
	client       *redis.Client
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub // subscription key to subscriber
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client *redis.Client, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:      client,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

// Publish sends msg to topic
func (ps *RedisPubSub) Publish(ctx context.Context, topic string, msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := ps.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", topic, err)
	}

	return nil
}

// Listen subscribes to topics under key and blocks, handing every message to
// callback. It returns nil when ctx is done and ErrSubscriptionClosed when the
// subscription goes away underneath.
func (ps *RedisPubSub) Listen(ctx context.Context, key string, topics []string, callback func(topic string, msg *Message)) error {
	ps.subscriberMu.Lock()
	if _, exists := ps.subscribers[key]; exists {
		ps.subscriberMu.Unlock()
		return fmt.Errorf("subscription %s already active", key)
	}
	pubsub := ps.client.Subscribe(ctx, topics...)
	ps.subscribers[key] = pubsub
	ps.subscriberMu.Unlock()

	defer func() {
		pubsub.Close()
		ps.subscriberMu.Lock()
		delete(ps.subscribers, key)
		ps.subscriberMu.Unlock()
		ps.logger.Info("Closed broker subscription", zap.String("key", key))
	}()

	// wait for the subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %v: %w", topics, err)
	}
	ps.logger.Info("Subscribed to broker topics", zap.String("key", key), zap.Strings("topics", topics))

	ch := pubsub.Channel()
	for {
		select {
		case raw, ok := <-ch:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrSubscriptionClosed
			}

			var msg Message
			if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
				ps.logger.Error("Failed to unmarshal broker message", err, zap.String("topic", raw.Channel))
				continue
			}
			callback(raw.Channel, &msg)

		case <-ctx.Done():
			return nil
		}
	}
}

// Subscribe runs Listen in the background
func (ps *RedisPubSub) Subscribe(ctx context.Context, key string, topics []string, callback func(topic string, msg *Message)) {
	go func() {
		if err := ps.Listen(ctx, key, topics, callback); err != nil {
			ps.logger.Error("Broker subscription ended", err, zap.String("key", key))
		}
	}()
}

// Unsubscribe removes the subscription registered under key
func (ps *RedisPubSub) Unsubscribe(key string) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if pubsub, exists := ps.subscribers[key]; exists {
		pubsub.Close()
		delete(ps.subscribers, key)
		ps.logger.Info("Unsubscribed from broker topics", zap.String("key", key))
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for key, pubsub := range ps.subscribers {
		pubsub.Close()
		delete(ps.subscribers, key)
	}
}
