package pubsub

import (
	"context"
)

// MaterializedViewChannel publishes and consumes materialized view updates on a single topic
type MaterializedViewChannel struct {
	ps    *RedisPubSub
	topic string
}

func NewMaterializedViewChannel(ps *RedisPubSub, topic string) *MaterializedViewChannel {
	return &MaterializedViewChannel{ps: ps, topic: topic}
}

func (c *MaterializedViewChannel) Topic() string {
	return c.topic
}

// PublishMaterializedView notifies subscribers that the view named viewType changed
func (c *MaterializedViewChannel) PublishMaterializedView(ctx context.Context, viewType string, data any) error {
	msg, err := NewMessage(viewType, data)
	if err != nil {
		return err
	}
	return c.ps.Publish(ctx, c.topic, msg)
}

// Subscribe delivers every update to callback until ctx is done
func (c *MaterializedViewChannel) Subscribe(ctx context.Context, key string, callback func(msg *Message)) {
	c.ps.Subscribe(ctx, key, []string{c.topic}, func(_ string, msg *Message) {
		callback(msg)
	})
}
