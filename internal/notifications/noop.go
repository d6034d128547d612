package notifications

import "context"

// noopPublisher drops notifications, used when Kafka is disabled
type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, record Record) error { return nil }

func (noopPublisher) Close() error { return nil }
