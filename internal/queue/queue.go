package queue

import (
	"context"
	"lighthouse-relay/internal/models"
)

// Submitter is the producing side of the queue: one call, one message.
type Submitter interface {
	Submit(ctx context.Context, destination string, payload string) (string, error)
}

// Consumer is the receiving side used by the local relay.
type Consumer interface {
	Poll(ctx context.Context, destination string, maxMessages int32) ([]models.Message, error)
	Delete(ctx context.Context, destination string, receiptHandle string) error
	// Requeue makes a received message visible again so a later poll
	// redelivers it.
	Requeue(ctx context.Context, destination string, receiptHandle string) error
}

type QueueService interface {
	Submitter
	Consumer
}
