package queue

import (
	"context"
	"fmt"
	"lighthouse-relay/internal/models"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// MemoryQueue is an in-process stand-in for SQS. Polled messages stay
// in flight, invisible to other pollers, until deleted or requeued.
type MemoryQueue struct {
	logger   *slog.Logger
	mu       sync.Mutex
	pending  map[string][]models.Message
	inFlight map[string]map[string]models.Message // destination -> receipt handle -> message
}

func NewMemoryQueue(logger *slog.Logger) *MemoryQueue {
	return &MemoryQueue{
		logger:   logger,
		pending:  make(map[string][]models.Message),
		inFlight: make(map[string]map[string]models.Message),
	}
}

func (q *MemoryQueue) Submit(ctx context.Context, destination string, payload string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[destination] = append(q.pending[destination], models.Message{
		ID:   id.String(),
		Body: payload,
	})
	return id.String(), nil
}

func (q *MemoryQueue) Poll(ctx context.Context, destination string, maxMessages int32) ([]models.Message, error) {
	if maxMessages <= 0 {
		return nil, fmt.Errorf("maxMessages must be positive, got %d", maxMessages)
	}
	q.logger.Debug("Polling memory queue", "destination", destination)

	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.pending[destination]
	n := min(int(maxMessages), len(pending))
	if n == 0 {
		return nil, nil
	}

	if q.inFlight[destination] == nil {
		q.inFlight[destination] = make(map[string]models.Message)
	}
	messages := make([]models.Message, 0, n)
	for _, msg := range pending[:n] {
		receipt, err := uuid.NewRandom()
		if err != nil {
			return nil, err
		}
		msg.ReceiptHandle = receipt.String()
		q.inFlight[destination][msg.ReceiptHandle] = msg
		messages = append(messages, msg)
	}
	q.pending[destination] = pending[n:]
	return messages, nil
}

func (q *MemoryQueue) Delete(ctx context.Context, destination string, receiptHandle string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.inFlight[destination][receiptHandle]; !ok {
		return fmt.Errorf("unknown receipt handle %q", receiptHandle)
	}
	delete(q.inFlight[destination], receiptHandle)
	return nil
}

// Requeue makes an in-flight message visible again, as an expired
// visibility timeout would on SQS.
func (q *MemoryQueue) Requeue(ctx context.Context, destination string, receiptHandle string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg, ok := q.inFlight[destination][receiptHandle]
	if !ok {
		return fmt.Errorf("unknown receipt handle %q", receiptHandle)
	}
	delete(q.inFlight[destination], receiptHandle)
	msg.ReceiptHandle = ""
	q.pending[destination] = append(q.pending[destination], msg)
	return nil
}

// Depth returns the number of pending and in-flight messages for destination.
func (q *MemoryQueue) Depth(destination string) (pending int, inFlight int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending[destination]), len(q.inFlight[destination])
}
