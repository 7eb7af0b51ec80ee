package relay

import (
	"context"
	"lighthouse-relay/internal/queue"
	"lighthouse-relay/internal/worker"
	"log/slog"
	"time"
)

// Relay polls a queue and feeds each received batch to a worker pool,
// standing in for the managed queue trigger on a workstation.
type Relay struct {
	queue       queue.Consumer
	pool        worker.WorkerPoolService
	destination string
	batchSize   int32
	idleDelay   time.Duration
	logger      *slog.Logger
}

func New(q queue.Consumer, pool worker.WorkerPoolService, destination string, batchSize int32, idleDelay time.Duration, logger *slog.Logger) *Relay {
	return &Relay{
		queue:       q,
		pool:        pool,
		destination: destination,
		batchSize:   batchSize,
		idleDelay:   idleDelay,
		logger:      logger,
	}
}

// Run polls until ctx is cancelled, then stops the pool once in-flight
// batches are done.
func (r *Relay) Run(ctx context.Context) {
	r.logger.Info("Relay started", "destination", r.destination, "batchSize", r.batchSize)
	defer r.pool.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Context cancelled, stopping relay")
			return
		default:
		}

		messages, err := r.queue.Poll(ctx, r.destination, r.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			r.logger.Error("failed to retrieve messages", "error", err)
			r.idle(ctx)
			continue
		}
		if len(messages) == 0 {
			r.logger.Debug("No message received")
			r.idle(ctx)
			continue
		}

		r.logger.Debug("Received batch, submitting", "messageCount", len(messages))
		if err := r.pool.SubmitBatch(messages); err != nil {
			r.logger.Warn("Batch not submitted, requeueing", "messageCount", len(messages), "error", err)
			worker.RequeueBatch(context.WithoutCancel(ctx), r.queue, r.destination, messages, r.logger)
			r.idle(ctx)
		}
	}
}

func (r *Relay) idle(ctx context.Context) {
	t := time.NewTimer(r.idleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
