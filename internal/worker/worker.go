package worker

import (
	"context"
	"fmt"
	"lighthouse-relay/internal/models"
	"lighthouse-relay/internal/queue"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

// Processor consumes one batch the way a queue-triggered function would.
type Processor interface {
	Process(ctx context.Context, event events.SQSEvent) error
}

type ProcessorFunc func(ctx context.Context, event events.SQSEvent) error

func (f ProcessorFunc) Process(ctx context.Context, event events.SQSEvent) error {
	return f(ctx, event)
}

type WorkerService interface {
	Run(close func())
}

type Worker struct {
	id          int
	ctx         context.Context
	processor   Processor
	queue       queue.Consumer
	destination string
	jobChan     chan models.JobRequest
	logger      *slog.Logger
}

func NewWorker(ctx context.Context, id int, p Processor, qs queue.Consumer, destination string, jobChan chan models.JobRequest, logger *slog.Logger) *Worker {
	return &Worker{
		id:          id,
		ctx:         ctx,
		processor:   p,
		queue:       qs,
		destination: destination,
		jobChan:     jobChan,
		logger:      logger.With("workerID", id),
	}
}

func (w *Worker) Run(exitWorker func()) {
	w.logger.Debug("Started worker Run")
	for {
		select {
		case <-w.ctx.Done():
			w.logger.Debug("Cancellation request received, won't accept any more jobs.")
			exitWorker()
			return
		case jobReq := <-w.jobChan:
			jobReq.Result <- w.HandleBatch(jobReq.JobCtx, jobReq.Batch)
		}
	}
}

// HandleBatch hands the batch to the processor and deletes its messages once
// processed. A failed batch is requeued for redelivery.
func (w *Worker) HandleBatch(jobCtx context.Context, batch []models.Message) error {
	w.logger.Debug("Handling batch", "messageCount", len(batch))
	if err := w.processor.Process(jobCtx, ToSQSEvent(batch)); err != nil {
		RequeueBatch(context.WithoutCancel(jobCtx), w.queue, w.destination, batch, w.logger)
		return fmt.Errorf("process batch: %w", err)
	}

	var failed int
	for _, msg := range batch {
		if err := w.queue.Delete(jobCtx, w.destination, msg.ReceiptHandle); err != nil {
			w.logger.Error("Failed to delete message", "messageID", msg.ID, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to delete %d of %d messages", failed, len(batch))
	}
	return nil
}

// RequeueBatch returns every message of batch to the queue. Messages that
// cannot be requeued reappear once their visibility timeout expires.
func RequeueBatch(ctx context.Context, qs queue.Consumer, destination string, batch []models.Message, logger *slog.Logger) {
	for _, msg := range batch {
		if err := qs.Requeue(ctx, destination, msg.ReceiptHandle); err != nil {
			logger.Warn("Failed to requeue message", "messageID", msg.ID, "error", err)
		}
	}
}

// ToSQSEvent shapes a polled batch like the event a queue trigger delivers.
func ToSQSEvent(batch []models.Message) events.SQSEvent {
	records := make([]events.SQSMessage, 0, len(batch))
	for _, msg := range batch {
		records = append(records, events.SQSMessage{
			MessageId:     msg.ID,
			ReceiptHandle: msg.ReceiptHandle,
			Body:          msg.Body,
			EventSource:   "aws:sqs",
		})
	}
	return events.SQSEvent{Records: records}
}
