package worker

import (
	"context"
	"fmt"
	"lighthouse-relay/internal/models"
	"lighthouse-relay/internal/queue"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const defaultJobTimeout = 120 * time.Second

type WorkerPoolService interface {
	Init() error
	SubmitBatch(batch []models.Message) error
	Stop()
}

type WorkerPool struct {
	workers       []WorkerService
	ctx           context.Context
	wg            sync.WaitGroup // tracks running workers
	jobs          sync.WaitGroup // tracks submitted batches until their result is in
	jobChan       chan models.JobRequest
	cancelWorkers context.CancelFunc
	sem           *semaphore.Weighted
	jobTimeout    time.Duration
	logger        *slog.Logger
}

// NewWorkerPool creates workerCount workers feeding batches to p. ctx bounds
// submission only; running workers are stopped through Stop so that batches
// already accepted are finished.
func NewWorkerPool(ctx context.Context, workerCount int, p Processor, qs queue.Consumer, destination string, logger *slog.Logger) *WorkerPool {
	workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pool := &WorkerPool{
		workers:       make([]WorkerService, workerCount),
		ctx:           ctx,
		jobChan:       make(chan models.JobRequest, workerCount*2),
		cancelWorkers: cancel,
		sem:           semaphore.NewWeighted(int64(workerCount)),
		jobTimeout:    defaultJobTimeout,
		logger:        logger,
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(workerCtx, i+1, p, qs, destination, pool.jobChan, logger)
	}

	return pool
}

func (wp *WorkerPool) Init() error {
	if len(wp.workers) == 0 {
		return fmt.Errorf("worker pool needs at least one worker")
	}
	exitWorker := func() {
		wp.wg.Done()
	}
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.Run(exitWorker)
	}
	return nil
}

// Stop waits for accepted batches, then stops the workers.
func (wp *WorkerPool) Stop() {
	wp.logger.Info("Stopping worker pool...")
	wp.jobs.Wait()
	wp.cancelWorkers()
	wp.wg.Wait()
	close(wp.jobChan)
	wp.logger.Info("Worker pool stop completed")
}

// SubmitBatch blocks until a worker slot is free, then queues the batch. The
// outcome is logged asynchronously.
func (wp *WorkerPool) SubmitBatch(batch []models.Message) error {
	if err := wp.sem.Acquire(wp.ctx, 1); err != nil {
		return fmt.Errorf("acquire worker slot: %w", err)
	}

	jobCtx, jobClose := context.WithTimeout(context.Background(), wp.jobTimeout)
	resultCh := make(chan error, 1)
	wp.jobs.Add(1)
	wp.jobChan <- models.JobRequest{
		Batch:  batch,
		JobCtx: jobCtx,
		Result: resultCh,
	}

	go func(size int, result <-chan error) {
		defer wp.jobs.Done()
		err := <-result
		wp.sem.Release(1)
		jobClose()
		if err != nil {
			wp.logger.Error("Worker failed to process batch", "messageCount", size, "error", err)
		} else {
			wp.logger.Debug("Batch processed successfully", "messageCount", size)
		}
	}(len(batch), resultCh)

	return nil
}
