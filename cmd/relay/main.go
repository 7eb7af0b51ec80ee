package main

import (
	"context"
	"errors"
	"fmt"
	"lighthouse-relay/internal/config"
	"lighthouse-relay/internal/handler"
	"lighthouse-relay/internal/logging"
	"lighthouse-relay/internal/queue"
	"lighthouse-relay/internal/relay"
	"lighthouse-relay/internal/sender"
	"lighthouse-relay/internal/server"
	"lighthouse-relay/internal/worker"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/urfave/cli/v2"
)

const memoryDestination = "memory://lighthouse"

func main() {
	app := &cli.App{
		Name:  "relay",
		Usage: "Run the ingest and delivery handlers locally",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the ingest endpoint and deliver queued messages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "queue",
						Usage: "Queue backend (memory, sqs)",
						Value: "memory",
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address, overrides LISTEN_ADDR",
					},
					&cli.StringFlag{
						Name:  "log-format",
						Usage: "Log format (text, json), overrides LOG_FORMAT",
					},
				},
				Action: serve,
			},
			{
				Name:  "send",
				Usage: "Post generated messages to an ingest endpoint",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Ingest endpoint URL",
						Value: "http://localhost:8080/ingest",
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of messages to send",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "words",
						Usage: "Comma separated word list, defaults to the system dictionary",
					},
				},
				Action: send,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	applyServeFlags(cfg, c.String("addr"), c.String("log-format"))
	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	q, destination, err := newQueue(ctx, c.String("queue"), cfg, logger)
	if err != nil {
		return err
	}

	ingest := handler.NewIngestHandler(q, destination, logger)
	delivery := handler.NewDeliveryHandler(logger)

	process := worker.ProcessorFunc(func(ctx context.Context, event events.SQSEvent) error {
		_, err := delivery.Handle(ctx, event)
		return err
	})
	pool := worker.NewWorkerPool(ctx, int(cfg.WorkerCount), process, q, destination, logger)
	if err := pool.Init(); err != nil {
		return fmt.Errorf("failed to initialize worker pool: %w", err)
	}

	relayDone := make(chan struct{})
	go func() {
		relay.New(q, pool, destination, cfg.BatchSize, cfg.IdleDelay, logger).Run(ctx)
		close(relayDone)
	}()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(ingest.Handle, cfg.IngestPath, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Received termination signal, shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down http server", "error", err)
		}
	}()

	logger.Info("Serving ingest endpoint", "addr", cfg.ListenAddr, "path", cfg.IngestPath, "queue", destination)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-relayDone
		return fmt.Errorf("http server: %w", err)
	}
	<-relayDone
	return nil
}

// applyServeFlags overrides cfg with the flags that were set. Unset flags
// keep the environment values.
func applyServeFlags(cfg *config.Config, addr, logFormat string) {
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
}

func newQueue(ctx context.Context, backend string, cfg *config.Config, logger *slog.Logger) (queue.QueueService, string, error) {
	switch backend {
	case "memory":
		destination := cfg.QueueURL
		if destination == "" {
			destination = memoryDestination
		}
		return queue.NewMemoryQueue(logger), destination, nil
	case "sqs":
		if err := cfg.RequireQueueURL(); err != nil {
			return nil, "", err
		}
		client, err := queue.NewSQSClient(ctx, cfg.AWSEndpoint)
		if err != nil {
			return nil, "", err
		}
		return queue.NewSQSQueue(client, cfg.PollWait), cfg.QueueURL, nil
	default:
		return nil, "", fmt.Errorf("invalid queue backend: %s", backend)
	}
}

func send(c *cli.Context) error {
	logger := logging.New(os.Stderr, "text", "info")

	var words []string
	if w := c.String("words"); w != "" {
		words = strings.Split(w, ",")
	}
	gen := sender.NewGenerator(words)
	s := sender.NewSender(c.String("url"), nil, logger)

	var failed int
	for i := 0; i < c.Int("count"); i++ {
		payload, err := gen.Next()
		if err != nil {
			return err
		}
		if err := s.Send(c.Context, payload); err != nil {
			logger.Error("failed to send message", "payload", payload, "error", err)
			failed++
			continue
		}
		logger.Info("Message sent", "payload", payload)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed", failed, c.Int("count"))
	}
	return nil
}
