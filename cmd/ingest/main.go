package main

import (
	"context"
	"fmt"
	"lighthouse-relay/internal/config"
	"lighthouse-relay/internal/handler"
	"lighthouse-relay/internal/logging"
	"lighthouse-relay/internal/queue"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(78)
	}
	if err := run(context.Background(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireQueueURL(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	client, err := queue.NewSQSClient(ctx, cfg.AWSEndpoint)
	if err != nil {
		return err
	}

	h := handler.NewIngestHandler(queue.NewSQSQueue(client, cfg.PollWait), cfg.QueueURL, logger)
	lambda.Start(h.Handle)
	return nil
}
