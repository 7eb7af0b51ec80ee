package main

import (
	"fmt"
	"lighthouse-relay/internal/config"
	"lighthouse-relay/internal/handler"
	"lighthouse-relay/internal/logging"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(78)
	}
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	lambda.Start(handler.NewDeliveryHandler(logger).Handle)
}
