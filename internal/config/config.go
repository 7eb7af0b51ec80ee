package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// maxBatchSize is the largest batch SQS returns from a single receive call.
const maxBatchSize = 10

type Config struct {
	QueueURL    string        `env:"SQS_URL"`
	AWSEndpoint string        `env:"AWS_ENDPOINT_URL"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"json"`
	WorkerCount int32         `env:"WORKER_COUNT" envDefault:"10"`
	BatchSize   int32         `env:"BATCH_SIZE" envDefault:"10"`
	PollWait    time.Duration `env:"POLL_WAIT" envDefault:"20s"`
	IdleDelay   time.Duration `env:"IDLE_DELAY" envDefault:"5s"`
	ListenAddr  string        `env:"LISTEN_ADDR" envDefault:":8080"`
	IngestPath  string        `env:"INGEST_PATH" envDefault:"/ingest"`
}

func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequireQueueURL reports an error when no destination queue is configured.
// Only the producing side needs it.
func (c *Config) RequireQueueURL() error {
	if c.QueueURL == "" {
		return fmt.Errorf("SQS_URL must be set")
	}
	return nil
}

func (c *Config) validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount)
	}
	if c.BatchSize <= 0 || c.BatchSize > maxBatchSize {
		return fmt.Errorf("BATCH_SIZE must be between 1 and %d, got %d", maxBatchSize, c.BatchSize)
	}
	if c.PollWait < 0 || c.PollWait > 20*time.Second {
		return fmt.Errorf("POLL_WAIT must be between 0s and 20s, got %s", c.PollWait)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}
