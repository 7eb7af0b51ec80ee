package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.QueueURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, int32(10), cfg.WorkerCount)
	assert.Equal(t, int32(10), cfg.BatchSize)
	assert.Equal(t, 20*time.Second, cfg.PollWait)
	assert.Equal(t, 5*time.Second, cfg.IdleDelay)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/ingest", cfg.IngestPath)
	assert.Error(t, cfg.RequireQueueURL())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SQS_URL", "https://sqs.eu-west-1.amazonaws.com/123456789012/relay")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("WORKER_COUNT", "3")
	t.Setenv("BATCH_SIZE", "5")
	t.Setenv("POLL_WAIT", "2s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://sqs.eu-west-1.amazonaws.com/123456789012/relay", cfg.QueueURL)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, int32(3), cfg.WorkerCount)
	assert.Equal(t, int32(5), cfg.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.PollWait)
	assert.NoError(t, cfg.RequireQueueURL())
}

func TestLoadFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "batch size above sqs limit", key: "BATCH_SIZE", value: "11"},
		{name: "zero workers", key: "WORKER_COUNT", value: "0"},
		{name: "poll wait too long", key: "POLL_WAIT", value: "30s"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
		{name: "unparsable duration", key: "IDLE_DELAY", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}
