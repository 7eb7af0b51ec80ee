package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tjarratt/babble"
)

type SenderService interface {
	Send(ctx context.Context, msg string) error
}

// Sender posts payloads to an ingest endpoint and checks the result carried
// in the response body.
type Sender struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewSender(url string, client *http.Client, logger *slog.Logger) *Sender {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Sender{
		url:    url,
		client: client,
		logger: logger,
	}
}

type ingestResult struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (s *Sender) Send(ctx context.Context, msg string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBufferString(msg))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected transport status %d", resp.StatusCode)
	}

	// the transport status is always 200, the outcome is in the body
	var result ingestResult
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if result.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send: %d %s", result.StatusCode, result.Message)
	}
	s.logger.Debug("Successfully sent message", "url", s.url)
	return nil
}

// Generator produces sample JSON payloads made of random words.
type Generator struct {
	babbler babble.Babbler
	seq     int
}

// NewGenerator draws words from the system dictionary when words is empty.
func NewGenerator(words []string) *Generator {
	var b babble.Babbler
	if len(words) == 0 {
		b = babble.NewBabbler()
	} else {
		b = babble.Babbler{Words: words}
	}
	b.Count = 2
	b.Separator = " "
	return &Generator{babbler: b}
}

// Next returns a JSON object with a sequence number and a short phrase.
func (g *Generator) Next() (string, error) {
	g.seq++
	payload, err := json.Marshal(map[string]any{
		"seq":     g.seq,
		"message": g.babbler.Babble(),
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
