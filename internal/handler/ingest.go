package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"lighthouse-relay/internal/logging"
	"lighthouse-relay/internal/models"
	"lighthouse-relay/internal/queue"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const (
	MessageDelivered   = "Message Successfully Delivered"
	MessageMissingBody = "Missing message body to deliver"
	MessageFailed      = "Failed to deliver"
)

var (
	ErrMissingBody    = errors.New("missing message body")
	ErrDeliveryFailed = errors.New("failed to deliver")
)

// IngestHandler forwards the body of an API Gateway proxy request to a
// queue as a single message.
type IngestHandler struct {
	queue    queue.Submitter
	queueURL string
	logger   *slog.Logger
}

func NewIngestHandler(q queue.Submitter, queueURL string, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{
		queue:    q,
		queueURL: queueURL,
		logger:   logger,
	}
}

// Handle always answers with a 200 proxy response. The outcome is carried by
// the statusCode and message encoded in the response body.
func (h *IngestHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := logging.WithInvocation(ctx, h.logger)
	logger.Info("Received event", "path", req.Path, "method", req.HTTPMethod, "bodyLength", len(req.Body))

	result := resultFor(h.deliver(ctx, logger, req))

	body := encodeResult(result)
	logger.Info("Response", "statusCode", result.StatusCode, "message", result.Message)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       body,
	}, nil
}

func (h *IngestHandler) deliver(ctx context.Context, logger *slog.Logger, req events.APIGatewayProxyRequest) error {
	raw := req.Body
	if req.IsBase64Encoded && raw != "" {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return fmt.Errorf("%w: decode base64 body: %w", ErrDeliveryFailed, err)
		}
		raw = string(decoded)
	}
	if raw == "" {
		return ErrMissingBody
	}

	payload, err := normalizePayload(raw)
	if err != nil {
		logger.Error(MessageFailed, "error", err)
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	logger.Info("Queue URL", "queueURL", h.queueURL)
	messageID, err := h.queue.Submit(ctx, h.queueURL, payload)
	if err != nil {
		logger.Error(MessageFailed, "error", err)
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	logger.Info("Message sent to queue", "messageID", messageID)
	return nil
}

func resultFor(err error) models.HandlerResult {
	switch {
	case err == nil:
		return models.HandlerResult{StatusCode: http.StatusOK, Message: MessageDelivered}
	case errors.Is(err, ErrMissingBody):
		return models.HandlerResult{StatusCode: http.StatusBadRequest, Message: MessageMissingBody}
	default:
		return models.HandlerResult{StatusCode: http.StatusInternalServerError, Message: MessageFailed}
	}
}

// encodeResult renders the result with ": " and ", " separators, the byte
// format existing callers already parse.
func encodeResult(r models.HandlerResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"statusCode": %d, "message": `, r.StatusCode)
	writeString(&b, r.Message)
	b.WriteByte('}')
	return b.String()
}
