package handler

import (
	"context"
	"lighthouse-relay/internal/logging"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

type DeliveryResponse struct {
	StatusCode int `json:"statusCode"`
}

// DeliveryHandler logs every message of a queue-triggered batch.
type DeliveryHandler struct {
	logger *slog.Logger
}

func NewDeliveryHandler(logger *slog.Logger) *DeliveryHandler {
	return &DeliveryHandler{logger: logger}
}

// Handle never fails, so the trigger never redelivers a batch because of it.
func (h *DeliveryHandler) Handle(ctx context.Context, event events.SQSEvent) (DeliveryResponse, error) {
	logger := logging.WithInvocation(ctx, h.logger)
	logger.Debug("Received event", "recordCount", len(event.Records))

	if len(event.Records) == 0 {
		logger.Info("No Records")
	}
	for _, record := range event.Records {
		logger.Info("Received message", "messageID", record.MessageId, "body", record.Body)
	}

	return DeliveryResponse{StatusCode: http.StatusOK}, nil
}
