// Package webhook implements the single-invocation entry point: one API
// Gateway payload in, one Telegram update processed, one status out.
package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-telegram/bot/models"
)

// UpdateProcessor routes one decoded Telegram update through the registered
// handlers. *bot.Bot satisfies this interface.
type UpdateProcessor interface {
	ProcessUpdate(ctx context.Context, upd *models.Update)
}

// Handler adapts one webhook invocation to the dispatcher.
type Handler struct {
	processor UpdateProcessor
	logger    *slog.Logger
}

// NewHandler creates a webhook handler around an update processor.
func NewHandler(processor UpdateProcessor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		processor: processor,
		logger:    logger.With("component", "webhook_handler"),
	}
}

// Handle decodes the inbound payload into exactly one Telegram update and
// processes it synchronously. Well-formed payloads always return 2xx, even
// when processing degrades internally; only a malformed body returns 400.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var update models.Update
	if err := json.Unmarshal([]byte(req.Body), &update); err != nil {
		h.logger.ErrorContext(ctx, "Malformed update payload", "error", err)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Body:       "invalid update payload",
		}, nil
	}

	h.logger.InfoContext(ctx, "Processing webhook invocation", "update_id", update.ID)

	// Internal failures must not escape as a non-2xx status: the degrade
	// path already replied to the user, so the invocation succeeded.
	func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.ErrorContext(ctx, "Recovered panic while processing update",
					"update_id", update.ID, "panic", r)
			}
		}()
		h.processor.ProcessUpdate(ctx, &update)
	}()

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       "ok",
	}, nil
}
