package webhook_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-telegram/bot/models"

	"github.com/descrivibot/descrivibot/internal/webhook"
)

type fakeProcessor struct {
	updates []*models.Update
	panics  bool
}

func (f *fakeProcessor) ProcessUpdate(_ context.Context, upd *models.Update) {
	f.updates = append(f.updates, upd)
	if f.panics {
		panic("internal failure")
	}
}

func TestHandleMalformedPayload(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{}
	h := webhook.NewHandler(processor, nil)

	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not-json"},
		{name: "truncated json", body: `{"update_id": 1, "message": {`},
		{name: "wrong shape", body: `[1, 2, 3]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: tc.body})
			if err != nil {
				t.Fatalf("Handle returned error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}

	if len(processor.updates) != 0 {
		t.Errorf("processor invoked %d times for malformed payloads, want 0", len(processor.updates))
	}
}

func TestHandleWellFormedPayload(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{}
	h := webhook.NewHandler(processor, nil)

	body := `{"update_id": 12, "message": {"message_id": 42, "chat": {"id": 7}, "text": "/start"}}`
	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if len(processor.updates) != 1 {
		t.Fatalf("processor invoked %d times, want exactly 1", len(processor.updates))
	}
	if processor.updates[0].ID != 12 {
		t.Errorf("processed update id = %d, want 12", processor.updates[0].ID)
	}
}

// Internal failures must not surface as a non-2xx status: the degrade path
// already produced the user-visible reply.
func TestHandleSwallowsInternalPanic(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{panics: true}
	h := webhook.NewHandler(processor, nil)

	body := `{"update_id": 13}`
	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d despite internal panic", resp.StatusCode, http.StatusOK)
	}
}
