package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/descrivibot/descrivibot/internal/database"
	"github.com/descrivibot/descrivibot/internal/reply"
)

const (
	photoDownloadTimeout = 30 * time.Second
	sendMessageTimeout   = 10 * time.Second
	journalSaveTimeout   = 5 * time.Second

	maxDownloadSize = 10 * 1024 * 1024
)

// chatAPI is the subset of *bot.Bot the photo pipeline needs, split out so
// the pipeline can be exercised without the network.
type chatAPI interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

// downloadFunc resolves a Telegram file ID to raw bytes and a MIME type.
type downloadFunc func(ctx context.Context, api chatAPI, token, fileID string) ([]byte, string, error)

type photoHandler struct {
	deps     HandlerDeps
	download downloadFunc
}

// NewPhotoHandler creates the default message handler: it filters for
// image-bearing messages, fetches the image, asks the vision provider for a
// description, and replies citing the original message. Provider failures
// degrade to a fixed apology so the sender always gets a reply.
func NewPhotoHandler(deps HandlerDeps) bot.HandlerFunc {
	h := photoHandler{deps: deps, download: downloadPhoto}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.process(ctx, b, update)
	}
}

func (h photoHandler) process(ctx context.Context, api chatAPI, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "photo")

	msg := update.Message
	if msg == nil {
		return
	}
	if len(msg.Photo) == 0 {
		// Text-only posts and unrecognized commands are a silent no-op.
		log.DebugContext(ctx, "Ignoring message without photo", "update_id", update.ID, "chat_id", msg.Chat.ID)
		return
	}

	chatID := msg.Chat.ID
	startTime := time.Now()
	log.InfoContext(ctx, "Handling image message",
		"chat_id", chatID, "message_id", msg.ID, "has_caption", msg.Caption != "")

	// Telegram provides several sizes per photo; pick the largest.
	var bestPhoto models.PhotoSize
	bestQuality := 0
	for _, photo := range msg.Photo {
		quality := photo.Width * photo.Height
		if quality > bestQuality {
			bestQuality = quality
			bestPhoto = photo
		}
	}

	_, _ = api.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping})

	data, mimeType, err := h.download(ctx, api, deps.Config.Telegram.Token, bestPhoto.FileID)
	if err != nil {
		// Without the image there is nothing to describe and nothing
		// worth apologizing for: log and drop.
		log.ErrorContext(ctx, "Photo download failed",
			"error", err, "chat_id", chatID, "file_id", bestPhoto.FileID)
		h.recordDelivery(ctx, chatID, msg.ID, database.OutcomeDropped, startTime)
		return
	}

	outcome := database.OutcomeDescribed
	describeCtx, cancel := context.WithTimeout(ctx, deps.Config.Gemini.Timeout)
	result, err := deps.Describer.Describe(describeCtx, data, mimeType)
	cancel()

	var text string
	if err != nil {
		log.ErrorContext(ctx, "Image description failed", "error", err, "chat_id", chatID)
		text = reply.Apology
		outcome = database.OutcomeDegraded
	} else {
		text = reply.Format(result)
		if result.IsEvent() {
			outcome = database.OutcomeEvent
			log.InfoContext(ctx, "Detected event announcement", "chat_id", chatID, "event_name", result.Event.Name)
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()
	sent, err := api.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		// At-most-once delivery: send failures are logged and dropped.
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID, "message_id", msg.ID)
		h.recordDelivery(ctx, chatID, msg.ID, database.OutcomeDropped, startTime)
		return
	}

	log.InfoContext(ctx, "Sent reply",
		"chat_id", chatID, "reply_to", msg.ID, "message_id", sent.ID,
		"outcome", outcome, "duration", time.Since(startTime))
	h.recordDelivery(ctx, chatID, msg.ID, outcome, startTime)
}

// recordDelivery writes one journal row, best effort. Journal failures are
// logged and never affect the reply path.
func (h photoHandler) recordDelivery(ctx context.Context, chatID int64, messageID int, outcome string, startTime time.Time) {
	if h.deps.Store == nil {
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalSaveTimeout)
	defer cancel()

	delivery := &database.Delivery{
		ChatID:     chatID,
		MessageID:  int64(messageID),
		Outcome:    outcome,
		DurationMS: time.Since(startTime).Milliseconds(),
	}
	if err := h.deps.Store.SaveDelivery(saveCtx, delivery); err != nil {
		h.deps.Logger.WarnContext(ctx, "Failed to record delivery",
			"error", err, "chat_id", chatID, "message_id", messageID, "outcome", outcome)
	}
}

// downloadPhoto downloads a photo from Telegram's API using the provided
// file ID. It returns the photo data, detected MIME type, and any error.
func downloadPhoto(ctx context.Context, api chatAPI, token, fileID string) (data []byte, mimeType string, err error) {
	if token == "" {
		return nil, "", fmt.Errorf("empty token provided for photo download")
	}
	if fileID == "" {
		return nil, "", fmt.Errorf("empty fileID provided for photo download")
	}

	downloadCtx, cancel := context.WithTimeout(ctx, photoDownloadTimeout)
	defer cancel()

	fileObj, err := api.GetFile(downloadCtx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get file info from Telegram: %w", err)
	}
	if fileObj.FilePath == "" {
		return nil, "", fmt.Errorf("empty file path returned from Telegram for file ID %s", fileID)
	}

	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", token, fileObj.FilePath)
	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download file: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, "", fmt.Errorf("unexpected status code %d downloading file: %s", resp.StatusCode, string(bodyBytes))
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file data: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("received empty file data")
	}

	return data, http.DetectContentType(data), nil
}
