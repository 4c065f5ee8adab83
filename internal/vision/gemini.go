package vision

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// Describer is the capability interface for turning image bytes into a
// description. There is exactly one concrete implementation (Gemini); new
// providers are added by implementing this interface.
type Describer interface {
	Describe(ctx context.Context, imageData []byte, mimeType string) (Result, error)
}

// Config holds the provider settings for the Gemini client.
type Config struct {
	APIKey      string
	ModelName   string
	Temperature float32
}

type geminiDescriber struct {
	genaiClient   *genai.Client
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
}

// NewGeminiDescriber creates a Describer backed by the Gemini API. It
// validates the API key and prepares the fixed generation config; no network
// call is made until Describe.
func NewGeminiDescriber(ctx context.Context, cfg Config, log *slog.Logger) (Describer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if log == nil {
		log = slog.Default()
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	contentCfg := &genai.GenerateContentConfig{
		Temperature:       &cfg.Temperature,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: describeSystemInstruction}}},
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}

	logger := log.With("component", "gemini_describer")
	logger.Info("Gemini describer initialized", "model", cfg.ModelName)
	return &geminiDescriber{
		genaiClient:   gi,
		log:           logger,
		contentConfig: contentCfg,
		modelName:     cfg.ModelName,
	}, nil
}

// Describe issues a single bounded call to the Gemini API and promotes the
// response text to an event announcement when the structured block is
// present. There are no internal retries: delivery is at-most-once and the
// dispatcher owns the degrade path, so one failed call is one failed event.
func (d *geminiDescriber) Describe(ctx context.Context, imageData []byte, mimeType string) (Result, error) {
	if len(imageData) == 0 || mimeType == "" {
		return Result{}, fmt.Errorf("%w: image data and MIME type are required", ErrProvider)
	}

	d.log.DebugContext(ctx, "Describing image", "image_size", len(imageData), "mime_type", mimeType)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromBytes(imageData, mimeType)}, genai.RoleUser),
	}

	resp, err := d.genaiClient.Models.GenerateContent(ctx, d.modelName, contents, d.contentConfig)
	if err != nil {
		d.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	text, err := d.extractTextFromResponse(ctx, resp)
	if err != nil {
		return Result{}, err
	}

	return Extract(text), nil
}

func (d *geminiDescriber) extractTextFromResponse(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		d.log.ErrorContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", fmt.Errorf("%w: blocked by safety filter: %s", ErrProvider, reasonMsg)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		d.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", fmt.Errorf("%w: empty response, finish reason: %s", ErrProvider, finishReason)
	}

	text := resp.Text()
	if text == "" {
		d.log.WarnContext(ctx, "Gemini response text is empty")
		return "", fmt.Errorf("%w: empty response text", ErrProvider)
	}

	return text, nil
}
