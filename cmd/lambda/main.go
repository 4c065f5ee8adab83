// Package main contains the serverless entrypoint. Each invocation carries
// one Telegram webhook payload; credentials are resolved from SSM once at
// cold start.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	tgbot "github.com/go-telegram/bot"

	"github.com/descrivibot/descrivibot/internal/bot/handlers"
	"github.com/descrivibot/descrivibot/internal/config"
	"github.com/descrivibot/descrivibot/internal/logger"
	"github.com/descrivibot/descrivibot/internal/secrets"
	"github.com/descrivibot/descrivibot/internal/telegram"
	"github.com/descrivibot/descrivibot/internal/vision"
	"github.com/descrivibot/descrivibot/internal/webhook"
)

func main() {
	ctx := context.Background()

	log := logger.New(envOr("LOG_LEVEL", "info"), true)
	slog.SetDefault(log)

	h, err := setup(ctx, log)
	if err != nil {
		// Configuration errors are fatal: fail fast before accepting
		// any events.
		log.Error("Lambda initialization failed", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func setup(ctx context.Context, log *slog.Logger) (*webhook.Handler, error) {
	sec, err := secrets.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	telegramToken, err := sec.Get(ctx, secrets.ParamTelegramToken)
	if err != nil {
		return nil, err
	}
	geminiAPIKey, err := sec.Get(ctx, secrets.ParamGeminiAPIKey)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Telegram: config.TelegramConfig{Token: telegramToken},
		Gemini: config.GeminiConfig{
			APIKey:      geminiAPIKey,
			Model:       envOr("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature: 0.7,
			Timeout:     2 * time.Minute,
		},
	}

	describer, err := vision.NewGeminiDescriber(ctx, vision.Config{
		APIKey:      cfg.Gemini.APIKey,
		ModelName:   cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
	}, log)
	if err != nil {
		return nil, err
	}

	// Store is nil: the serverless entry is stateless by design.
	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Describer: describer,
	}

	botOpts := []tgbot.Option{
		tgbot.WithSkipGetMe(),
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewPhotoHandler(hDeps)),
	}
	tg, err := telegram.NewBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		return nil, err
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		return nil, err
	}

	return webhook.NewHandler(tg, log), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
