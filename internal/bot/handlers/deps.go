package handlers

import (
	"log/slog"

	"github.com/descrivibot/descrivibot/internal/config"
	"github.com/descrivibot/descrivibot/internal/database"
	"github.com/descrivibot/descrivibot/internal/vision"
)

// HandlerDeps provides dependencies for Telegram handlers. Store may be nil
// when the delivery journal is disabled (the Lambda entry point runs
// stateless).
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Describer vision.Describer
}
