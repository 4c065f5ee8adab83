package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for delivery journal operations. Methods
// accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveDelivery inserts a new delivery record.
	SaveDelivery(ctx context.Context, delivery *Delivery) error

	// PruneDeliveries deletes journal rows older than the cutoff and
	// returns the number of rows removed.
	PruneDeliveries(ctx context.Context, olderThan time.Time) (int64, error)

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx. It requires a
// connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveDelivery(ctx context.Context, delivery *Delivery) error {
	if delivery == nil {
		return fmt.Errorf("cannot save nil delivery")
	}
	if delivery.ChatID == 0 {
		return fmt.Errorf("delivery must have a non-zero chat_id")
	}
	if delivery.MessageID == 0 {
		return fmt.Errorf("delivery must have a non-zero message_id")
	}
	if delivery.Outcome == "" {
		return fmt.Errorf("delivery must have an outcome")
	}

	delivery.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO deliveries (chat_id, message_id, outcome, duration_ms, created_at)
        VALUES (:chat_id, :message_id, :outcome, :duration_ms, :created_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, delivery)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving delivery",
			"chat_id", delivery.ChatID, "message_id", delivery.MessageID, "error", err)
		return fmt.Errorf("failed to save delivery (chat %d, message %d): %w",
			delivery.ChatID, delivery.MessageID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		delivery.ID = uint(id)
	}

	return nil
}

func (s *sqlxStore) PruneDeliveries(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM deliveries WHERE created_at < ?`, olderThan.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error pruning deliveries", "older_than", olderThan, "error", err)
		return 0, fmt.Errorf("failed to prune deliveries: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}

func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}
