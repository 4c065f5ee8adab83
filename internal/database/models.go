package database

import "time"

// Delivery outcome values recorded in the journal.
const (
	OutcomeDescribed = "described" // freeform description delivered
	OutcomeEvent     = "event"     // structured event announcement delivered
	OutcomeDegraded  = "degraded"  // provider failed, apology delivered
	OutcomeDropped   = "dropped"   // image fetch or reply send failed, nothing delivered
)

// Delivery is one journal row recording the outcome of a processed image
// event. The journal is write-only observability data: nothing in the
// dispatch path reads it back.
type Delivery struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID     int64  `db:"chat_id"`
	MessageID  int64  `db:"message_id"`
	Outcome    string `db:"outcome"`
	DurationMS int64  `db:"duration_ms"`
}
