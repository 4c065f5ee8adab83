// Package vision provides the image description capability used by the bot.
// It defines the Describer interface, the description result types, and a
// Gemini-backed implementation.
package vision

import "errors"

// ErrProvider is the single failure abstraction for the vision provider.
// Timeouts, quota errors, transport failures, blocked prompts, and empty or
// malformed responses all surface as errors wrapping ErrProvider. Callers
// decide how to degrade; the provider never synthesizes a partial result.
var ErrProvider = errors.New("vision provider error")

// EventAnnouncement holds the fields extracted from an event flyer or
// poster. All fields except Name may be empty when the provider could not
// find the corresponding information.
type EventAnnouncement struct {
	Name             string
	ShortDescription string
	Dates            string
	Location         string
	Organizer        string
	TicketInfo       string
	Contact          string
}

// Result is the outcome of describing one image. Exactly one variant is
// active: when Event is non-nil the result is an event announcement,
// otherwise Text carries a freeform prose description.
type Result struct {
	Text  string
	Event *EventAnnouncement
}

// IsEvent reports whether the event-announcement variant is active.
func (r Result) IsEvent() bool {
	return r.Event != nil
}
