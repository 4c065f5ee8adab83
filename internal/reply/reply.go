// Package reply renders description results into the fixed reply text sent
// back to the chat. The exported strings are a compatibility contract: both
// entry points and the tests depend on them byte for byte.
package reply

import (
	"strings"

	"github.com/descrivibot/descrivibot/internal/vision"
)

const (
	// Prefix opens every description reply.
	Prefix = "Ecco la descrizione dell'immagine:"

	// Apology replaces the description when the provider call fails.
	Apology = "Mi dispiace, non sono riuscito a elaborare questa immagine. Riprova più tardi."

	// Welcome is the fixed response to the /start command.
	Welcome = "Ciao! Sono Image Descriptor Bot. Inviami un'immagine e ti fornirò una descrizione dettagliata!"
)

// eventFields pins the render order of the structured block. Absent fields
// are omitted entirely, never rendered as empty placeholders.
var eventFields = []struct {
	label string
	value func(*vision.EventAnnouncement) string
}{
	{vision.LabelName, func(e *vision.EventAnnouncement) string { return e.Name }},
	{vision.LabelShortDescription, func(e *vision.EventAnnouncement) string { return e.ShortDescription }},
	{vision.LabelDates, func(e *vision.EventAnnouncement) string { return e.Dates }},
	{vision.LabelLocation, func(e *vision.EventAnnouncement) string { return e.Location }},
	{vision.LabelOrganizer, func(e *vision.EventAnnouncement) string { return e.Organizer }},
	{vision.LabelTicketInfo, func(e *vision.EventAnnouncement) string { return e.TicketInfo }},
	{vision.LabelContact, func(e *vision.EventAnnouncement) string { return e.Contact }},
}

// Format renders a description result into the final reply text. It is a
// pure function: deterministic, no I/O.
func Format(result vision.Result) string {
	var sb strings.Builder
	sb.WriteString(Prefix)
	sb.WriteString("\n\n")

	if !result.IsEvent() {
		sb.WriteString(result.Text)
		return sb.String()
	}

	sb.WriteString(vision.HeaderToken)
	for _, f := range eventFields {
		v := f.value(result.Event)
		if v == "" {
			continue
		}
		sb.WriteString("\n- ")
		sb.WriteString(f.label)
		sb.WriteString(": ")
		sb.WriteString(v)
	}
	return sb.String()
}
