package vision

import (
	"bufio"
	"strings"
)

// HeaderToken marks the start of the structured event block in the raw
// provider text. The token must appear alone on its own line.
const HeaderToken = "[EVENTO]"

// Field labels of the structured event block, shared with the reply
// formatter so extraction and rendering cannot drift apart.
const (
	LabelName             = "Nome evento"
	LabelShortDescription = "Descrizione breve"
	LabelDates            = "Date"
	LabelLocation         = "Luogo"
	LabelOrganizer        = "Organizzatore"
	LabelTicketInfo       = "Biglietti"
	LabelContact          = "Contatti"
)

// Extract applies the structured-block grammar to raw provider text. When
// the header token is present and a non-empty event name can be parsed, the
// result is promoted to the event-announcement variant; in every other case
// (no header, no name, ambiguous lines) the full raw text becomes a freeform
// result. Missing individual fields are left absent, never an error.
func Extract(raw string) Result {
	headerAt := -1
	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if headerAt < 0 && strings.TrimSpace(line) == HeaderToken {
			headerAt = len(lines)
		}
		lines = append(lines, line)
	}

	if headerAt < 0 {
		return Result{Text: raw}
	}

	event := &EventAnnouncement{}
	for _, line := range lines[headerAt+1:] {
		label, value, ok := parseFieldLine(line)
		if !ok {
			continue
		}
		switch label {
		case LabelName:
			event.Name = value
		case LabelShortDescription:
			event.ShortDescription = value
		case LabelDates:
			event.Dates = value
		case LabelLocation:
			event.Location = value
		case LabelOrganizer:
			event.Organizer = value
		case LabelTicketInfo:
			event.TicketInfo = value
		case LabelContact:
			event.Contact = value
		}
	}

	// A structured block without a name is not trustworthy enough to
	// present as an event; fall back to the full raw text.
	if event.Name == "" {
		return Result{Text: raw}
	}

	return Result{Event: event}
}

// parseFieldLine matches one "- Label: value" bullet. The bullet marker is
// optional and unknown labels are rejected by the caller's switch.
func parseFieldLine(line string) (label, value string, ok bool) {
	s := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(s, marker) {
			s = strings.TrimSpace(strings.TrimPrefix(s, marker))
			break
		}
	}

	idx := strings.Index(s, ":")
	if idx <= 0 {
		return "", "", false
	}

	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), true
}
