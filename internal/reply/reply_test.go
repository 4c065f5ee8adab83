package reply_test

import (
	"strings"
	"testing"

	"github.com/descrivibot/descrivibot/internal/reply"
	"github.com/descrivibot/descrivibot/internal/vision"
)

func TestFormatFreeform(t *testing.T) {
	t.Parallel()

	prose := "Una montagna innevata al tramonto, con un lago in primo piano."
	got := reply.Format(vision.Result{Text: prose})
	want := "Ecco la descrizione dell'immagine:\n\n" + prose

	if got != want {
		t.Errorf("Format(freeform) = %q, want %q", got, want)
	}
	if strings.Contains(got, vision.HeaderToken) {
		t.Errorf("freeform output contains structured header token")
	}
}

func TestFormatEvent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		event       vision.EventAnnouncement
		want        string
		wantAbsent  []string
		wantPresent []string
	}{
		{
			name: "all fields in fixed order",
			event: vision.EventAnnouncement{
				Name:             "Festival Jazz",
				ShortDescription: "Tre serate di jazz dal vivo",
				Dates:            "12-14 luglio 2026",
				Location:         "Parco della Musica, Roma",
				Organizer:        "Associazione Note Blu",
				TicketInfo:       "15 euro",
				Contact:          "info@noteblu.it",
			},
			want: reply.Prefix + "\n\n" +
				"[EVENTO]\n" +
				"- Nome evento: Festival Jazz\n" +
				"- Descrizione breve: Tre serate di jazz dal vivo\n" +
				"- Date: 12-14 luglio 2026\n" +
				"- Luogo: Parco della Musica, Roma\n" +
				"- Organizzatore: Associazione Note Blu\n" +
				"- Biglietti: 15 euro\n" +
				"- Contatti: info@noteblu.it",
		},
		{
			name:  "absent fields omitted entirely",
			event: vision.EventAnnouncement{Name: "Festival Jazz", Location: "Roma"},
			want: reply.Prefix + "\n\n" +
				"[EVENTO]\n" +
				"- Nome evento: Festival Jazz\n" +
				"- Luogo: Roma",
			wantAbsent:  []string{"Organizzatore", "Descrizione breve", "Biglietti", "Contatti", "Date"},
			wantPresent: []string{"Nome evento: Festival Jazz"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			event := tc.event
			got := reply.Format(vision.Result{Event: &event})
			if got != tc.want {
				t.Errorf("Format(event) = %q, want %q", got, tc.want)
			}
			for _, absent := range tc.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("output contains label %q for absent field", absent)
				}
			}
			for _, present := range tc.wantPresent {
				if !strings.Contains(got, present) {
					t.Errorf("output missing %q", present)
				}
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	t.Parallel()

	results := []vision.Result{
		{Text: "Un gatto su un divano."},
		{Event: &vision.EventAnnouncement{Name: "Notte Bianca", Dates: "sabato"}},
	}

	for _, r := range results {
		first := reply.Format(r)
		second := reply.Format(r)
		if first != second {
			t.Errorf("Format is not deterministic: %q vs %q", first, second)
		}
	}
}

// TestFormatRoundTrip checks every field value can be recovered from the
// output by locating its fixed label prefix: labels never collide or
// reorder.
func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	event := vision.EventAnnouncement{
		Name:             "Festival Jazz",
		ShortDescription: "Tre serate di jazz",
		Dates:            "12 luglio",
		Location:         "Roma",
		Organizer:        "Note Blu",
		TicketInfo:       "15 euro",
		Contact:          "info@noteblu.it",
	}

	out := reply.Format(vision.Result{Event: &event})

	wantLines := map[string]string{
		vision.LabelName:             event.Name,
		vision.LabelShortDescription: event.ShortDescription,
		vision.LabelDates:            event.Dates,
		vision.LabelLocation:         event.Location,
		vision.LabelOrganizer:        event.Organizer,
		vision.LabelTicketInfo:       event.TicketInfo,
		vision.LabelContact:          event.Contact,
	}

	for label, value := range wantLines {
		marker := "- " + label + ": "
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("label %q not found in output %q", label, out)
		}
		if strings.Index(out[idx+1:], marker) >= 0 {
			t.Errorf("label %q appears more than once", label)
		}
		rest := out[idx+len(marker):]
		if end := strings.IndexByte(rest, '\n'); end >= 0 {
			rest = rest[:end]
		}
		if rest != value {
			t.Errorf("recovered %q = %q, want %q", label, rest, value)
		}
	}
}

// TestFixedTextualContract pins the strings the channel contract depends on
// byte for byte.
func TestFixedTextualContract(t *testing.T) {
	t.Parallel()

	if reply.Prefix != "Ecco la descrizione dell'immagine:" {
		t.Errorf("unexpected reply prefix: %q", reply.Prefix)
	}
	if reply.Apology != "Mi dispiace, non sono riuscito a elaborare questa immagine. Riprova più tardi." {
		t.Errorf("unexpected apology string: %q", reply.Apology)
	}
	if reply.Welcome != "Ciao! Sono Image Descriptor Bot. Inviami un'immagine e ti fornirò una descrizione dettagliata!" {
		t.Errorf("unexpected welcome string: %q", reply.Welcome)
	}
	if vision.HeaderToken != "[EVENTO]" {
		t.Errorf("unexpected header token: %q", vision.HeaderToken)
	}
}
