package vision_test

import (
	"testing"

	"github.com/descrivibot/descrivibot/internal/vision"
)

func TestExtractFreeform(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
	}{
		{
			name: "plain prose",
			raw:  "Una montagna innevata al tramonto, con un lago in primo piano.",
		},
		{
			name: "empty text",
			raw:  "",
		},
		{
			name: "header token embedded mid-line",
			raw:  "La scritta [EVENTO] compare su un cartello stradale.",
		},
		{
			name: "header without any fields",
			raw:  "[EVENTO]\nNon sono riuscito a leggere altro.",
		},
		{
			name: "header with fields but no name",
			raw:  "[EVENTO]\n- Luogo: Piazza del Duomo\n- Date: 12 marzo",
		},
		{
			name: "header with empty name value",
			raw:  "[EVENTO]\n- Nome evento:\n- Luogo: Piazza del Duomo",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := vision.Extract(tc.raw)
			if result.IsEvent() {
				t.Fatalf("Extract(%q) produced event variant, want freeform", tc.raw)
			}
			if result.Text != tc.raw {
				t.Errorf("Extract(%q).Text = %q, want raw text unchanged", tc.raw, result.Text)
			}
		})
	}
}

func TestExtractEvent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
		want vision.EventAnnouncement
	}{
		{
			name: "all seven fields",
			raw: "[EVENTO]\n" +
				"- Nome evento: Festival Jazz\n" +
				"- Descrizione breve: Tre serate di jazz dal vivo\n" +
				"- Date: 12-14 luglio 2026\n" +
				"- Luogo: Parco della Musica, Roma\n" +
				"- Organizzatore: Associazione Note Blu\n" +
				"- Biglietti: 15 euro, ridotto 10\n" +
				"- Contatti: info@noteblu.it",
			want: vision.EventAnnouncement{
				Name:             "Festival Jazz",
				ShortDescription: "Tre serate di jazz dal vivo",
				Dates:            "12-14 luglio 2026",
				Location:         "Parco della Musica, Roma",
				Organizer:        "Associazione Note Blu",
				TicketInfo:       "15 euro, ridotto 10",
				Contact:          "info@noteblu.it",
			},
		},
		{
			name: "name only",
			raw:  "[EVENTO]\n- Nome evento: Sagra della Porchetta",
			want: vision.EventAnnouncement{Name: "Sagra della Porchetta"},
		},
		{
			name: "subset of fields with surrounding whitespace",
			raw: "  [EVENTO]  \n" +
				"-  Nome evento:  Mostra Fotografica \n" +
				"- Luogo: Galleria Comunale\n",
			want: vision.EventAnnouncement{
				Name:     "Mostra Fotografica",
				Location: "Galleria Comunale",
			},
		},
		{
			name: "alternate bullet markers",
			raw: "[EVENTO]\n" +
				"* Nome evento: Concerto di Capodanno\n" +
				"• Date: 1 gennaio 2027",
			want: vision.EventAnnouncement{
				Name:  "Concerto di Capodanno",
				Dates: "1 gennaio 2027",
			},
		},
		{
			name: "unknown labels ignored",
			raw: "[EVENTO]\n" +
				"- Nome evento: Fiera del Libro\n" +
				"- Prezzo speciale: 5 euro\n" +
				"- Contatti: 06 1234567",
			want: vision.EventAnnouncement{
				Name:    "Fiera del Libro",
				Contact: "06 1234567",
			},
		},
		{
			name: "prose before the header",
			raw: "L'immagine è una locandina.\n" +
				"[EVENTO]\n" +
				"- Nome evento: Notte Bianca",
			want: vision.EventAnnouncement{Name: "Notte Bianca"},
		},
		{
			name: "value containing colons",
			raw: "[EVENTO]\n" +
				"- Nome evento: Teatro: Atto Unico\n" +
				"- Date: sabato ore 21:30",
			want: vision.EventAnnouncement{
				Name:  "Teatro: Atto Unico",
				Dates: "sabato ore 21:30",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := vision.Extract(tc.raw)
			if !result.IsEvent() {
				t.Fatalf("Extract(%q) produced freeform, want event variant", tc.raw)
			}
			if result.Text != "" {
				t.Errorf("event variant carries text %q, want empty (exactly one variant active)", result.Text)
			}
			if *result.Event != tc.want {
				t.Errorf("Extract(%q).Event = %+v, want %+v", tc.raw, *result.Event, tc.want)
			}
		})
	}
}
