package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/rawedit/internal/theme"
	"github.com/bethropolis/rawedit/internal/types"
	"github.com/gdamore/tcell/v2"
)

func TestDefaultText(t *testing.T) {
	tests := []struct {
		name  string
		setup func(sb *StatusBar)
		want  string
	}{
		{"unnamed caret", func(sb *StatusBar) {}, "[No Name] -- Pos: 0"},
		{"modified selection", func(sb *StatusBar) {
			sb.SetFileInfo("notes.html", true)
			sb.SetSelection(types.Region{Start: 2, End: 5})
		}, "notes.html [Modified] -- Sel: 2-5"},
		{"properties and fields", func(sb *StatusBar) {
			sb.SetFileInfo("a.html", false)
			sb.SetSelection(types.Caret(4))
			sb.SetProperties("Bold")
			sb.SetField("words", "12")
			sb.SetField("autosave", "on")
		}, "a.html -- Pos: 4 -- Bold -- autosave: on -- words: 12"},
		{"cleared field", func(sb *StatusBar) {
			sb.SetField("words", "3")
			sb.SetField("words", "")
		}, "[No Name] -- Pos: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := New(DefaultConfig())
			tt.setup(sb)
			if got, isMessage := sb.Text(); got != tt.want || isMessage {
				t.Errorf("Text() = %q, %v, want %q", got, isMessage, tt.want)
			}
		})
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb := New(Config{MessageTimeout: time.Second})
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb.now = func() time.Time { return clock }

	sb.SetTemporaryMessage("saved %s", "a.html")
	if got, isMessage := sb.Text(); got != "saved a.html" || !isMessage {
		t.Errorf("Text() = %q, %v", got, isMessage)
	}

	clock = clock.Add(2 * time.Second)
	if got, isMessage := sb.Text(); isMessage || !strings.HasPrefix(got, "[No Name]") {
		t.Errorf("message did not expire: %q", got)
	}
}

func TestDrawUsesLastRow(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(30, 3)

	sb := New(DefaultConfig())
	sb.SetFileInfo("x.html", true)
	sb.Draw(s, 30, 3, &theme.PaperDark)

	var row strings.Builder
	for x := 0; x < 30; x++ {
		r, _, style, _ := s.GetContent(x, 2)
		row.WriteRune(r)
		if want := theme.PaperDark.GetStyle(theme.StyleStatusBarModified); style != want {
			t.Fatalf("cell %d style = %v, want the modified style", x, style)
		}
	}
	if got := strings.TrimRight(row.String(), " "); got != "x.html [Modified] -- Pos: 0" {
		t.Errorf("row = %q", got)
	}
}
