package core

import (
	"testing"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/types"
)

func TestHighlightRangeWrapsText(t *testing.T) {
	ed := newTestEditor(t, "<p>hello world</p>")
	if err := ed.HighlightRange(0, 5, nil); err != nil {
		t.Fatal(err)
	}
	want := `<p><mark data-editor-highlight="true">hello</mark> world</p>`
	if ed.InnerHTML() != want {
		t.Errorf("html = %s, want %s", ed.InnerHTML(), want)
	}
	if ed.Text() != "hello world" {
		t.Errorf("highlighting changed the text to %q", ed.Text())
	}

	if err := ed.HighlightRange(0, 5, nil); err != nil {
		t.Fatal(err)
	}
	found := ed.FindHighlights(nil)
	if len(found) != 1 || found[0].Start != 0 || found[0].End != 5 {
		t.Fatalf("highlights after duplicate request = %d", len(found))
	}

	ed.ClearHighlightForRange(0, 5)
	if ed.InnerHTML() != "<p>hello world</p>" {
		t.Errorf("html after clearing = %s", ed.InnerHTML())
	}
}

func TestHighlightRangeFlagsWholeElement(t *testing.T) {
	ed := newTestEditor(t, "<p><b>ab</b>cd</p>")
	if err := ed.HighlightRange(0, 2, nil); err != nil {
		t.Fatal(err)
	}
	if want := `<p><b data-editor-highlight="true">ab</b>cd</p>`; ed.InnerHTML() != want {
		t.Errorf("html = %s, want %s", ed.InnerHTML(), want)
	}
	ed.ClearAllHighlights()
	if ed.InnerHTML() != "<p><b>ab</b>cd</p>" {
		t.Errorf("html after clearing = %s", ed.InnerHTML())
	}
}

func TestHighlightAttributesAndLocations(t *testing.T) {
	ed := newTestEditor(t, "<p>hello world</p>")
	if err := ed.SetCurrentPosition(8); err != nil {
		t.Fatal(err)
	}
	if err := ed.HighlightRange(6, 11, map[string]string{"data-kind": "spelling"}); err != nil {
		t.Fatal(err)
	}
	found := ed.FindHighlights(nil)
	if len(found) != 1 {
		t.Fatalf("got %d highlights", len(found))
	}
	if kind, _ := dom.Attr(found[0].DOMNode, "data-kind"); kind != "spelling" {
		t.Errorf("data-kind = %q", kind)
	}
	if ed.Selection() != types.Caret(8) {
		t.Errorf("caret moved to %v", ed.Selection())
	}
	if rn := ed.CurrentRichNode(); rn == nil || !rn.ContainsPos(8) {
		t.Error("caret should have been re-seated in the split text")
	}

	ed.ClearHighlightForLocations([]types.Region{{Start: 0, End: 2}})
	if len(ed.FindHighlights(nil)) != 1 {
		t.Error("a non-matching location must not clear anything")
	}
	ed.ClearHighlightForLocations([]types.Region{{Start: 6, End: 11}})
	if len(ed.FindHighlights(nil)) != 0 {
		t.Error("highlight should be gone")
	}
}
