package core

import (
	"errors"
	"testing"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/types"
)

func TestInsertTextSpaces(t *testing.T) {
	ed := newTestEditor(t, "<p>ab</p>")
	steps := []struct {
		text string
		pos  int
		want string
	}{
		{"x", 1, "axb"},
		{" ", 3, "axb" + dom.NBSP},
		{"y", 4, "axb y"},
	}
	for _, s := range steps {
		if _, err := ed.InsertText(s.text, s.pos); err != nil {
			t.Fatal(err)
		}
		if ed.Text() != s.want {
			t.Errorf("after inserting %q at %d: text = %q, want %q", s.text, s.pos, ed.Text(), s.want)
		}
	}
}

func TestInsertTextAfterHighlight(t *testing.T) {
	ed := newTestEditor(t, `<p><mark data-editor-highlight="true">ab</mark></p>`)
	if _, err := ed.InsertText("c", 2); err != nil {
		t.Fatal(err)
	}
	want := `<p><mark data-editor-highlight="true">ab</mark>c</p>`
	if ed.InnerHTML() != want {
		t.Errorf("html = %s, want %s", ed.InnerHTML(), want)
	}
}

func TestDeleteRange(t *testing.T) {
	ed := newTestEditor(t, "<p>ab<b>cd</b>e</p>")
	if err := ed.DeleteRange(types.Region{Start: 1, End: 4}); err != nil {
		t.Fatal(err)
	}
	if ed.Text() != "ae" {
		t.Errorf("text = %q", ed.Text())
	}
	if want := "<p>a<b></b>e</p>"; ed.InnerHTML() != want {
		t.Errorf("html = %s, want %s", ed.InnerHTML(), want)
	}
	if err := ed.DeleteRange(types.Region{Start: 2, End: 1}); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("err = %v, want ErrInvalidRegion", err)
	}
}

func TestApplyExternalMutationHonoursPlacedCaret(t *testing.T) {
	ed := newTestEditor(t, "<p>abc</p>")
	var updates []string
	ed.Events().Subscribe(event.TypeElementUpdate, func(e event.Event) bool {
		updates = append(updates, e.Data.(event.ElementUpdateData).Description)
		return false
	})
	if err := ed.SetCurrentPosition(1); err != nil {
		t.Fatal(err)
	}
	p := elementsByTag(ed.Root(), "p")[0]
	ed.ApplyExternalMutation("append", func() {
		x := dom.NewText("X")
		dom.Append(p, x)
		ed.PlaceCaret(x, 1)
	})
	if ed.Selection() != types.Caret(4) {
		t.Errorf("selection = %v, want caret at 4", ed.Selection())
	}
	if len(updates) != 1 || updates[0] != "append" {
		t.Errorf("element updates = %v", updates)
	}
	if !ed.Detector().Pending() {
		t.Error("mutation should schedule a diff pass")
	}
}

func TestApplyExternalMutationKeepsAnchor(t *testing.T) {
	ed := newTestEditor(t, "<p>abc</p>")
	if err := ed.SetCurrentPosition(2); err != nil {
		t.Fatal(err)
	}
	p := elementsByTag(ed.Root(), "p")[0]
	ed.ApplyExternalMutation("prepend paragraph", func() {
		q := dom.NewElement("p")
		q.AppendChild(dom.NewText("zz"))
		dom.InsertBefore(p, q)
	})
	if ed.Selection() != types.Caret(4) {
		t.Errorf("selection = %v, want caret at 4", ed.Selection())
	}
}

func TestApplyExternalMutationClampsLostCaret(t *testing.T) {
	ed := newTestEditor(t, "<p>abc</p>")
	if err := ed.SetCurrentPosition(2); err != nil {
		t.Fatal(err)
	}
	p := elementsByTag(ed.Root(), "p")[0]
	ed.ApplyExternalMutation("replace content", func() {
		dom.Detach(p)
		dom.Append(ed.Root(), dom.NewText("q"))
	})
	if ed.Selection() != types.Caret(1) {
		t.Errorf("selection = %v, want caret at 1", ed.Selection())
	}
}

func TestReplaceTextWithHTML(t *testing.T) {
	ed := newTestEditor(t, "<p>hello world</p>")
	nodes, err := ed.ReplaceTextWithHTML(0, 5, "<b>bye</b>")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || dom.TagName(nodes[0]) != "b" {
		t.Errorf("inserted nodes = %v", nodes)
	}
	if want := "<p><b>bye</b> world</p>"; ed.InnerHTML() != want {
		t.Errorf("html = %s, want %s", ed.InnerHTML(), want)
	}
	if ed.Selection() != types.Caret(3) {
		t.Errorf("selection = %v, want caret at 3", ed.Selection())
	}
	if ed.History().Len() != 1 {
		t.Errorf("history length = %d, want 1", ed.History().Len())
	}
	if _, err := ed.ReplaceTextWithHTML(4, 2, "x"); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("err = %v, want ErrInvalidRegion", err)
	}
}

func TestReplaceNodeWithHTMLKeepsCaret(t *testing.T) {
	ed := newTestEditor(t, "<p>a</p><p>b</p>")
	if err := ed.SetCurrentPosition(0); err != nil {
		t.Fatal(err)
	}
	second := elementsByTag(ed.Root(), "p")[1]
	out, err := ed.ReplaceNodeWithHTML(second, "<h1>c</h1>", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || !dom.IsText(out[1]) {
		t.Errorf("expected the heading plus a trailing marker, got %v", out)
	}
	if ed.Text() != "ac"+dom.InvisibleSpace {
		t.Errorf("text = %q", ed.Text())
	}
	if ed.Selection() != types.Caret(0) {
		t.Errorf("selection = %v, want caret at 0", ed.Selection())
	}
}

func TestReplaceNodeWithHTMLPlacesCaretAfter(t *testing.T) {
	ed := newTestEditor(t, "<p>a</p><p>b</p>")
	if err := ed.SetCurrentPosition(0); err != nil {
		t.Fatal(err)
	}
	first := elementsByTag(ed.Root(), "p")[0]
	if _, err := ed.ReplaceNodeWithHTML(first, "<p>z</p>", true); err != nil {
		t.Fatal(err)
	}
	if ed.Text() != "z"+dom.InvisibleSpace+"b" {
		t.Errorf("text = %q", ed.Text())
	}
	if ed.Selection() != types.Caret(1) {
		t.Errorf("selection = %v, want caret at 1", ed.Selection())
	}
}

func TestRemoveNodeMovesCaretBack(t *testing.T) {
	ed := newTestEditor(t, "<p>ab</p><p>cd</p>")
	if err := ed.SetCurrentPosition(3); err != nil {
		t.Fatal(err)
	}
	second := elementsByTag(ed.Root(), "p")[1]
	holder, err := ed.RemoveNode(second)
	if err != nil {
		t.Fatal(err)
	}
	if holder == nil || holder.Data != "ab" {
		t.Errorf("caret holder = %+v", holder)
	}
	if ed.Text() != "ab" || ed.Selection() != types.Caret(2) {
		t.Errorf("text = %q, selection = %v", ed.Text(), ed.Selection())
	}
	if _, err := ed.RemoveNode(ed.Root()); !errors.Is(err, ErrNodeNotInTree) {
		t.Errorf("removing the root: err = %v", err)
	}
}

func TestPrependChildrenHTML(t *testing.T) {
	ed := newTestEditor(t, "<p>b</p>")
	if err := ed.SetCurrentPosition(1); err != nil {
		t.Fatal(err)
	}
	p := elementsByTag(ed.Root(), "p")[0]
	out, err := ed.PrependChildrenHTML(p, "<i>a</i>", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Errorf("no marker expected before existing text, got %d nodes", len(out))
	}
	if ed.InnerHTML() != "<p><i>a</i>b</p>" {
		t.Errorf("html = %s", ed.InnerHTML())
	}
	if ed.Selection() != types.Caret(2) {
		t.Errorf("selection = %v, want caret at 2", ed.Selection())
	}
}
