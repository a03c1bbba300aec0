package core

import (
	"testing"

	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/types"
)

func TestUndoRestoresContentAndCaret(t *testing.T) {
	ed := newTestEditor(t, "hello")
	ed.Attach()
	ed.FlushChanges()

	if err := ed.SetCurrentPosition(5); err != nil {
		t.Fatal(err)
	}
	ed.CreateSnapshot()
	ed.ApplyExternalMutation("type", func() {
		n, err := ed.InsertText("x", 5)
		if err != nil {
			t.Fatal(err)
		}
		ed.PlaceCaret(n, 6)
	})
	ed.FlushChanges()
	if ed.Text() != "hellox" || ed.Selection() != types.Caret(6) {
		t.Fatalf("text = %q, selection = %v", ed.Text(), ed.Selection())
	}

	var removes []event.TextRemoveData
	ed.Events().Subscribe(event.TypeTextRemove, func(e event.Event) bool {
		removes = append(removes, e.Data.(event.TextRemoveData))
		return false
	})

	if !ed.Undo() {
		t.Fatal("Undo reported nothing to restore")
	}
	if ed.Text() != "hello" || ed.Selection() != types.Caret(5) {
		t.Errorf("after undo: text = %q, selection = %v", ed.Text(), ed.Selection())
	}
	before := ed.History().Len()
	ed.FlushChanges()
	if len(removes) != 1 || removes[0].Start != 5 || removes[0].End != 6 {
		t.Fatalf("removes = %+v", removes)
	}
	if !event.SkipsSnapshot(removes[0].Extra) {
		t.Error("undo diff should carry NoSnapshot")
	}
	if ed.History().Len() != before {
		t.Errorf("undo diff pushed a snapshot: %d -> %d", before, ed.History().Len())
	}

	if ed.Undo() {
		t.Error("only snapshots equal to the current content remain, Undo should report false")
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	ed := newTestEditor(t, "abc")
	if ed.Undo() {
		t.Error("Undo on an empty history should report false")
	}
	if ed.Text() != "abc" {
		t.Errorf("text = %q", ed.Text())
	}
}
