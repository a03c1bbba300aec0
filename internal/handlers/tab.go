package handlers

import (
	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
)

// TabHandler jumps the caret to the start of the next text position in
// document order, creating a marker where an element has none.
type TabHandler struct{}

func (TabHandler) Name() string { return "tab" }

func (TabHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return isKeyDown(ev, input.KeyTab) && !ev.Has(input.ModShift) && ed.CurrentSelectionIsCaret()
}

func (TabHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	var err error
	ed.ApplyExternalMutation("tab", func() {
		text, _, cerr := caretText(ed)
		if cerr != nil {
			err = cerr
			return
		}
		if next := dom.NextTextNode(text, ed.Root()); next != nil {
			ed.PlaceCaret(next, 0)
		}
	})
	return handled, err
}
