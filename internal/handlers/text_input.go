package handlers

import (
	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
)

// TextInputHandler types a character at the caret, replacing a selected
// range first.
type TextInputHandler struct{}

func (TextInputHandler) Name() string { return "text-input" }

func (TextInputHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return ev.Type == input.EventKeyDown && ev.IsPlainRune()
}

func (TextInputHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	return handled, insertText(ed, "text input", string(ev.Rune))
}

// insertText replaces the selection with text and puts the caret behind it.
func insertText(ed *core.Editor, description, text string) error {
	sel := ed.Selection()
	var err error
	ed.ApplyExternalMutation(description, func() {
		if !sel.IsCaret() {
			if err = ed.DeleteRange(sel); err != nil {
				return
			}
		}
		n, ierr := ed.InsertText(text, sel.Start)
		if ierr != nil {
			err = ierr
			return
		}
		rn := ed.Lookup(n)
		if rn == nil {
			err = core.ErrNodeNotInTree
			return
		}
		ed.PlaceCaret(n, sel.Start-rn.Start+dom.RuneLen(text))
	})
	return err
}

// FlaggedRemoveInputHandler revives an element flagged for removal when the
// user types into it: the flag and the placeholder marker go, and text input
// continues as usual.
type FlaggedRemoveInputHandler struct{}

func (FlaggedRemoveInputHandler) Name() string { return "flagged-remove-input" }

func (FlaggedRemoveInputHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	if ev.Type != input.EventKeyDown || !ev.IsPlainRune() || !ed.CurrentSelectionIsCaret() {
		return false
	}
	n := ed.CurrentNode()
	return n != nil && dom.ClosestWithin(n, ed.Root(), isFlagged) != nil
}

func (FlaggedRemoveInputHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	var err error
	ed.ApplyExternalMutation("revive flagged element", func() {
		text, rel, cerr := caretText(ed)
		if cerr != nil {
			err = cerr
			return
		}
		if el := dom.ClosestWithin(text, ed.Root(), isFlagged); el != nil {
			dom.RemoveAttr(el, FlaggedRemoveAttr)
		}
		runes := []rune(text.Data)
		rel = dom.RuneLen(dom.VisibleText(string(runes[:rel])))
		text.Data = dom.VisibleText(text.Data)
		ed.PlaceCaret(text, rel)
	})
	return Response{AllowPropagation: true}, err
}
