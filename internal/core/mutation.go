package core

import (
	"fmt"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/types"
	"golang.org/x/net/html"
)

// ApplyExternalMutation runs mutate and brings the editor back in sync with
// the document: the position tree is rebuilt, the caret is re-seated, an
// element update is announced and a diff pass is scheduled.
//
// A caret placed with PlaceCaret during mutate wins. Otherwise the caret
// returns to its previous text node when that node survived, then to the
// native selection, then to its clamped absolute position.
func (e *Editor) ApplyExternalMutation(description string, mutate func(), extra ...event.ExtraInfo) {
	logger.DebugTagf("mutation", "external mutation: %s", description)
	anchor := e.currentNode
	rel, hasRel := e.RelativeCursorPosition()
	moves := e.caretMoves

	mutate()
	e.UpdateRichNode()
	e.restoreCaret(anchor, rel, hasRel, moves != e.caretMoves)

	e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: description})
	e.detector.Trigger(extra...)
}

func (e *Editor) restoreCaret(anchor *html.Node, rel int, hasRel, moved bool) {
	if moved && e.resolveDOMSelection() {
		return
	}
	if hasRel && anchor != nil && e.tree.Has(anchor) && dom.RuneLen(anchor.Data) >= rel {
		if err := e.setCaret(anchor, rel, true); err == nil {
			return
		}
	}
	if !moved && e.resolveDOMSelection() {
		return
	}
	if err := e.setCurrentPosition(e.selection.Start, true); err != nil {
		logger.WarnTagf("selection", "could not restore caret: %v", err)
	}
}

func (e *Editor) resolveDOMSelection() bool {
	r := e.domSelection
	if r.IsZero() || !e.tree.Has(r.StartContainer) || !e.tree.Has(r.EndContainer) {
		return false
	}
	return e.UpdateSelectionFromRange(r) == nil
}

// InsertText splices text into the document at pos and returns the text node
// that received it. A single space is stored as a non-breaking space so it
// stays visible; a non-breaking space typed earlier turns back into a plain
// one once text follows it. Typing at the end of a highlight continues
// outside the mark.
//
// InsertText does not schedule change detection; call it from within
// ApplyExternalMutation.
func (e *Editor) InsertText(text string, pos int) (*html.Node, error) {
	rn, err := e.FindSuitableNodeForPosition(pos)
	if err != nil {
		return nil, err
	}
	if text == " " {
		text = dom.NBSP
	}

	var target *html.Node
	if parent := rn.DOMNode.Parent; pos == rn.End && dom.IsElement(parent, "mark") && parent.Parent != nil {
		target = dom.NewText(text)
		dom.InsertAfter(parent, target)
	} else {
		target = rn.DOMNode
		offset := pos - rn.Start
		runes := []rune(target.Data)
		if text != dom.NBSP && offset > 0 && string(runes[offset-1]) == dom.NBSP {
			runes[offset-1] = ' '
		}
		target.Data = string(runes[:offset]) + text + string(runes[offset:])
	}
	e.currentNode = target
	e.UpdateRichNode()
	return target, nil
}

// DeleteRange cuts r out of the text and void nodes it covers. Elements left
// empty stay in place. Like InsertText it leaves change detection to the
// caller.
func (e *Editor) DeleteRange(r types.Region) error {
	if r.Start > r.End {
		return fmt.Errorf("%w: %s", ErrInvalidRegion, r)
	}
	r = r.Clamp(types.Region{Start: 0, End: e.tree.Len()})
	if r.IsCaret() {
		return nil
	}
	for _, leaf := range e.tree.Root.Leaves() {
		if !leaf.IsPartiallyInRegion(r.Start, r.End) || insideOpaque(leaf, e.tree.Root) {
			continue
		}
		switch leaf.Type {
		case richnode.TypeText:
			from := maxInt(r.Start, leaf.Start) - leaf.Start
			to := minInt(r.End, leaf.End) - leaf.Start
			runes := []rune(leaf.DOMNode.Data)
			leaf.DOMNode.Data = string(runes[:from]) + string(runes[to:])
		case richnode.TypeVoid:
			if leaf.DOMNode == e.currentNode {
				e.currentNode = nil
			}
			dom.Detach(leaf.DOMNode)
		}
	}
	e.UpdateRichNode()
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
