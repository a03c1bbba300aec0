package handlers

import (
	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
	"github.com/bethropolis/rawedit/internal/logger"
	"golang.org/x/net/html"
)

// EnterHandler breaks the line at the caret. Inside a list item it splits or
// creates items; elsewhere it inserts a br.
type EnterHandler struct{}

func (EnterHandler) Name() string { return "enter" }

func (EnterHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return isKeyDown(ev, input.KeyEnter) && ed.CurrentSelectionIsCaret()
}

func (EnterHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	var err error
	ed.ApplyExternalMutation("enter", func() {
		text, rel, cerr := caretText(ed)
		if cerr != nil {
			err = cerr
			return
		}
		root := ed.Root()
		if li := dom.ClosestWithin(text, root, dom.IsBlock); dom.IsLI(li) {
			splitListItem(ed, li, text, rel)
			return
		}
		insertBreak(ed, text, rel)
	})
	return handled, err
}

func insertBreak(ed *core.Editor, text *html.Node, rel int) {
	right := dom.SplitText(text, rel)
	dom.InsertBefore(right, dom.NewElement("br"))
	if dom.VisibleText(right.Data) == "" {
		right.Data = dom.InvisibleSpace
	}
	ed.PlaceCaret(right, 0)
}

func splitListItem(ed *core.Editor, li, text *html.Node, rel int) {
	switch {
	case blank(li):
		leaveList(ed, li)
	case rel == 0 && atVisibleStart(li, text):
		item := dom.NewElement("li")
		dom.AppendPlaceholder(item)
		dom.InsertBefore(li, item)
		ed.PlaceCaret(text, 0)
	default:
		right := dom.SplitAt(li, text, rel)
		anchor := firstText(right)
		if anchor == nil {
			anchor = dom.NewPlaceholder()
			dom.Prepend(right, anchor)
		}
		if dom.IsVisiblyEmpty(right) {
			anchor.Data = dom.InvisibleSpace
		}
		logger.DebugTagf("list", "split list item at %d", rel)
		ed.PlaceCaret(anchor, 0)
	}
}

// leaveList drops an empty list item. In a nested list a new item follows
// the parent item; at the top level the caret goes behind the list.
func leaveList(ed *core.Editor, li *html.Node) {
	list := li.Parent
	var caret *html.Node
	if parentLI := list.Parent; dom.IsLI(parentLI) {
		item := dom.NewElement("li")
		dom.InsertAfter(parentLI, item)
		caret = dom.AppendPlaceholder(item)
	} else {
		caret = dom.InsertPlaceholderAfter(list)
	}
	dom.Detach(li)
	if dom.IsEmptyList(list) {
		dom.Detach(list)
	}
	logger.DebugTagf("list", "left list from an empty item")
	ed.PlaceCaret(caret, 0)
}
