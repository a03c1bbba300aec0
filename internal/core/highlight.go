package core

import (
	"fmt"
	"sort"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/types"
	"golang.org/x/net/html"
)

// HighlightAttr marks elements created or flagged by HighlightRange.
const HighlightAttr = "data-editor-highlight"

// HighlightRange highlights [start, end). Text is wrapped in mark elements;
// elements fully inside the range are flagged instead. attrs are copied onto
// every highlight. The text itself is left unchanged.
func (e *Editor) HighlightRange(start, end int, attrs map[string]string) error {
	if start > end {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRegion, start, end)
	}
	exact := e.FindHighlights(func(n *richnode.Node) bool { return n.Start == start && n.End == end })
	if len(exact) > 0 {
		logger.WarnTagf("highlight", "range [%d,%d) is already highlighted", start, end)
		return nil
	}

	for _, rn := range e.nodesToHighlight(e.tree.Root, start, end, true) {
		switch rn.Type {
		case richnode.TypeTag:
			if !rn.IsInRegion(start, end) {
				logger.WarnTagf("highlight", "<%s> only partially in [%d,%d), skipping", dom.TagName(rn.DOMNode), start, end)
				continue
			}
			flagHighlight(rn.DOMNode, attrs)
		case richnode.TypeText:
			highlightText(rn, start, end, attrs)
		}
	}
	e.afterHighlightChange("highlight range")
	return nil
}

// nodesToHighlight collects the nodes covering [start, end): an exact match
// is taken whole, a partially covered element is searched further. The root
// is always searched.
func (e *Editor) nodesToHighlight(rn *richnode.Node, start, end int, isRoot bool) []*richnode.Node {
	if rn.Start > end || rn.End < start {
		return nil
	}
	if !isRoot && rn.Start == start && rn.End == end {
		return []*richnode.Node{rn}
	}
	switch rn.Type {
	case richnode.TypeTag:
		if dom.IsOpaque(rn.DOMNode) {
			return nil
		}
		var out []*richnode.Node
		for _, c := range rn.Children {
			out = append(out, e.nodesToHighlight(c, start, end, false)...)
		}
		return out
	case richnode.TypeText:
		return []*richnode.Node{rn}
	}
	return nil
}

func flagHighlight(n *html.Node, attrs map[string]string) {
	dom.SetAttr(n, HighlightAttr, "true")
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dom.SetAttr(n, k, attrs[k])
	}
}

func highlightText(rn *richnode.Node, start, end int, attrs map[string]string) {
	runes := []rune(rn.DOMNode.Data)
	from := clampInt(start-rn.Start, 0, len(runes))
	to := clampInt(end-rn.Start, 0, len(runes))
	if from >= to {
		return
	}
	mark := dom.NewElement("mark")
	flagHighlight(mark, attrs)
	mark.AppendChild(dom.NewText(string(runes[from:to])))

	var replacement []*html.Node
	if from > 0 {
		replacement = append(replacement, dom.NewText(string(runes[:from])))
	}
	replacement = append(replacement, mark)
	if to < len(runes) {
		replacement = append(replacement, dom.NewText(string(runes[to:])))
	}
	dom.ReplaceWith(rn.DOMNode, replacement...)
}

// FindHighlights returns the highlighted elements matching pred, in document
// order. A nil pred matches every highlight.
func (e *Editor) FindHighlights(pred func(*richnode.Node) bool) []*richnode.Node {
	return e.tree.Root.FlatMap(func(n *richnode.Node) bool {
		if n.Type != richnode.TypeTag || !dom.HasAttr(n.DOMNode, HighlightAttr) {
			return false
		}
		return pred == nil || pred(n)
	})
}

// ClearHighlightForRange removes the highlights lying inside [start, end].
func (e *Editor) ClearHighlightForRange(start, end int) {
	found := e.FindHighlights(func(n *richnode.Node) bool { return n.IsInRegion(start, end) })
	if len(found) == 0 {
		logger.WarnTagf("highlight", "no highlight in [%d,%d)", start, end)
		return
	}
	for _, rn := range found {
		removeHighlight(rn.DOMNode)
	}
	e.afterHighlightChange("clear highlight")
}

// ClearHighlightForLocations removes highlights matching any of locations
// exactly.
func (e *Editor) ClearHighlightForLocations(locations []types.Region) {
	found := e.FindHighlights(func(n *richnode.Node) bool {
		for _, l := range locations {
			if n.Start == l.Start && n.End == l.End {
				return true
			}
		}
		return false
	})
	if len(found) == 0 {
		return
	}
	for _, rn := range found {
		removeHighlight(rn.DOMNode)
	}
	e.afterHighlightChange("clear highlight locations")
}

// ClearAllHighlights removes every highlight in the document.
func (e *Editor) ClearAllHighlights() {
	found := e.FindHighlights(nil)
	if len(found) == 0 {
		return
	}
	for _, rn := range found {
		removeHighlight(rn.DOMNode)
	}
	e.afterHighlightChange("clear all highlights")
}

func removeHighlight(n *html.Node) {
	if dom.IsElement(n, "mark") {
		dom.Unwrap(n)
		return
	}
	dom.RemoveAttr(n, HighlightAttr)
}

// afterHighlightChange rebuilds the tree and re-seats a caret whose text node
// may have been split. Highlights never change the text, so the absolute
// position stays valid.
func (e *Editor) afterHighlightChange(description string) {
	e.UpdateRichNode()
	if e.selection.IsCaret() {
		if rn := e.CurrentRichNode(); rn == nil || !rn.ContainsPos(e.selection.Start) {
			if err := e.setCurrentPosition(e.selection.Start, false); err != nil {
				logger.WarnTagf("highlight", "caret lost: %v", err)
			}
		}
	}
	e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: description})
}
