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

// FindSuitableNodeForPosition returns a text node whose range contains pos,
// creating one in the document when no such node exists. The search starts
// at the current node when it covers pos.
func (e *Editor) FindSuitableNodeForPosition(pos int) (*richnode.Node, error) {
	root := e.tree.Root
	if pos < root.Start || pos > root.End {
		return nil, fmt.Errorf("%w: %d not in [%d,%d]", ErrPositionOutOfRange, pos, root.Start, root.End)
	}
	if cur := e.CurrentRichNode(); cur != nil && cur.ContainsPos(pos) {
		return e.findIn(cur, pos)
	}
	return e.findIn(root, pos)
}

func (e *Editor) findIn(n *richnode.Node, pos int) (*richnode.Node, error) {
	switch n.Type {
	case richnode.TypeText:
		return n, nil
	case richnode.TypeVoid:
		return e.settle(e.textForVoid(n.DOMNode, pos == n.Start))
	case richnode.TypeTag:
		if br := onlyBreakChild(n.DOMNode); br != nil {
			marker := dom.NewPlaceholder()
			dom.ReplaceWith(br, marker)
			return e.settle(marker)
		}
		candidates := n.FlatMap(func(c *richnode.Node) bool {
			return c.ContainsPos(pos) &&
				(c.Type == richnode.TypeText || c.Type == richnode.TypeTag) &&
				!dom.IsIgnorable(c.DOMNode) &&
				!insideOpaque(c, n)
		})
		if len(candidates) == 0 {
			return e.settle(insertTextAt(n, pos))
		}
		deepest := candidates[len(candidates)-1]
		if deepest == n {
			return e.settle(insertTextAt(n, pos))
		}
		return e.findIn(deepest, pos)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Type)
	}
}

// settle rebuilds the tree after a structural fix and returns the new text.
func (e *Editor) settle(text *html.Node) (*richnode.Node, error) {
	e.UpdateRichNode()
	rn := e.tree.Lookup(text)
	if rn == nil {
		return nil, ErrNodeNotInTree
	}
	return rn, nil
}

// textForVoid gives the caret a text node next to a void element. A lone br
// in its parent is swapped for a marker so the line keeps its height.
func (e *Editor) textForVoid(void *html.Node, before bool) *html.Node {
	if dom.TagName(void) == "br" && void.Parent != nil && dom.ChildCount(void.Parent) == 1 {
		marker := dom.NewPlaceholder()
		dom.ReplaceWith(void, marker)
		return marker
	}
	text := dom.NewText("")
	if before {
		dom.InsertBefore(void, text)
	} else {
		dom.InsertAfter(void, text)
	}
	return text
}

func onlyBreakChild(n *html.Node) *html.Node {
	if dom.ChildCount(n) != 1 || !dom.IsElement(n.FirstChild, "br") {
		return nil
	}
	return n.FirstChild
}

// insideOpaque reports whether c is, or sits below, a contenteditable=false
// element under limit.
func insideOpaque(c, limit *richnode.Node) bool {
	for cur := c; cur != nil && cur != limit; cur = cur.Parent {
		if dom.IsOpaque(cur.DOMNode) {
			return true
		}
	}
	return false
}

// insertTextAt adds an empty text node to tag at pos, in front of the first
// child starting at or after pos. Inside a list the text gets its own item.
func insertTextAt(tag *richnode.Node, pos int) *html.Node {
	text := dom.NewText("")
	placed := text
	if dom.IsList(tag.DOMNode) {
		placed = dom.NewElement("li")
		dom.Append(placed, text)
	}
	for _, c := range tag.Children {
		if c.Start >= pos {
			dom.InsertBefore(c.DOMNode, placed)
			return text
		}
	}
	dom.Append(tag.DOMNode, placed)
	return text
}

// CalculatePosition converts a native selection point into an absolute
// position. For elements offset is a child index.
func (e *Editor) CalculatePosition(n *html.Node, offset int) (int, error) {
	rn := e.tree.Lookup(n)
	if rn == nil {
		return 0, ErrNodeNotInTree
	}
	switch rn.Type {
	case richnode.TypeText:
		return rn.Start + clampInt(offset, 0, rn.Len()), nil
	case richnode.TypeVoid:
		return rn.Start + clampInt(offset, 0, 1), nil
	case richnode.TypeTag:
		switch {
		case offset < 0:
			return rn.Start, nil
		case offset < len(rn.Children):
			return rn.Children[offset].Start, nil
		case offset > len(rn.Children):
			logger.WarnTagf("selection", "offset %d exceeds %d children of <%s>", offset, len(rn.Children), dom.TagName(n))
		}
		return rn.End, nil
	default:
		return rn.Start, nil
	}
}

// SetCaret places a collapsed selection at offset inside n. For an element
// the offset is a child index and the caret lands in an adjacent text node,
// which is created when none exists.
func (e *Editor) SetCaret(n *html.Node, offset int) error {
	return e.setCaret(n, offset, true)
}

func (e *Editor) setCaret(n *html.Node, offset int, notify bool) error {
	rn := e.tree.Lookup(n)
	if rn == nil {
		return ErrNodeNotInTree
	}
	switch rn.Type {
	case richnode.TypeText:
		e.caretInText(rn, offset, notify)
		return nil
	case richnode.TypeTag:
		count := len(rn.Children)
		if offset < 0 || offset > count {
			logger.WarnTagf("selection", "caret offset %d outside of <%s> with %d children", offset, dom.TagName(n), count)
			return fmt.Errorf("%w: %d > %d", ErrInvalidOffset, offset, count)
		}
		if offset < count && rn.Children[offset].Type == richnode.TypeText {
			e.caretInText(rn.Children[offset], 0, notify)
			return nil
		}
		if offset > 0 && rn.Children[offset-1].Type == richnode.TypeText {
			before := rn.Children[offset-1]
			e.caretInText(before, before.Len(), notify)
			return nil
		}
		marker := dom.NewPlaceholder()
		if offset < count {
			dom.InsertBefore(rn.Children[offset].DOMNode, marker)
		} else {
			dom.Append(n, marker)
		}
		e.UpdateRichNode()
		e.caretInText(e.tree.Lookup(marker), 0, notify)
		return nil
	case richnode.TypeVoid:
		if n.Parent == nil {
			return ErrNodeNotInTree
		}
		idx := dom.ChildIndex(n)
		return e.setCaret(n.Parent, idx+clampInt(offset, 0, 1), notify)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedNode, rn.Type)
	}
}

func (e *Editor) caretInText(rn *richnode.Node, offset int, notify bool) {
	offset = clampInt(offset, 0, rn.Len())
	e.currentNode = rn.DOMNode
	e.selection = types.Caret(rn.Start + offset)
	e.domSelection = dom.CaretAt(rn.DOMNode, offset)
	if notify {
		e.notifySelection()
	}
}

// PlaceCaret records where the native caret should go without consulting the
// position tree. Mutations use it while the tree is stale; the caret is
// resolved once the mutation completes.
func (e *Editor) PlaceCaret(n *html.Node, offset int) {
	e.domSelection = dom.CaretAt(n, offset)
	e.caretMoves++
}

// SetCurrentPosition moves the caret to pos, clamping it into the document.
func (e *Editor) SetCurrentPosition(pos int) error {
	return e.setCurrentPosition(pos, true)
}

func (e *Editor) setCurrentPosition(pos int, notify bool) error {
	if limit := e.tree.Len(); pos < 0 || pos > limit {
		logger.WarnTagf("selection", "position %d outside of [0,%d], clamping", pos, limit)
		pos = clampInt(pos, 0, limit)
	}
	rn, err := e.FindSuitableNodeForPosition(pos)
	if err != nil {
		return err
	}
	e.caretInText(rn, pos-rn.Start, notify)
	return nil
}

// SetSelection selects [start, end). A caret goes through SetCurrentPosition;
// a range is anchored in text nodes at both ends.
func (e *Editor) SetSelection(start, end int) error {
	if start > end {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRegion, start, end)
	}
	if start == end {
		return e.SetCurrentPosition(start)
	}
	r := types.Region{Start: start, End: end}.Clamp(types.Region{Start: 0, End: e.tree.Len()})
	startNode, err := e.FindSuitableNodeForPosition(r.Start)
	if err != nil {
		return err
	}
	startDOM := startNode.DOMNode
	endNode, err := e.FindSuitableNodeForPosition(r.End)
	if err != nil {
		return err
	}
	// the second lookup may have rebuilt the tree
	startNode = e.tree.Lookup(startDOM)
	if startNode == nil {
		return ErrNodeNotInTree
	}
	e.currentNode = nil
	e.selection = r
	e.domSelection = dom.Range{
		StartContainer: startNode.DOMNode,
		StartOffset:    r.Start - startNode.Start,
		EndContainer:   endNode.DOMNode,
		EndOffset:      r.End - endNode.Start,
	}
	e.notifySelection()
	return nil
}

// UpdateSelectionFromRange adopts a native selection.
func (e *Editor) UpdateSelectionFromRange(r dom.Range) error {
	if r.IsZero() {
		return fmt.Errorf("%w: empty selection", ErrNodeNotInTree)
	}
	if r.Collapsed() {
		return e.SetCaret(r.StartContainer, r.StartOffset)
	}
	start, err := e.CalculatePosition(r.StartContainer, r.StartOffset)
	if err != nil {
		return err
	}
	end, err := e.CalculatePosition(r.EndContainer, r.EndOffset)
	if err != nil {
		return err
	}
	if start > end {
		start, end = end, start
	}
	e.currentNode = nil
	e.selection = types.Region{Start: start, End: end}
	e.domSelection = r
	e.notifySelection()
	return nil
}

// RelativeCursorPosition returns the caret offset inside the current node.
func (e *Editor) RelativeCursorPosition() (int, bool) {
	rn := e.CurrentRichNode()
	if rn == nil || !e.selection.IsCaret() {
		return 0, false
	}
	return e.selection.Start - rn.Start, true
}

// CurrentSelectionIsCaret reports whether the selection is empty.
func (e *Editor) CurrentSelectionIsCaret() bool {
	return e.selection.IsCaret()
}

func (e *Editor) notifySelection() {
	e.events.Dispatch(event.TypeSelectionUpdate, event.SelectionUpdateData{Region: e.selection})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
