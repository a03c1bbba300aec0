package core

import (
	"fmt"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/types"
	"golang.org/x/net/html"
)

// ReplaceTextWithHTML replaces [start, end) with the parsed markup and puts
// the caret right after the inserted content. It returns the inserted nodes.
func (e *Editor) ReplaceTextWithHTML(start, end int, markup string, extra ...event.ExtraInfo) ([]*html.Node, error) {
	if start > end {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidRegion, start, end)
	}
	if start < 0 || end > e.tree.Len() {
		return nil, fmt.Errorf("%w: [%d,%d) in [0,%d]", ErrPositionOutOfRange, start, end, e.tree.Len())
	}
	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, err
	}

	e.CreateSnapshot()
	if err := e.DeleteRange(types.Region{Start: start, End: end}); err != nil {
		return nil, err
	}
	anchor, err := e.FindSuitableNodeForPosition(start)
	if err != nil {
		return nil, err
	}
	right := dom.SplitText(anchor.DOMNode, start-anchor.Start)
	for _, n := range nodes {
		dom.InsertBefore(right, n)
	}
	if right.Data == "" {
		right.Data = dom.InvisibleSpace
	}
	e.UpdateRichNode()

	length := 0
	for _, n := range nodes {
		if rn := e.tree.Lookup(n); rn != nil {
			length += rn.Len()
		}
	}
	e.currentNode = right
	if err := e.SetCurrentPosition(start + length); err != nil {
		return nodes, err
	}
	e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: "replace text with html"})
	e.detector.Trigger(extra...)
	return nodes, nil
}

// ReplaceNodeWithHTML swaps node for the parsed markup. The caret stays where
// it was unless it was inside node or placeCursorAfter is set, in which case
// it moves to the text following the new content. The returned slice holds
// the inserted nodes plus a trailing marker when one had to be created.
func (e *Editor) ReplaceNodeWithHTML(node *html.Node, markup string, placeCursorAfter bool, extra ...event.ExtraInfo) ([]*html.Node, error) {
	if node == e.root || e.tree.Lookup(node) == nil {
		return nil, fmt.Errorf("%w: cannot replace", ErrNodeNotInTree)
	}
	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	current := e.currentNode
	rel, hasRel := e.RelativeCursorPosition()
	containsCaret := current != nil && dom.Contains(node, current)
	if containsCaret && !placeCursorAfter {
		logger.WarnTagf("mutation", "replaced node held the caret, moving it after the new content")
	}

	e.CreateSnapshot()
	ref := node
	for _, n := range nodes {
		dom.InsertAfter(ref, n)
		ref = n
	}
	out := nodes
	var after *html.Node
	if dom.IsText(ref.NextSibling) {
		after = ref.NextSibling
	} else {
		after = dom.InsertPlaceholderAfter(ref)
		out = append(out, after)
	}
	dom.Detach(node)
	e.UpdateRichNode()

	if !placeCursorAfter && !containsCaret && hasRel && e.tree.Has(current) {
		err = e.SetCaret(current, rel)
	} else {
		err = e.SetCaret(after, 0)
	}
	e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: "replace node with html"})
	e.detector.Trigger(extra...)
	return out, err
}

// RemoveNode takes node out of the document. When it held the caret, the
// caret moves to the end of the preceding text. The text node that ends up
// holding the caret is returned.
func (e *Editor) RemoveNode(node *html.Node, extra ...event.ExtraInfo) (*html.Node, error) {
	rn := e.tree.Lookup(node)
	if node == e.root || rn == nil {
		return nil, fmt.Errorf("%w: cannot remove", ErrNodeNotInTree)
	}
	current := e.currentNode
	rel, hasRel := e.RelativeCursorPosition()
	start := rn.Start

	e.CreateSnapshot()
	target, offset := current, rel
	if current == nil || !hasRel || dom.Contains(node, current) {
		target = dom.PreviousTextNode(node, e.root)
		if target != nil {
			offset = dom.RuneLen(target.Data)
		}
	}
	dom.Detach(node)
	e.UpdateRichNode()

	var err error
	if target != nil && e.tree.Has(target) {
		err = e.SetCaret(target, offset)
	} else {
		err = e.SetCurrentPosition(minInt(start, e.tree.Len()))
		target = e.currentNode
	}
	e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: "remove node"})
	e.detector.Trigger(extra...)
	return target, err
}

// PrependChildrenHTML inserts the parsed markup as the first children of
// node. Caret handling follows ReplaceNodeWithHTML.
func (e *Editor) PrependChildrenHTML(node *html.Node, markup string, placeCursorAfter bool, extra ...event.ExtraInfo) ([]*html.Node, error) {
	if e.tree.Lookup(node) == nil {
		return nil, ErrNodeNotInTree
	}
	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return []*html.Node{node}, nil
	}
	current := e.currentNode
	rel, hasRel := e.RelativeCursorPosition()
	containsCaret := current != nil && dom.Contains(node, current)

	e.CreateSnapshot()
	for i := len(nodes) - 1; i >= 0; i-- {
		dom.Prepend(node, nodes[i])
	}
	last := nodes[len(nodes)-1]
	out := nodes
	var after *html.Node
	if dom.IsText(last.NextSibling) {
		after = last.NextSibling
	} else {
		after = dom.InsertPlaceholderAfter(last)
		out = append(out, after)
	}
	e.UpdateRichNode()

	if !placeCursorAfter && hasRel && e.tree.Has(current) {
		err = e.SetCaret(current, rel)
	} else {
		if containsCaret && !placeCursorAfter {
			logger.WarnTagf("mutation", "caret lost while prepending, moving it after the new content")
		}
		err = e.SetCaret(after, 0)
	}
	e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: "prepend children"})
	e.detector.Trigger(extra...)
	return out, err
}
