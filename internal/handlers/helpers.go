package handlers

import (
	"errors"
	"strings"

	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
	"golang.org/x/net/html"
)

// collapsible is the whitespace a renderer folds away.
const collapsible = " \t\n\r\f"

var (
	errNotCaret   = errors.New("selection is not a caret")
	errNotInList  = errors.New("caret is not inside a list item")
	errNoMarkdown = errors.New("no list markdown at the caret")
)

func isKeyDown(ev input.Event, key input.Key) bool {
	return ev.Type == input.EventKeyDown && ev.Key == key
}

// caretText returns the text node holding the caret and the caret offset in
// it. Without a usable current node one is resolved, which may add a text
// node to the document.
func caretText(ed *core.Editor) (*html.Node, int, error) {
	sel := ed.Selection()
	if !sel.IsCaret() {
		return nil, 0, errNotCaret
	}
	if rn := ed.CurrentRichNode(); rn != nil && rn.ContainsPos(sel.Start) {
		return rn.DOMNode, sel.Start - rn.Start, nil
	}
	rn, err := ed.FindSuitableNodeForPosition(sel.Start)
	if err != nil {
		return nil, 0, err
	}
	return rn.DOMNode, sel.Start - rn.Start, nil
}

// caretListItem returns the list item around the caret's text node.
func caretListItem(ed *core.Editor) *html.Node {
	if !ed.CurrentSelectionIsCaret() || ed.CurrentNode() == nil {
		return nil
	}
	return dom.ClosestWithin(ed.CurrentNode(), ed.Root(), dom.IsLI)
}

// blank reports whether n renders nothing: markers, collapsible whitespace
// and comments only.
func blank(n *html.Node) bool {
	switch {
	case n == nil:
		return true
	case dom.IsText(n):
		return strings.Trim(dom.VisibleText(n.Data), collapsible) == ""
	case dom.IsVoid(n), dom.IsOpaque(n):
		return false
	case n.Type == html.ElementNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !blank(c) {
				return false
			}
		}
		return true
	}
	return true
}

// blankString is blank for a bare string.
func blankString(s string) bool {
	return strings.Trim(dom.VisibleText(s), collapsible) == ""
}

// atVisibleStart reports whether nothing visible precedes n inside block.
func atVisibleStart(block, n *html.Node) bool {
	for cur := n; cur != nil && cur != block; cur = cur.Parent {
		for s := cur.PrevSibling; s != nil; s = s.PrevSibling {
			if !blank(s) {
				return false
			}
		}
	}
	return true
}

// formattingWhitespace reports whether n is whitespace-only text at the edge
// of its parent or next to a block, where it never renders.
func formattingWhitespace(n *html.Node) bool {
	if !dom.IsText(n) || n.Data == "" || strings.Trim(n.Data, collapsible) != "" {
		return false
	}
	return n.PrevSibling == nil || n.NextSibling == nil || dom.IsBlock(n.PrevSibling) || dom.IsBlock(n.NextSibling)
}

func firstText(n *html.Node) *html.Node {
	if dom.IsText(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsOpaque(c) {
			continue
		}
		if t := firstText(c); t != nil {
			return t
		}
	}
	return nil
}

func previousElement(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if pred(s) {
			return s
		}
	}
	return nil
}

func lastElementChild(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
		if !blank(c) {
			return nil
		}
	}
	return nil
}
