package richnode

import (
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/logger"
	"golang.org/x/net/html"
)

// Tree is the position tree for one root plus an index from document nodes.
type Tree struct {
	Root  *Node
	index map[*html.Node]*Node
}

// Build walks root and returns its position tree. Root starts at offset 0.
func Build(root *html.Node) *Tree {
	t := &Tree{index: make(map[*html.Node]*Node)}
	t.Root = t.build(root, nil, 0)
	return t
}

func (t *Tree) build(n *html.Node, parent *Node, start int) *Node {
	rn := &Node{DOMNode: n, Parent: parent, Start: start, End: start}
	t.index[n] = rn

	switch {
	case dom.IsIgnorable(n):
		// formatting text between list items holds no positions
		rn.Type = TypeOther
	case n.Type == html.TextNode:
		rn.Type = TypeText
		rn.Text = n.Data
		rn.End = start + dom.RuneLen(n.Data)
	case dom.IsVoid(n):
		rn.Type = TypeVoid
		rn.Text = voidSurrogate(n)
		rn.End = start + 1
	case n.Type == html.ElementNode || n.Type == html.DocumentNode:
		rn.Type = TypeTag
		end := start
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			child := t.build(c, rn, end)
			rn.Children = append(rn.Children, child)
			end = child.End
		}
		rn.End = end
	default:
		rn.Type = TypeOther
	}
	return rn
}

func voidSurrogate(n *html.Node) string {
	if dom.TagName(n) == "br" {
		return "\n"
	}
	return " "
}

// Lookup returns the position node for a document node. A miss means the
// document changed behind the tree's back; it is logged and nil returned.
func (t *Tree) Lookup(n *html.Node) *Node {
	if rn, ok := t.index[n]; ok {
		return rn
	}
	logger.WarnTagf("tree", "no position node for document node %q (type %d)", n.Data, n.Type)
	return nil
}

// Has reports whether n is indexed, without logging.
func (t *Tree) Has(n *html.Node) bool {
	_, ok := t.index[n]
	return ok
}

// Text returns the linear text of the whole document.
func (t *Tree) Text() string {
	return t.Root.LinearText()
}

// Len returns the length of the linear text.
func (t *Tree) Len() int {
	return t.Root.End
}

// LeafAt returns the deepest text or void node whose range contains pos,
// preferring the one ending at pos. Nil when pos is outside the root.
func (t *Tree) LeafAt(pos int) *Node {
	var found *Node
	for _, leaf := range t.Root.Leaves() {
		if leaf.Start < pos && pos <= leaf.End {
			found = leaf
			break
		}
		if found == nil && leaf.ContainsPos(pos) {
			found = leaf
		}
	}
	return found
}
