// Package richnode builds the position tree: a read-only mirror of the
// document annotating every node with a half-open range in one linear
// coordinate space.
package richnode

import (
	"strings"

	"github.com/bethropolis/rawedit/internal/types"
	"golang.org/x/net/html"
)

// Type classifies a node for text purposes.
type Type int

const (
	TypeText Type = iota
	TypeTag
	TypeVoid
	TypeOther
)

func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeTag:
		return "tag"
	case TypeVoid:
		return "void"
	case TypeOther:
		return "other"
	}
	return "unknown"
}

// Node annotates one document node. Nodes are rebuilt, never patched.
type Node struct {
	DOMNode  *html.Node
	Parent   *Node
	Children []*Node
	Type     Type
	Start    int
	End      int
	// Text is the linear text contributed by a text or void node.
	Text string
}

// Region returns [Start, End).
func (n *Node) Region() types.Region {
	return types.Region{Start: n.Start, End: n.End}
}

// Len returns End - Start.
func (n *Node) Len() int {
	return n.End - n.Start
}

// ContainsPos reports whether Start <= pos <= End.
func (n *Node) ContainsPos(pos int) bool {
	return n.Start <= pos && pos <= n.End
}

// IsInRegion reports whether the node lies completely inside [start, end].
func (n *Node) IsInRegion(start, end int) bool {
	return start <= n.Start && n.End <= end
}

// IsPartiallyInRegion reports whether the node overlaps [start, end).
func (n *Node) IsPartiallyInRegion(start, end int) bool {
	return n.Start < end && start < n.End
}

// FlatMap returns the nodes of the subtree, n included, that match pred in
// pre-order. A nil pred matches everything.
func (n *Node) FlatMap(pred func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if pred == nil || pred(c) {
			out = append(out, c)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// Leaves returns the text and void nodes of the subtree in document order.
func (n *Node) Leaves() []*Node {
	return n.FlatMap(func(c *Node) bool {
		return c.Type == TypeText || c.Type == TypeVoid
	})
}

// LinearText concatenates the text of the subtree.
func (n *Node) LinearText() string {
	var b strings.Builder
	n.walk(func(c *Node) {
		b.WriteString(c.Text)
	})
	return b.String()
}

// Ancestors returns the parent chain, closest first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}
