package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// NewPlaceholder creates a detached text node holding the zero-width marker.
func NewPlaceholder() *html.Node {
	return NewText(InvisibleSpace)
}

// NewElement creates a detached element. attrs are key, value pairs.
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// CloneShallow copies n without its children.
func CloneShallow(n *html.Node) *html.Node {
	c := &html.Node{Type: n.Type, DataAtom: n.DataAtom, Data: n.Data, Namespace: n.Namespace}
	c.Attr = append([]html.Attribute(nil), n.Attr...)
	return c
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore moves n in front of ref.
func InsertBefore(ref, n *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref)
}

// InsertAfter moves n right behind ref.
func InsertAfter(ref, n *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// Append moves n to the end of parent's children.
func Append(parent, n *html.Node) {
	Detach(n)
	parent.AppendChild(n)
}

// Prepend moves n to the front of parent's children.
func Prepend(parent, n *html.Node) {
	Detach(n)
	parent.InsertBefore(n, parent.FirstChild)
}

// InsertAt moves n to child index i of parent; an index past the end appends.
func InsertAt(parent, n *html.Node, i int) {
	Detach(n)
	parent.InsertBefore(n, ChildAt(parent, i))
}

// Unwrap replaces n by its children and returns them.
func Unwrap(n *html.Node) []*html.Node {
	children := Children(n)
	for _, c := range children {
		InsertBefore(n, c)
	}
	Detach(n)
	return children
}

// Wrap inserts wrapper in front of nodes[0] and moves all nodes into it.
func Wrap(nodes []*html.Node, wrapper *html.Node) *html.Node {
	if len(nodes) == 0 {
		return wrapper
	}
	InsertBefore(nodes[0], wrapper)
	for _, n := range nodes {
		Append(wrapper, n)
	}
	return wrapper
}

// ReplaceWith puts nodes where old was and detaches old.
func ReplaceWith(old *html.Node, nodes ...*html.Node) {
	for _, n := range nodes {
		InsertBefore(old, n)
	}
	Detach(old)
}

// MoveChildren appends all children of from to to.
func MoveChildren(from, to *html.Node) {
	for _, c := range Children(from) {
		Append(to, c)
	}
}

// SplitText cuts a text node at a rune offset. The right part becomes a new
// sibling which is returned; an attached node keeps the left part.
func SplitText(n *html.Node, offset int) *html.Node {
	runes := []rune(n.Data)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	right := NewText(string(runes[offset:]))
	n.Data = string(runes[:offset])
	if n.Parent != nil {
		n.Parent.InsertBefore(right, n.NextSibling)
	}
	return right
}

// SplitAt splits every ancestor of text up to and including limit at the given
// rune offset. It returns the right-hand copy of limit, inserted after limit.
// Both halves keep the attributes of the elements they were cut from.
func SplitAt(limit, text *html.Node, offset int) *html.Node {
	right := SplitText(text, offset)
	child := right
	for parent := text.Parent; parent != nil && parent.Parent != nil; parent = parent.Parent {
		clone := CloneShallow(parent)
		parent.Parent.InsertBefore(clone, parent.NextSibling)
		var moving []*html.Node
		for c := child; c != nil; c = c.NextSibling {
			moving = append(moving, c)
		}
		for _, c := range moving {
			Append(clone, c)
		}
		if parent == limit {
			return clone
		}
		child = clone
	}
	return nil
}

// InsertPlaceholderAfter puts a marker text right behind n and returns it.
func InsertPlaceholderAfter(n *html.Node) *html.Node {
	p := NewPlaceholder()
	InsertAfter(n, p)
	return p
}

// InsertPlaceholderBefore puts a marker text right in front of n and returns it.
func InsertPlaceholderBefore(n *html.Node) *html.Node {
	p := NewPlaceholder()
	InsertBefore(n, p)
	return p
}

// AppendPlaceholder adds a marker text as the last child of n and returns it.
func AppendPlaceholder(n *html.Node) *html.Node {
	p := NewPlaceholder()
	n.AppendChild(p)
	return p
}
