// Package dom holds helpers over golang.org/x/net/html nodes: classification,
// tree surgery, fragment parsing and text walkers.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// InvisibleSpace is the zero-width marker used for placeholder text nodes.
	InvisibleSpace = "\u200B"
	// NBSP keeps consecutive spaces from collapsing.
	NBSP = "\u00A0"
)

// voidElements mirrors the set x/net/html refuses to give children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Details: true, atom.Dialog: true, atom.Dd: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true, atom.Hgroup: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true, atom.Ol: true,
	atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true, atom.Tbody: true,
	atom.Thead: true, atom.Tfoot: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.Ul: true,
}

// TagName returns the lowercased element name, or "" for non-elements.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// IsElement reports whether n is an element with one of the given tag names.
// Without names it matches any element.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	name := TagName(n)
	for _, t := range tags {
		if name == t {
			return true
		}
	}
	return false
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsVoid reports whether n is an element that cannot hold children.
func IsVoid(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && voidElements[TagName(n)]
}

// IsBlock reports whether n renders as a block.
func IsBlock(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom != 0 {
		return blockElements[n.DataAtom]
	}
	return blockElements[atom.Lookup([]byte(TagName(n)))]
}

// IsList reports whether n is a ul or ol.
func IsList(n *html.Node) bool {
	return IsElement(n, "ul", "ol")
}

// IsLI reports whether n is a list item.
func IsLI(n *html.Node) bool {
	return IsElement(n, "li")
}

// IsIgnorable reports whether n is formatting text directly inside a list.
func IsIgnorable(n *html.Node) bool {
	return IsText(n) && n.Parent != nil && IsList(n.Parent)
}

// IsOpaque reports whether n is an element the caret must not enter.
func IsOpaque(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	v, ok := Attr(n, "contenteditable")
	return ok && strings.EqualFold(v, "false")
}

// IsEmptyList reports whether a list holds no li children.
func IsEmptyList(n *html.Node) bool {
	if !IsList(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsLI(c) {
			return false
		}
	}
	return true
}

// VisibleText strips zero-width markers from s.
func VisibleText(s string) string {
	return strings.ReplaceAll(s, InvisibleSpace, "")
}

// IsVisiblyEmpty reports whether n shows no content: a text holding only markers,
// or an element without voids or visible text below it.
func IsVisiblyEmpty(n *html.Node) bool {
	switch {
	case n == nil:
		return true
	case IsText(n):
		return VisibleText(n.Data) == ""
	case IsVoid(n), IsOpaque(n):
		return false
	case n.Type == html.ElementNode || n.Type == html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !IsVisiblyEmpty(c) {
				return false
			}
		}
		return true
	}
	return true
}

// Closest returns the first of n and its ancestors matching pred, or nil.
func Closest(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// ClosestWithin is Closest bounded by root (root itself is never returned).
func ClosestWithin(n, root *html.Node, pred func(*html.Node) bool) *html.Node {
	for ; n != nil && n != root; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether n is root or a descendant of root.
func Contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Children returns a snapshot of n's children.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th child or nil.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; c = c.NextSibling {
		i--
	}
	return c
}

// ChildIndex returns the position of n among its siblings, or -1 without a parent.
func ChildIndex(n *html.Node) int {
	if n.Parent == nil {
		return -1
	}
	i := 0
	for c := n.Parent.FirstChild; c != nil && c != n; c = c.NextSibling {
		i++
	}
	return i
}

// TextContent concatenates the text below n.
func TextContent(n *html.Node) string {
	if IsText(n) {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// RuneLen returns the length of s in runes.
func RuneLen(s string) int {
	return len([]rune(s))
}
