package core

import (
	"strings"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/richnode"
)

// Property is a formatting or annotation state that can be active at a node.
type Property interface {
	EnabledAt(n *richnode.Node) bool
}

// AttributeProperty is active under an element carrying all of Attributes.
// With NewContext set, the element must also be a TagName element.
type AttributeProperty struct {
	TagName    string
	NewContext bool
	Attributes map[string]string
}

// EnabledAt implements Property.
func (p AttributeProperty) EnabledAt(n *richnode.Node) bool {
	for cur := tagOf(n); cur != nil; cur = cur.Parent {
		if p.NewContext && dom.TagName(cur.DOMNode) != p.TagName {
			continue
		}
		if p.hasAttributes(cur) {
			return true
		}
	}
	return false
}

func (p AttributeProperty) hasAttributes(n *richnode.Node) bool {
	for key, want := range p.Attributes {
		got, ok := dom.Attr(n.DOMNode, key)
		if !ok || !strings.Contains(got, want) {
			return false
		}
	}
	return true
}

type boldProperty struct{}

// EnabledAt implements Property.
func (boldProperty) EnabledAt(n *richnode.Node) bool {
	for cur := tagOf(n); cur != nil; cur = cur.Parent {
		if dom.IsElement(cur.DOMNode, "strong", "b") {
			return true
		}
	}
	return false
}

// Bold is active inside strong and b elements.
var Bold Property = boldProperty{}

func tagOf(n *richnode.Node) *richnode.Node {
	if n == nil {
		return nil
	}
	if n.Type != richnode.TypeTag {
		return n.Parent
	}
	return n
}

// PropertyEnabledAt reports whether p is active at the leaf holding pos.
func (e *Editor) PropertyEnabledAt(p Property, pos int) bool {
	leaf := e.tree.LeafAt(pos)
	if leaf == nil {
		return false
	}
	return p.EnabledAt(leaf)
}
