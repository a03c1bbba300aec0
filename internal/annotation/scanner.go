package annotation

import (
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/types"
	"golang.org/x/net/html"
)

// ContextBlock is a run of text sharing one annotation context.
type ContextBlock struct {
	Region  types.Region
	Text    string
	Context []Triple
	// Nodes are the text nodes the block was built from, in document order.
	Nodes []*richnode.Node
	// SemanticNode is the closest annotated ancestor of the first node, or the scan root.
	SemanticNode   *richnode.Node
	IsLogicalBlock bool
}

// Scanner extracts annotation contexts from a position tree.
type Scanner interface {
	// Scan returns the context blocks below root in document order, limited to
	// blocks touching region when region is non-nil.
	Scan(root *richnode.Node, region *types.Region) []ContextBlock
	// Context returns the triples in effect at node. With ownOnly set, only the
	// statements contributed by node's own attributes are returned.
	Context(node *richnode.Node, ownOnly bool) []Triple
}

// RDFaScanner reads RDFa attributes.
type RDFaScanner struct {
	Prefixes map[string]string
}

// NewRDFaScanner returns a scanner knowing DefaultPrefixes.
func NewRDFaScanner() *RDFaScanner {
	return &RDFaScanner{Prefixes: DefaultPrefixes}
}

// chain returns the resolved attributes of every annotated element from the
// top of the document down to n, n included.
func (s *RDFaScanner) chain(n *html.Node) []Attributes {
	var path []*html.Node
	for cur := n; cur != nil; cur = cur.Parent {
		if HasAttributes(cur) {
			path = append(path, cur)
		}
	}
	prefixes := s.Prefixes
	out := make([]Attributes, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		attrs := ReadAttributes(path[i])
		prefixes = mergePrefixes(prefixes, attrs)
		out = append(out, resolve(attrs, prefixes))
	}
	return out
}

// Context implements Scanner.
func (s *RDFaScanner) Context(node *richnode.Node, ownOnly bool) []Triple {
	if node == nil {
		return nil
	}
	chain := s.chain(node.DOMNode)
	if !ownOnly {
		return ToTriples(chain)
	}
	if !HasAttributes(node.DOMNode) || len(chain) == 0 {
		return nil
	}
	before := len(ToTriples(chain[:len(chain)-1]))
	all := ToTriples(chain)
	return all[before:]
}

// Scan implements Scanner.
func (s *RDFaScanner) Scan(root *richnode.Node, region *types.Region) []ContextBlock {
	if root == nil {
		return nil
	}
	blocks := s.flatten(root, root)
	if region == nil {
		return blocks
	}
	var out []ContextBlock
	for _, b := range blocks {
		if touches(b.Region, *region) {
			out = append(out, b)
		}
	}
	return out
}

func touches(block, region types.Region) bool {
	if region.IsCaret() {
		return block.ContainsPos(region.Start)
	}
	return block.Overlaps(region)
}

func (s *RDFaScanner) flatten(n, root *richnode.Node) []ContextBlock {
	switch n.Type {
	case richnode.TypeText:
		return []ContextBlock{{
			Region:       n.Region(),
			Text:         n.Text,
			Context:      ToTriples(s.chain(n.DOMNode)),
			Nodes:        []*richnode.Node{n},
			SemanticNode: semanticNode(n, root),
		}}
	case richnode.TypeTag:
		var children []ContextBlock
		for _, c := range n.Children {
			children = append(children, s.flatten(c, root)...)
		}
		combined := combine(children)
		if isLogicalBlock(n) {
			for i := range combined {
				combined[i].IsLogicalBlock = true
			}
		}
		return combined
	}
	return nil
}

// combine merges neighbouring blocks unless either is a logical block.
func combine(blocks []ContextBlock) []ContextBlock {
	if len(blocks) <= 1 {
		return blocks
	}
	out := []ContextBlock{blocks[0]}
	for _, b := range blocks[1:] {
		last := &out[len(out)-1]
		if last.IsLogicalBlock || b.IsLogicalBlock {
			out = append(out, b)
			continue
		}
		last.Region.End = b.Region.End
		last.Text += b.Text
		last.Nodes = append(last.Nodes, b.Nodes...)
	}
	return out
}

func isLogicalBlock(n *richnode.Node) bool {
	return n.Type == richnode.TypeTag && (HasAttributes(n.DOMNode) || dom.IsBlock(n.DOMNode))
}

func semanticNode(n, root *richnode.Node) *richnode.Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if HasAttributes(cur.DOMNode) {
			return cur
		}
		if cur == root {
			break
		}
	}
	return root
}
