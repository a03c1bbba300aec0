package core

import (
	"fmt"

	"github.com/bethropolis/rawedit/internal/annotation"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/types"
	"golang.org/x/net/html"
)

// SelectedNode is one node of a selection with the part of it that is
// selected, in absolute positions.
type SelectedNode struct {
	Node  *richnode.Node
	Range types.Region
}

// Selection is the result of a structured select.
type Selection struct {
	// SelectedHighlightRange is set for selections made with SelectHighlight.
	SelectedHighlightRange bool
	Selections             []SelectedNode
}

// ContextScope controls how SelectContext picks annotated nodes.
type ContextScope string

const (
	ScopeAuto  ContextScope = "auto"
	ScopeInner ContextScope = "inner"
	ScopeOuter ContextScope = "outer"
)

// ContextFilter narrows SelectContext. Every listed value must appear in
// the node's triples: Resource as a subject, Property as a predicate, Typeof
// as an object and Datatype as a datatype. Values are full URIs.
type ContextFilter struct {
	Scope    ContextScope
	Typeof   []string
	Property []string
	Datatype []string
	Resource []string
}

// SelectHighlight selects the leaves overlapping region shrunk by the given
// offsets, each clipped to the region.
func (e *Editor) SelectHighlight(region types.Region, offsetLeft, offsetRight int) (Selection, error) {
	start := region.Start + offsetLeft
	end := region.End - offsetRight
	if start > end {
		return Selection{}, fmt.Errorf("%w: [%d,%d) after offsets", ErrInvalidRegion, start, end)
	}

	var nodes []*richnode.Node
	queue := []*richnode.Node{e.tree.Root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		inside := n.IsInRegion(start, end) || n.IsPartiallyInRegion(start, end)
		if !inside {
			continue
		}
		if len(n.Children) == 0 {
			nodes = append(nodes, n)
			continue
		}
		queue = append(queue, n.Children...)
	}

	sel := Selection{SelectedHighlightRange: true}
	for _, n := range nodes {
		sel.Selections = append(sel.Selections, SelectedNode{Node: n, Range: clip(n, start, end)})
	}
	return sel, nil
}

// GetContexts returns the annotation context blocks of the document, limited
// to those touching region when it is non-nil.
func (e *Editor) GetContexts(region *types.Region) []annotation.ContextBlock {
	return e.scanner.Scan(e.tree.Root, region)
}

// SelectContext selects the annotated nodes around region whose context
// matches filter. Inner looks below the blocks' semantic nodes and keeps
// nodes lying inside region; outer climbs from the semantic nodes to the
// first annotated node covering region; auto tries inner, then outer.
func (e *Editor) SelectContext(region types.Region, filter ContextFilter) (Selection, error) {
	if region.Start > region.End {
		return Selection{}, fmt.Errorf("%w: %s", ErrInvalidRegion, region)
	}
	blocks := e.scanner.Scan(e.tree.Root, &region)
	semantic := uniqueSemanticNodes(blocks)

	var picked []*richnode.Node
	switch filter.Scope {
	case ScopeInner:
		picked = e.innerContext(semantic, region, filter, true)
	case ScopeOuter:
		picked = e.outerContext(semantic, region, filter)
	case ScopeAuto, "":
		picked = e.innerContext(semantic, region, filter, false)
		if len(picked) == 0 {
			picked = e.outerContext(semantic, region, filter)
		}
	default:
		return Selection{}, fmt.Errorf("%w: %q", ErrInvalidScope, filter.Scope)
	}

	var sel Selection
	for _, n := range picked {
		sel.Selections = append(sel.Selections, SelectedNode{Node: n, Range: clip(n, region.Start, region.End)})
	}
	return sel, nil
}

func (e *Editor) innerContext(starts []*richnode.Node, region types.Region, filter ContextFilter, strict bool) []*richnode.Node {
	seen := map[*html.Node]bool{}
	var out []*richnode.Node
	for _, s := range starts {
		for _, n := range s.FlatMap(func(n *richnode.Node) bool { return n.Type == richnode.TypeTag }) {
			if seen[n.DOMNode] || !annotation.HasAttributes(n.DOMNode) || !n.IsInRegion(region.Start, region.End) {
				continue
			}
			if !filter.matches(e.scanner.Context(n, strict)) {
				continue
			}
			seen[n.DOMNode] = true
			out = append(out, n)
		}
	}
	return out
}

func (e *Editor) outerContext(starts []*richnode.Node, region types.Region, filter ContextFilter) []*richnode.Node {
	seen := map[*html.Node]bool{}
	var out []*richnode.Node
	for _, s := range starts {
		for cur := s; cur != nil; cur = cur.Parent {
			// ancestors carry a subset of the triples, so no match here means none above
			if !filter.matches(e.scanner.Context(cur, false)) {
				break
			}
			if annotation.HasAttributes(cur.DOMNode) && cur.Region().Contains(region) {
				if !seen[cur.DOMNode] {
					seen[cur.DOMNode] = true
					out = append(out, cur)
				}
				break
			}
		}
	}
	return out
}

func (f ContextFilter) matches(triples []annotation.Triple) bool {
	has := func(values []string, field func(annotation.Triple) string) bool {
		for _, v := range values {
			found := false
			for _, t := range triples {
				if field(t) == v {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return has(f.Resource, func(t annotation.Triple) string { return t.Subject }) &&
		has(f.Property, func(t annotation.Triple) string { return t.Predicate }) &&
		has(f.Typeof, func(t annotation.Triple) string { return t.Object }) &&
		has(f.Datatype, func(t annotation.Triple) string { return t.Datatype })
}

func uniqueSemanticNodes(blocks []annotation.ContextBlock) []*richnode.Node {
	seen := map[*richnode.Node]bool{}
	var out []*richnode.Node
	for _, b := range blocks {
		if b.SemanticNode == nil || seen[b.SemanticNode] {
			continue
		}
		seen[b.SemanticNode] = true
		out = append(out, b.SemanticNode)
	}
	return out
}

func clip(n *richnode.Node, start, end int) types.Region {
	return types.Region{Start: maxInt(n.Start, start), End: minInt(n.End, end)}
}
