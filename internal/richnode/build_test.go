package richnode

import (
	"testing"

	"github.com/bethropolis/rawedit/internal/dom"
	"golang.org/x/net/html"
)

var documents = []string{
	"",
	"hello world",
	"ab<br>cd",
	"<p>one <strong>two</strong></p><p>three</p>",
	"<ul> <li>a</li> <li>b<ul><li>c</li></ul></li></ul>tail",
	"<div><span></span><!-- note --><img src=x></div>",
	"h\u00e9llo <em>w\u00f6rld</em>",
}

func build(t *testing.T, markup string) (*Tree, *html.Node) {
	t.Helper()
	root, err := dom.NewRoot(markup)
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	return Build(root), root
}

func checkRanges(t *testing.T, n *Node) {
	t.Helper()
	if n.End < n.Start {
		t.Errorf("negative length at %q: [%d,%d)", n.DOMNode.Data, n.Start, n.End)
	}
	switch n.Type {
	case TypeText:
		if n.End-n.Start != dom.RuneLen(n.Text) {
			t.Errorf("text %q has range [%d,%d)", n.Text, n.Start, n.End)
		}
	case TypeTag:
		if len(n.Children) == 0 {
			if n.Start != n.End {
				t.Errorf("childless tag %q has range [%d,%d)", n.DOMNode.Data, n.Start, n.End)
			}
			return
		}
		if n.Children[0].Start != n.Start || n.Children[len(n.Children)-1].End != n.End {
			t.Errorf("tag %q range [%d,%d) does not match its children", n.DOMNode.Data, n.Start, n.End)
		}
		for i := 1; i < len(n.Children); i++ {
			if n.Children[i].Start != n.Children[i-1].End {
				t.Errorf("children of %q not contiguous at %d", n.DOMNode.Data, i)
			}
		}
		for _, c := range n.Children {
			if c.Parent != n {
				t.Errorf("bad parent link under %q", n.DOMNode.Data)
			}
			checkRanges(t, c)
		}
	}
}

func TestRangeInvariant(t *testing.T) {
	for _, markup := range documents {
		t.Run(markup, func(t *testing.T) {
			tree, _ := build(t, markup)
			if tree.Root.Start != 0 {
				t.Errorf("root starts at %d", tree.Root.Start)
			}
			checkRanges(t, tree.Root)
		})
	}
}

func TestIdempotentRebuild(t *testing.T) {
	for _, markup := range documents {
		first, root := build(t, markup)
		second := Build(root)
		a := first.Root.FlatMap(nil)
		b := second.Root.FlatMap(nil)
		if len(a) != len(b) {
			t.Fatalf("%q: node counts differ %d vs %d", markup, len(a), len(b))
		}
		for i := range a {
			if a[i].Start != b[i].Start || a[i].End != b[i].End || a[i].DOMNode != b[i].DOMNode {
				t.Errorf("%q: node %d differs", markup, i)
			}
		}
	}
}

func TestClassificationAndSurrogates(t *testing.T) {
	tree, root := build(t, "ab<br>cd<img src=x><!-- c -->")
	if got := tree.Text(); got != "ab\ncd " {
		t.Errorf("Text = %q", got)
	}
	kinds := []Type{TypeText, TypeVoid, TypeText, TypeVoid, TypeOther}
	i := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		rn := tree.Lookup(c)
		if rn == nil || rn.Type != kinds[i] {
			t.Errorf("child %d: got %v, want %v", i, rn, kinds[i])
		}
		i++
	}
	comment := tree.Lookup(root.LastChild)
	if comment.Len() != 0 {
		t.Errorf("comment occupies %d positions", comment.Len())
	}
}

func TestListFormattingTakesNoPositions(t *testing.T) {
	tree, root := build(t, "<ul>\n <li>a</li>\n <li>b</li>\n</ul>")
	if got := tree.Text(); got != "ab" {
		t.Errorf("Text = %q", got)
	}
	list := root.FirstChild
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		rn := tree.Lookup(c)
		if dom.IsText(c) && (rn.Type != TypeOther || rn.Len() != 0) {
			t.Errorf("formatting %q: %s with %d positions", c.Data, rn.Type, rn.Len())
		}
	}
	if leaf := tree.LeafAt(1); leaf == nil || leaf.Text != "a" && leaf.Text != "b" {
		t.Errorf("LeafAt(1) = %v", leaf)
	}
}

func TestLookupMiss(t *testing.T) {
	tree, _ := build(t, "abc")
	if tree.Lookup(dom.NewText("stray")) != nil {
		t.Error("Lookup returned a node for an unknown document node")
	}
	if tree.Has(dom.NewText("stray")) {
		t.Error("Has reported an unknown node")
	}
}

func TestRegionPredicatesAndLeafAt(t *testing.T) {
	tree, _ := build(t, "<p>one</p><p>two</p>")
	paras := tree.Root.Children
	if !paras[0].IsInRegion(0, 3) || paras[1].IsInRegion(0, 5) {
		t.Error("IsInRegion mismatch")
	}
	if !paras[1].IsPartiallyInRegion(2, 4) || paras[1].IsPartiallyInRegion(0, 3) {
		t.Error("IsPartiallyInRegion mismatch")
	}
	if leaf := tree.LeafAt(3); leaf == nil || leaf.Text != "one" {
		t.Errorf("LeafAt(3) = %v", leaf)
	}
	if leaf := tree.LeafAt(4); leaf == nil || leaf.Text != "two" {
		t.Errorf("LeafAt(4) = %v", leaf)
	}
	if leaf := tree.LeafAt(0); leaf == nil || leaf.Text != "one" {
		t.Errorf("LeafAt(0) = %v", leaf)
	}
	if tree.LeafAt(7) != nil {
		t.Error("LeafAt outside the document")
	}
}
