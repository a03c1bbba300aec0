package annotation

import (
	"reflect"
	"testing"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/types"
)

const decision = `<div vocab="http://example.org/ns#" typeof="Decision" resource="#d1">` +
	`<span property="title">Budget</span> approved ` +
	`<span property="schema:author" resource="http://example.org/people/ann">Ann</span>` +
	`</div><p>plain</p>`

func scanTree(t *testing.T, markup string) *richnode.Tree {
	t.Helper()
	root, err := dom.NewRoot(markup)
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	return richnode.Build(root)
}

func TestResolveURI(t *testing.T) {
	prefixes := mergePrefixes(DefaultPrefixes, Attributes{values: map[string]string{
		"vocab":  "http://example.org/ns#",
		"prefix": "ex: http://ex.com/ besluit: http://data.vlaanderen.be/ns/besluit#",
	}})
	tests := map[string]string{
		"title":            "http://example.org/ns#title",
		"ex:thing":         "http://ex.com/thing",
		"besluit:Besluit":  "http://data.vlaanderen.be/ns/besluit#Besluit",
		"foaf:name":        "http://xmlns.com/foaf/0.1/name",
		"http://a.b/c":     "http://a.b/c",
		"#local":           "#local",
		"../relative/path": "../relative/path",
	}
	for in, want := range tests {
		if got := resolveURI(in, prefixes); got != want {
			t.Errorf("resolveURI(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToTriples(t *testing.T) {
	chain := []Attributes{
		{values: map[string]string{"typeof": "T", "resource": "#d1"}, Typeof: []string{"T"}},
		{values: map[string]string{"property": "p"}, Text: "value"},
	}
	got := ToTriples(chain)
	want := []Triple{
		{Subject: "#d1", Predicate: "a", Object: "T"},
		{Subject: "#d1", Predicate: "p", Object: "value"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToTriples = %+v, want %+v", got, want)
	}
}

func TestToTriplesResourceScopesNestedProperties(t *testing.T) {
	chain := []Attributes{
		{values: map[string]string{"about": "#a", "property": "knows", "resource": "#b"}},
		{values: map[string]string{"property": "name", "content": "Bee", "datatype": "xsd:string"}},
	}
	got := ToTriples(chain)
	want := []Triple{
		{Subject: "#a", Predicate: "knows", Object: "#b"},
		{Subject: "#b", Predicate: "name", Object: "Bee", Datatype: "xsd:string"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToTriples = %+v, want %+v", got, want)
	}
}

func TestScanBlocks(t *testing.T) {
	tree := scanTree(t, decision)
	blocks := NewRDFaScanner().Scan(tree.Root, nil)

	var texts []string
	for _, b := range blocks {
		texts = append(texts, b.Text)
	}
	want := []string{"Budget", " approved ", "Ann", "plain"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("block texts = %q, want %q", texts, want)
	}

	title := blocks[0]
	if title.Region != (types.Region{Start: 0, End: 6}) {
		t.Errorf("title region = %v", title.Region)
	}
	if !containsTriple(title.Context, Triple{Subject: "#d1", Predicate: "http://example.org/ns#title", Object: "Budget"}) {
		t.Errorf("title context = %+v", title.Context)
	}
	if !containsTriple(title.Context, Triple{Subject: "#d1", Predicate: "a", Object: "http://example.org/ns#Decision"}) {
		t.Errorf("missing type triple in %+v", title.Context)
	}
	if dom.TagName(title.SemanticNode.DOMNode) != "span" {
		t.Errorf("semantic node = %q", title.SemanticNode.DOMNode.Data)
	}
	author := blocks[2]
	if !containsTriple(author.Context, Triple{Subject: "#d1", Predicate: "http://schema.org/author", Object: "http://example.org/people/ann"}) {
		t.Errorf("author context = %+v", author.Context)
	}
}

func TestScanMergesInlineRuns(t *testing.T) {
	tree := scanTree(t, "one <em>two</em> three<p>four</p>")
	blocks := NewRDFaScanner().Scan(tree.Root, nil)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks: %+v", len(blocks), blocks)
	}
	if blocks[0].Text != "one two three" || len(blocks[0].Nodes) != 3 {
		t.Errorf("merged block = %q (%d nodes)", blocks[0].Text, len(blocks[0].Nodes))
	}
	if blocks[0].SemanticNode != tree.Root {
		t.Error("unannotated text should use the scan root as semantic node")
	}
}

func TestScanRegion(t *testing.T) {
	tree := scanTree(t, decision)
	blocks := NewRDFaScanner().Scan(tree.Root, &types.Region{Start: 17, End: 17})
	if len(blocks) != 1 || blocks[0].Text != "Ann" {
		t.Errorf("caret scan = %+v", blocks)
	}
	blocks = NewRDFaScanner().Scan(tree.Root, &types.Region{Start: 3, End: 8})
	if len(blocks) != 2 {
		t.Errorf("range scan returned %d blocks", len(blocks))
	}
}

func TestContextOwnOnly(t *testing.T) {
	tree := scanTree(t, decision)
	span := tree.Root.Children[0].Children[0]
	own := NewRDFaScanner().Context(span, true)
	want := []Triple{{Subject: "#d1", Predicate: "http://example.org/ns#title", Object: "Budget"}}
	if !reflect.DeepEqual(own, want) {
		t.Errorf("own context = %+v", own)
	}
	if all := NewRDFaScanner().Context(span, false); len(all) != 2 {
		t.Errorf("full context = %+v", all)
	}
	if NewRDFaScanner().Context(tree.Root, true) != nil {
		t.Error("unannotated node has own triples")
	}
}

func containsTriple(triples []Triple, want Triple) bool {
	for _, t := range triples {
		if t == want {
			return true
		}
	}
	return false
}
