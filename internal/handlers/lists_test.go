package handlers

import (
	"testing"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
	"golang.org/x/net/html"
)

func countTags(root *html.Node, tag string) int {
	count := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, tag) {
			count++
		}
		count += countTags(c, tag)
	}
	return count
}

func TestUnorderedListAndIndent(t *testing.T) {
	ed, p := newPipeline(t, "hello world")
	caretAt(t, ed, 5)

	v := p.KeyDown(input.Ctrl('u'))
	if len(v.Ran) != 1 || v.Ran[0] != "unordered-list" {
		t.Fatalf("ran %v", v.Ran)
	}
	wantHTML(t, ed, "<ul><li>hello world</li></ul>"+dom.InvisibleSpace)
	if ed.Text() != "hello world"+dom.InvisibleSpace {
		t.Errorf("text = %q", ed.Text())
	}
	wantCaret(t, ed, 5)

	v = p.KeyDown(input.Press(input.KeyTab))
	if len(v.Ran) != 1 || v.Ran[0] != "indent" {
		t.Fatalf("ran %v", v.Ran)
	}
	if got := countTags(ed.Root(), "ul"); got != 2 {
		t.Errorf("got %d lists after indent, want 2: %s", got, ed.InnerHTML())
	}
	if dom.VisibleText(ed.Text()) != "hello world" {
		t.Errorf("text = %q", ed.Text())
	}
	wantCaret(t, ed, 5)

	p.KeyDown(input.Press(input.KeyTab, input.ModShift))
	wantHTML(t, ed, "<ul><li>hello world</li></ul>"+dom.InvisibleSpace)
}

func TestNewListBeforeTextAddsNoMarker(t *testing.T) {
	ed, p := newPipeline(t, "<p>hello</p>tail")
	caretAt(t, ed, 2)

	p.KeyDown(input.Ctrl('u'))
	wantHTML(t, ed, "<ul><li><p>hello</p></li></ul>tail")
	if ed.Text() != "hellotail" {
		t.Errorf("text = %q", ed.Text())
	}
	wantCaret(t, ed, 2)
}

func TestIndentUnderPreviousItem(t *testing.T) {
	ed, p := newPipeline(t, "<ol><li>a</li><li>b</li></ol>")
	caretAt(t, ed, 1)
	if ed.CurrentNode().Data != "b" {
		t.Fatalf("caret resolved into %q", ed.CurrentNode().Data)
	}
	p.KeyDown(input.Press(input.KeyTab))
	wantHTML(t, ed, "<ol><li>a<ol><li>b</li></ol></li></ol>")
}

func TestUnindentSplitsList(t *testing.T) {
	ed, p := newPipeline(t, "<ul><li>a</li><li>b</li><li>c</li></ul>")
	caretAt(t, ed, 1)
	p.KeyDown(input.Press(input.KeyTab, input.ModShift))
	wantHTML(t, ed, "<ul><li>a</li></ul>b<ul><li>c</li></ul>"+dom.InvisibleSpace)
	if ed.CurrentNode().Data != "b" {
		t.Errorf("caret in %q", ed.CurrentNode().Data)
	}
}

func TestListTypeSwitch(t *testing.T) {
	ed, p := newPipeline(t, "<ul><li>a</li></ul>")
	caretAt(t, ed, 1)
	p.KeyDown(input.Ctrl('o'))
	wantHTML(t, ed, "<ol><li>a</li></ol>"+dom.InvisibleSpace)
}

func TestListWrapsParagraph(t *testing.T) {
	ed, p := newPipeline(t, "<p>ab</p><p>cd</p>")
	caretAt(t, ed, 1)
	p.KeyDown(input.Ctrl('u'))
	wantHTML(t, ed, "<ul><li><p>ab</p></li></ul>"+dom.InvisibleSpace+"<p>cd</p>")
}

func TestMarkdownList(t *testing.T) {
	ed, p := newPipeline(t, "* item")
	caretAt(t, ed, 6)

	v := p.KeyDown(enterKey)
	if len(v.Ran) != 1 || v.Ran[0] != "markdown-list" {
		t.Fatalf("ran %v", v.Ran)
	}
	marker := dom.InvisibleSpace
	wantHTML(t, ed, "<ul><li>item</li><li>"+marker+"</li></ul>"+marker)
	wantCaret(t, ed, 4)
}

func TestMarkdownOrderedListWithoutContent(t *testing.T) {
	ed, p := newPipeline(t, "1. ")
	caretAt(t, ed, 3)
	p.KeyDown(enterKey)
	marker := dom.InvisibleSpace
	wantHTML(t, ed, "<ol><li>"+marker+"</li></ol>"+marker)
	wantCaret(t, ed, 0)
}
