package handlers

import (
	"errors"

	"github.com/bethropolis/rawedit/internal/annotation"
	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
)

const (
	// FlaggedRemoveAttr marks an annotated element emptied by backspace.
	FlaggedRemoveAttr = "data-flagged-remove"
	flaggedComplete   = "complete"

	// maxBackspaceDepth bounds the walk over empty text nodes.
	maxBackspaceDepth = 64
)

var errBackspaceDepth = errors.New("backspace walked too many empty nodes")

// BackspaceHandler deletes the visible character before the caret. At the
// start of a node it continues in the previous one, merging list items and
// blocks on the way. A range selection is deleted as a whole.
type BackspaceHandler struct{}

func (BackspaceHandler) Name() string { return "backspace" }

func (BackspaceHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return isKeyDown(ev, input.KeyBackspace)
}

func (BackspaceHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	var err error
	if sel := ed.Selection(); !sel.IsCaret() {
		ed.ApplyExternalMutation("backspace range", func() {
			if err = ed.DeleteRange(sel); err != nil {
				return
			}
			rn, ferr := ed.FindSuitableNodeForPosition(sel.Start)
			if ferr != nil {
				err = ferr
				return
			}
			ed.PlaceCaret(rn.DOMNode, sel.Start-rn.Start)
		})
		return handled, err
	}
	ed.ApplyExternalMutation("backspace", func() {
		text, rel, cerr := caretText(ed)
		if cerr != nil {
			err = cerr
			return
		}
		b := &backspace{ed: ed, root: ed.Root()}
		if el := dom.ClosestWithin(text, b.root, isFlagged); el != nil {
			if v, _ := dom.Attr(el, FlaggedRemoveAttr); v == flaggedComplete {
				b.removeFlagged(el)
				return
			}
		}
		err = b.deleteInText(text, rel, 0)
	})
	return handled, err
}

type backspace struct {
	ed   *core.Editor
	root *html.Node
}

func isFlagged(n *html.Node) bool {
	return dom.HasAttr(n, FlaggedRemoveAttr)
}

// removeFlagged drops an element flagged for removal in one step.
func (b *backspace) removeFlagged(el *html.Node) {
	prev := dom.PreviousTextNode(el, b.root)
	if prev == nil {
		prev = dom.NewText("")
		dom.InsertBefore(el, prev)
	}
	dom.Detach(el)
	logger.DebugTagf("backspace", "removed flagged <%s>", dom.TagName(el))
	b.ed.PlaceCaret(prev, dom.RuneLen(prev.Data))
}

func (b *backspace) deleteInText(text *html.Node, rel, depth int) error {
	if depth > maxBackspaceDepth {
		return errBackspaceDepth
	}
	runes := []rune(text.Data)
	if rel > len(runes) {
		rel = len(runes)
	}
	runes, rel = stripInvisibleBefore(runes, rel)
	text.Data = string(runes)
	if rel == 0 {
		return b.atNodeStart(text, depth)
	}

	runes, rel = deleteGraphemeBefore(runes, rel)
	text.Data = string(padTrailingSpace(runes, rel))
	if dom.IsVisiblyEmpty(text) {
		b.cleanUp(text)
		return nil
	}
	b.ed.PlaceCaret(text, rel)
	return nil
}

// stripInvisibleBefore drops markers and whitespace the renderer folds away
// right before the caret.
func stripInvisibleBefore(runes []rune, rel int) ([]rune, int) {
	for rel > 0 {
		r := runes[rel-1]
		folded := isCollapsible(r) && rel > 1 && isCollapsible(runes[rel-2])
		if string(r) != dom.InvisibleSpace && !folded {
			break
		}
		runes = append(runes[:rel-1:rel-1], runes[rel:]...)
		rel--
	}
	return runes, rel
}

func isCollapsible(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// deleteGraphemeBefore removes the user-perceived character ending at rel.
func deleteGraphemeBefore(runes []rune, rel int) ([]rune, int) {
	last := 1
	g := uniseg.NewGraphemes(string(runes[:rel]))
	for g.Next() {
		last = len(g.Runes())
	}
	cut := rel - last
	out := append(append([]rune{}, runes[:cut]...), runes[rel:]...)
	return out, cut
}

// padTrailingSpace keeps a space left at the end of the text visible.
func padTrailingSpace(runes []rune, rel int) []rune {
	if rel > 0 && rel == len(runes) && isCollapsible(runes[rel-1]) {
		runes[rel-1] = []rune(dom.NBSP)[0]
	}
	return runes
}

// cleanUp handles a text node backspace just emptied. An emptied annotated
// element is kept with a marker and flagged; otherwise the text and the
// elements it leaves empty are removed and the caret moves back.
func (b *backspace) cleanUp(text *html.Node) {
	if el := dom.ClosestWithin(text.Parent, b.root, annotation.HasAttributes); el != nil && dom.IsVisiblyEmpty(el) {
		for _, c := range dom.Children(el) {
			dom.Detach(c)
		}
		marker := dom.AppendPlaceholder(el)
		dom.SetAttr(el, FlaggedRemoveAttr, flaggedComplete)
		logger.DebugTagf("backspace", "flagged <%s> for removal", dom.TagName(el))
		b.ed.PlaceCaret(marker, 1)
		return
	}

	prev := dom.PreviousTextNode(text, b.root)
	if prev == nil {
		text.Data = ""
		b.ed.PlaceCaret(text, 0)
		return
	}
	parent := text.Parent
	dom.Detach(text)
	b.removeEmptyAncestors(parent, prev)
	b.ed.PlaceCaret(prev, dom.RuneLen(prev.Data))
}

// removeEmptyAncestors climbs from n removing elements that show nothing,
// stopping at the root, at elements the caret may not enter, at annotated
// elements and at any element holding keep.
func (b *backspace) removeEmptyAncestors(n, keep *html.Node) {
	for n != nil && n != b.root && n.Type == html.ElementNode &&
		!dom.IsOpaque(n) && !annotation.HasAttributes(n) &&
		dom.IsVisiblyEmpty(n) && !dom.Contains(n, keep) {
		parent := n.Parent
		dom.Detach(n)
		n = parent
	}
}

// atNodeStart handles a caret at offset 0 of text.
func (b *backspace) atNodeStart(text *html.Node, depth int) error {
	if li := dom.ClosestWithin(text, b.root, dom.IsLI); li != nil && atVisibleStart(li, text) {
		b.mergeListItem(li, text)
		return nil
	}

	prev := b.previousLeaf(text)
	switch {
	case prev == nil:
		b.ed.PlaceCaret(text, 0)
		return nil
	case dom.IsVoid(prev):
		dom.Detach(prev)
		b.ed.PlaceCaret(text, 0)
		return nil
	}

	block := dom.ClosestWithin(text, b.root, dom.IsBlock)
	if !dom.IsLI(block) && !dom.Contains(block, prev) {
		switch {
		case block != nil && atVisibleStart(block, text):
			b.mergeInto(prev, dom.Children(block))
			dom.Detach(block)
			return nil
		case block == nil && b.startsInlineRun(text):
			b.mergeInto(prev, inlineRun(text, b.root))
			return nil
		case block != nil:
			b.ed.PlaceCaret(text, 0)
			return nil
		}
	}

	if dom.IsVisiblyEmpty(text) {
		parent := text.Parent
		dom.Detach(text)
		b.removeEmptyAncestors(parent, prev)
	}
	return b.deleteInText(prev, dom.RuneLen(prev.Data), depth+1)
}

// startsInlineRun reports whether text opens a run of inline content at the
// top level, directly after a block.
func (b *backspace) startsInlineRun(text *html.Node) bool {
	top := topLevel(text, b.root)
	if !atVisibleStart(top, text) {
		return false
	}
	for s := top.PrevSibling; s != nil; s = s.PrevSibling {
		if dom.IsBlock(s) {
			return true
		}
		if !blank(s) {
			return false
		}
	}
	return false
}

// mergeListItem handles backspace at the start of a list item: its content
// joins the previous item, or leaves the list when there is none.
func (b *backspace) mergeListItem(li, text *html.Node) {
	list := li.Parent
	if prevLI := previousElement(li, dom.IsLI); prevLI != nil {
		target := dom.PreviousTextNode(li, b.root)
		for _, c := range dom.Children(li) {
			if dom.IsText(c) && dom.IsVisiblyEmpty(c) {
				dom.Detach(c)
				continue
			}
			dom.Append(prevLI, c)
		}
		dom.Detach(li)
		logger.DebugTagf("backspace", "merged list item into its predecessor")
		b.ed.PlaceCaret(target, dom.RuneLen(target.Data))
		return
	}

	for _, c := range dom.Children(li) {
		dom.InsertBefore(list, c)
	}
	dom.Detach(li)
	if dom.IsEmptyList(list) {
		dom.Detach(list)
	}
	logger.DebugTagf("backspace", "moved first list item out of its list")
	b.ed.PlaceCaret(text, 0)
}

// mergeInto moves nodes behind prev, into the block holding prev when there
// is one. Empty text nodes are dropped on the way.
func (b *backspace) mergeInto(prev *html.Node, nodes []*html.Node) {
	target := dom.ClosestWithin(prev, b.root, dom.IsBlock)
	ref := topLevel(prev, b.root)
	for _, n := range nodes {
		if dom.IsText(n) && dom.IsVisiblyEmpty(n) {
			dom.Detach(n)
			continue
		}
		if target != nil {
			dom.Append(target, n)
			continue
		}
		dom.InsertAfter(ref, n)
		ref = n
	}
	logger.DebugTagf("backspace", "merged %d nodes into the previous block", len(nodes))
	b.ed.PlaceCaret(prev, dom.RuneLen(prev.Data))
}

// previousLeaf walks back in document order to the nearest text or void
// leaf inside root, without creating nodes. Empty text it passes is removed;
// elements the caret may not enter, comments and formatting whitespace are
// skipped.
func (b *backspace) previousLeaf(n *html.Node) *html.Node {
	for cur := n; cur != nil && cur != b.root; cur = cur.Parent {
		for s := cur.PrevSibling; s != nil; {
			prev := s.PrevSibling
			if leaf := lastLeaf(s); leaf != nil {
				return leaf
			}
			s = prev
		}
	}
	return nil
}

func lastLeaf(n *html.Node) *html.Node {
	switch {
	case dom.IsText(n):
		if dom.IsIgnorable(n) || formattingWhitespace(n) {
			return nil
		}
		if dom.IsVisiblyEmpty(n) {
			dom.Detach(n)
			return nil
		}
		return n
	case dom.IsVoid(n):
		return n
	case n.Type != html.ElementNode, dom.IsOpaque(n):
		return nil
	}
	for c := n.LastChild; c != nil; {
		prev := c.PrevSibling
		if leaf := lastLeaf(c); leaf != nil {
			return leaf
		}
		c = prev
	}
	return nil
}

// topLevel returns the ancestor of n that is a direct child of root.
func topLevel(n, root *html.Node) *html.Node {
	for n.Parent != nil && n.Parent != root {
		n = n.Parent
	}
	return n
}

// inlineRun returns the top-level nodes from the one holding n up to the
// next block.
func inlineRun(n, root *html.Node) []*html.Node {
	var out []*html.Node
	for s := topLevel(n, root); s != nil && !dom.IsBlock(s); s = s.NextSibling {
		out = append(out, s)
	}
	return out
}
