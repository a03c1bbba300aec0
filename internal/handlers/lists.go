package handlers

import (
	"regexp"

	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
	"github.com/bethropolis/rawedit/internal/logger"
	"golang.org/x/net/html"
)

// ListHandler toggles a list of Tag ("ul" or "ol") around the caret's logical
// block: Ctrl+U for unordered, Ctrl+O for ordered lists. Inside a list of
// the same type the item is unwrapped; inside the other type the list
// switches type.
type ListHandler struct {
	Tag string
}

func (h ListHandler) Name() string {
	if h.Tag == "ol" {
		return "ordered-list"
	}
	return "unordered-list"
}

func (h ListHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	key := 'u'
	if h.Tag == "ol" {
		key = 'o'
	}
	return ev.Type == input.EventKeyDown && ev.IsCtrl(key) && ed.CurrentSelectionIsCaret()
}

func (h ListHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	var err error
	ed.ApplyExternalMutation(h.Name(), func() {
		text, rel, cerr := caretText(ed)
		if cerr != nil {
			err = cerr
			return
		}
		root := ed.Root()
		li := dom.ClosestWithin(text, root, dom.IsLI)
		switch {
		case li == nil:
			insertNewList(root, text, h.Tag)
		case dom.TagName(li.Parent) == h.Tag:
			unwrapListItem(li, text)
		default:
			switchListType(li.Parent, h.Tag)
		}
		ed.PlaceCaret(text, rel)
	})
	return handled, err
}

// IndentHandler nests the caret's list item one level deeper on Tab.
type IndentHandler struct{}

func (IndentHandler) Name() string { return "indent" }

func (IndentHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return isKeyDown(ev, input.KeyTab) && !ev.Has(input.ModShift) && caretListItem(ed) != nil
}

func (IndentHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	var err error
	ed.ApplyExternalMutation("indent", func() {
		text, rel, cerr := caretText(ed)
		if cerr != nil {
			err = cerr
			return
		}
		li := dom.ClosestWithin(text, ed.Root(), dom.IsLI)
		if li == nil {
			err = errNotInList
			return
		}
		indent(li, text)
		ed.PlaceCaret(text, rel)
	})
	return handled, err
}

// UnindentHandler moves the caret's list item one level up on Shift+Tab.
type UnindentHandler struct{}

func (UnindentHandler) Name() string { return "unindent" }

func (UnindentHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return isKeyDown(ev, input.KeyTab) && ev.Has(input.ModShift) && caretListItem(ed) != nil
}

func (UnindentHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	var err error
	ed.ApplyExternalMutation("unindent", func() {
		text, rel, cerr := caretText(ed)
		if cerr != nil {
			err = cerr
			return
		}
		li := dom.ClosestWithin(text, ed.Root(), dom.IsLI)
		if li == nil {
			err = errNotInList
			return
		}
		unwrapListItem(li, text)
		ed.PlaceCaret(text, rel)
	})
	return handled, err
}

var markdownLists = []struct {
	pattern *regexp.Regexp
	tag     string
}{
	{regexp.MustCompile(`^\x{200B}*1\.[\s\x{00A0}](.*)$`), "ol"},
	{regexp.MustCompile(`^\x{200B}*[*-][\s\x{00A0}](.*)$`), "ul"},
}

// MarkdownListHandler turns a text starting with "1. ", "* " or "- " into a
// list when Enter is pressed in it.
type MarkdownListHandler struct{}

func (MarkdownListHandler) Name() string { return "markdown-list" }

func (MarkdownListHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	if !isKeyDown(ev, input.KeyEnter) || !ed.CurrentSelectionIsCaret() {
		return false
	}
	n := ed.CurrentNode()
	if !dom.IsText(n) {
		return false
	}
	_, _, ok := matchMarkdownList(n.Data)
	return ok
}

func (MarkdownListHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	text := ed.CurrentNode()
	content, tag, ok := matchMarkdownList(text.Data)
	if !ok {
		return handled, errNoMarkdown
	}
	ed.ApplyExternalMutation("markdown list", func() {
		list := dom.NewElement(tag)
		first := dom.NewElement("li")
		if blankString(content) {
			content = dom.InvisibleSpace
		}
		dom.Append(first, dom.NewText(content))
		dom.Append(list, first)

		cursorItem := first
		if content != dom.InvisibleSpace {
			cursorItem = dom.NewElement("li")
			dom.AppendPlaceholder(cursorItem)
			dom.Append(list, cursorItem)
		}
		dom.InsertBefore(text, list)
		dom.InsertBefore(text, dom.NewPlaceholder())
		dom.Detach(text)
		logger.DebugTagf("list", "markdown started a <%s>", tag)
		ed.PlaceCaret(cursorItem.FirstChild, 0)
	})
	return handled, nil
}

func matchMarkdownList(s string) (content, tag string, ok bool) {
	for _, m := range markdownLists {
		if groups := m.pattern.FindStringSubmatch(s); groups != nil {
			return groups[1], m.tag, true
		}
	}
	return "", "", false
}

// paragraphBlocks cannot hold a list, so a list wraps them instead.
var paragraphBlocks = []string{"p", "h1", "h2", "h3", "h4", "h5", "h6", "pre"}

// logicalBlock returns the nodes a list action works on: the run of inline
// siblings around n bounded by blocks, or the paragraph holding n.
func logicalBlock(n, limit *html.Node) []*html.Node {
	base := n
	for base.Parent != nil && base.Parent != limit && !dom.IsBlock(base.Parent) {
		base = base.Parent
	}
	if p := base.Parent; p != nil && p != limit && dom.IsElement(p, paragraphBlocks...) {
		return []*html.Node{p}
	}

	var nodes []*html.Node
	for s := base; s != nil && !dom.IsBlock(s); s = s.PrevSibling {
		nodes = append([]*html.Node{s}, nodes...)
	}
	for s := base.NextSibling; s != nil && !dom.IsBlock(s); s = s.NextSibling {
		nodes = append(nodes, s)
	}
	return nodes
}

// insertNewList wraps the logical block of n below limit in a new list with
// one item. Unless text already follows the list, a marker behind it keeps a
// caret position after it. The marker is part of the text.
func insertNewList(limit, n *html.Node, tag string) {
	nodes := logicalBlock(n, limit)
	list := dom.NewElement(tag)
	li := dom.NewElement("li")
	dom.Append(list, li)

	dom.InsertBefore(nodes[0], list)
	for _, c := range nodes {
		dom.Append(li, c)
	}
	if !dom.IsText(list.NextSibling) {
		dom.InsertPlaceholderAfter(list)
	}
	logger.DebugTagf("list", "wrapped %d nodes in a new <%s>", len(nodes), tag)
}

// switchListType replaces list by a list of tag holding the same items.
func switchListType(list *html.Node, tag string) {
	next := dom.NewElement(tag)
	next.Attr = append(next.Attr, list.Attr...)
	dom.MoveChildren(list, next)
	dom.ReplaceWith(list, next)
	if !dom.IsText(next.NextSibling) {
		dom.InsertPlaceholderAfter(next)
	}
	logger.DebugTagf("list", "switched list to <%s>", tag)
}

// indent nests li in a list of the same type inside the previous item. The
// first item of a list has nothing to nest under, so its logical block gets
// a list of its own.
func indent(li, text *html.Node) {
	list := li.Parent
	tag := dom.TagName(list)
	prev := previousElement(li, dom.IsLI)
	if prev == nil {
		insertNewList(li, text, tag)
		return
	}
	sub := lastElementChild(prev)
	if dom.TagName(sub) != tag {
		sub = dom.NewElement(tag)
		dom.Append(prev, sub)
	}
	dom.Append(sub, li)
	logger.DebugTagf("list", "indented list item")
}

// unwrapListItem takes the logical block of text out of li. Items before
// and after it stay in lists of their own. In a nested list the block
// becomes an item after the parent item and the following items nest below
// it; at the top level the block leaves the list.
func unwrapListItem(li, text *html.Node) {
	list := li.Parent
	tag := dom.TagName(list)

	var block []*html.Node
	for _, c := range dom.Children(li) {
		if dom.IsBlock(c) && dom.Contains(c, text) {
			block = []*html.Node{c}
			break
		}
	}
	if block == nil {
		block = logicalBlock(text, li)
	}
	inBlock := make(map[*html.Node]bool, len(block))
	for _, n := range block {
		inBlock[n] = true
	}

	var before, after []*html.Node
	rest := &before
	for _, c := range dom.Children(li) {
		if inBlock[c] {
			rest = &after
			continue
		}
		*rest = append(*rest, c)
	}

	var itemsBefore, itemsAfter []*html.Node
	items := &itemsBefore
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c == li {
			items = &itemsAfter
			continue
		}
		if dom.IsLI(c) {
			*items = append(*items, c)
		}
	}
	if item := itemOf(before); item != nil {
		itemsBefore = append(itemsBefore, item)
	}
	if item := itemOf(after); item != nil {
		itemsAfter = append([]*html.Node{item}, itemsAfter...)
	}

	if parentLI := list.Parent; dom.IsLI(parentLI) {
		outdent(parentLI, list, tag, block, itemsBefore, itemsAfter)
		return
	}

	if len(itemsBefore) > 0 {
		dom.InsertBefore(list, listOf(tag, itemsBefore))
	}
	for _, n := range block {
		dom.InsertBefore(list, n)
	}
	if len(itemsAfter) > 0 {
		dom.InsertBefore(list, listOf(tag, itemsAfter))
	}
	dom.InsertBefore(list, dom.NewPlaceholder())
	dom.Detach(list)
	logger.DebugTagf("list", "unwrapped list item")
}

func outdent(parentLI, list *html.Node, tag string, block, itemsBefore, itemsAfter []*html.Node) {
	item := dom.NewElement("li")
	for _, n := range block {
		dom.Append(item, n)
	}
	if len(itemsAfter) > 0 {
		dom.Append(item, listOf(tag, itemsAfter))
	}
	dom.InsertAfter(parentLI, item)

	for _, c := range dom.Children(list) {
		dom.Detach(c)
	}
	for _, c := range itemsBefore {
		dom.Append(list, c)
	}
	if dom.IsEmptyList(list) {
		dom.Detach(list)
	}
	if blank(parentLI) {
		dom.Detach(parentLI)
	}
	logger.DebugTagf("list", "outdented list item")
}

// itemOf wraps nodes in a new list item unless they show nothing.
func itemOf(nodes []*html.Node) *html.Node {
	visible := false
	for _, n := range nodes {
		if !blank(n) {
			visible = true
			break
		}
	}
	if !visible {
		return nil
	}
	li := dom.NewElement("li")
	for _, n := range nodes {
		dom.Append(li, n)
	}
	return li
}

func listOf(tag string, items []*html.Node) *html.Node {
	list := dom.NewElement(tag)
	for _, li := range items {
		dom.Append(list, li)
	}
	return list
}
