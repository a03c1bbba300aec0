package dom

import "golang.org/x/net/html"

// PreviousTextNode finds the text node before n in document order, staying
// inside root. When the nearest candidate is an element without a usable text,
// a marker text node is created for it. It returns nil at the start of root.
func PreviousTextNode(n, root *html.Node) *html.Node {
	for cur := n; cur != nil && cur != root; cur = cur.Parent {
		for s := cur.PrevSibling; s != nil; s = s.PrevSibling {
			switch {
			case IsText(s):
				if !IsIgnorable(s) {
					return s
				}
			case IsVoid(s), IsOpaque(s):
				return InsertPlaceholderAfter(s)
			case s.Type == html.ElementNode:
				return lastTextIn(s)
			}
		}
	}
	return nil
}

func lastTextIn(el *html.Node) *html.Node {
	for c := el.LastChild; c != nil; c = c.PrevSibling {
		switch {
		case IsText(c):
			if !IsIgnorable(c) {
				return c
			}
		case IsVoid(c), IsOpaque(c):
			return InsertPlaceholderAfter(c)
		case c.Type == html.ElementNode:
			return lastTextIn(c)
		}
	}
	if IsList(el) {
		return InsertPlaceholderAfter(el)
	}
	return AppendPlaceholder(el)
}

// NextTextNode finds the text node after n in document order, staying inside
// root. Leaving an element other than a list item places a marker right after
// it. It returns nil at the end of root.
func NextTextNode(n, root *html.Node) *html.Node {
	cur := n
	for cur != nil && cur != root {
		for s := cur.NextSibling; s != nil; s = s.NextSibling {
			switch {
			case IsText(s):
				if !IsIgnorable(s) {
					return s
				}
			case IsVoid(s), IsOpaque(s):
				if IsText(s.NextSibling) {
					return s.NextSibling
				}
				return InsertPlaceholderAfter(s)
			case s.Type == html.ElementNode:
				return firstTextIn(s)
			}
		}
		parent := cur.Parent
		if parent == nil || parent == root {
			return nil
		}
		if IsLI(parent) || IsList(parent) {
			cur = parent
			continue
		}
		if IsText(parent.NextSibling) && !IsIgnorable(parent.NextSibling) {
			return parent.NextSibling
		}
		return InsertPlaceholderAfter(parent)
	}
	return nil
}

func firstTextIn(el *html.Node) *html.Node {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case IsText(c):
			if !IsIgnorable(c) {
				return c
			}
		case IsVoid(c), IsOpaque(c):
			return InsertPlaceholderBefore(c)
		case c.Type == html.ElementNode:
			return firstTextIn(c)
		}
	}
	if IsList(el) {
		li := NewElement("li")
		el.AppendChild(li)
		return AppendPlaceholder(li)
	}
	return AppendPlaceholder(el)
}
