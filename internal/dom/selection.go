package dom

import "golang.org/x/net/html"

// Range is the host's native selection: a start and end point, each a
// container node plus an offset. For text containers the offset counts runes,
// for elements it is a child index.
type Range struct {
	StartContainer *html.Node
	StartOffset    int
	EndContainer   *html.Node
	EndOffset      int
}

// CaretAt returns a collapsed range.
func CaretAt(n *html.Node, offset int) Range {
	return Range{StartContainer: n, StartOffset: offset, EndContainer: n, EndOffset: offset}
}

// Collapsed reports whether both points coincide.
func (r Range) Collapsed() bool {
	return r.StartContainer == r.EndContainer && r.StartOffset == r.EndOffset
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.StartContainer == nil
}
