package tui

import (
	"fmt"
	"strings"

	"github.com/bethropolis/rawedit/internal/annotation"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/handlers"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/theme"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
)

// Cell is one grapheme cluster on screen. Markers get a zero-width cell.
type Cell struct {
	Main      rune
	Combining []rune
	Width     int
	// Pos is the document position in front of the cluster, or -1 for
	// decoration such as bullets and placeholders.
	Pos   int
	Style string
}

// Line is one screen row. Start and End bound the document positions the
// row covers; markers and breaks extend them without adding cells.
type Line struct {
	Cells []Cell
	Start int
	End   int

	prefix int
	soft   bool
}

// Width returns the number of screen columns used.
func (l *Line) Width() int {
	w := 0
	for _, c := range l.Cells {
		w += c.Width
	}
	return w
}

func (l *Line) blank() bool {
	return len(l.Cells) == 0 && l.End == l.Start
}

func (l *Line) onlyPrefix() bool {
	return len(l.Cells) == l.prefix && l.End == l.Start
}

// cellWidth measures runes independently of the terminal locale, so
// ambiguous-width bullets take one column.
var cellWidth = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

type layouter struct {
	width  int
	lines  []Line
	styles []string
	indent string
}

// Layout flows the document below root into screen lines no wider than
// width. Blocks start on their own line, list items get a bullet or number,
// opaque elements become a placeholder. A width <= 0 disables wrapping.
func Layout(root *richnode.Node, width int) []Line {
	l := &layouter{width: width}
	l.newLine(0)
	if root != nil {
		l.lines[0].Start, l.lines[0].End = root.Start, root.Start
		for _, c := range root.Children {
			l.node(c, 0)
		}
	}
	if n := len(l.lines); n > 1 && l.lines[n-1].soft && l.lines[n-1].blank() {
		l.lines = l.lines[:n-1]
	}
	return l.lines
}

func (l *layouter) cur() *Line {
	return &l.lines[len(l.lines)-1]
}

func (l *layouter) newLine(pos int) {
	l.lines = append(l.lines, Line{Start: pos, End: pos})
}

func (l *layouter) openBlock(pos int, force bool) {
	cur := l.cur()
	switch {
	case cur.blank():
		cur.Start, cur.End, cur.soft = pos, pos, false
	case !force && cur.onlyPrefix():
	default:
		l.newLine(pos)
	}
}

func (l *layouter) closeBlock(pos int) {
	if !l.cur().blank() {
		l.newLine(pos)
		l.cur().soft = true
	}
}

func (l *layouter) style() string {
	for i := len(l.styles) - 1; i >= 0; i-- {
		if l.styles[i] != "" {
			return l.styles[i]
		}
	}
	return theme.StyleDefault
}

// decorate appends cells that belong to no document position.
func (l *layouter) decorate(s, style string, prefix bool) {
	for _, r := range s {
		l.cur().Cells = append(l.cur().Cells, Cell{Main: r, Width: cellWidth.RuneWidth(r), Pos: -1, Style: style})
		if prefix {
			l.cur().prefix++
		}
	}
}

func (l *layouter) place(c Cell) {
	cur := l.cur()
	if l.width > 0 && len(cur.Cells) > cur.prefix && cur.Width()+c.Width > l.width {
		l.newLine(c.Pos)
		l.decorate(l.indent, theme.StyleDefault, true)
		cur = l.cur()
	}
	cur.Cells = append(cur.Cells, c)
}

func (l *layouter) node(rn *richnode.Node, depth int) {
	switch rn.Type {
	case richnode.TypeText:
		l.text(rn)
	case richnode.TypeVoid:
		l.void(rn)
	case richnode.TypeTag:
		l.element(rn, depth)
	}
}

func (l *layouter) text(rn *richnode.Node) {
	pos := rn.Start
	gr := uniseg.NewGraphemes(rn.Text)
	for gr.Next() {
		runes := gr.Runes()
		start := pos
		pos += len(runes)

		visible := make([]rune, 0, len(runes))
		for _, r := range runes {
			switch r {
			case '\u200B':
			case '\n', '\r', '\t', '\f', '\u00A0':
				visible = append(visible, ' ')
			default:
				visible = append(visible, r)
			}
		}
		if len(visible) == 0 {
			// a marker keeps its position reachable without taking a column
			l.place(Cell{Pos: start, Style: l.style()})
			l.cur().End = pos
			continue
		}
		w := cellWidth.StringWidth(string(visible))
		if w < 1 {
			w = 1
		}
		l.place(Cell{Main: visible[0], Combining: visible[1:], Width: w, Pos: start, Style: l.style()})
		l.cur().End = pos
	}
}

func (l *layouter) void(rn *richnode.Node) {
	n := rn.DOMNode
	switch dom.TagName(n) {
	case "br":
		if l.cur().End < rn.Start {
			l.cur().End = rn.Start
		}
		l.newLine(rn.End)
	case "hr":
		l.openBlock(rn.Start, false)
		l.place(Cell{Main: '\u2500', Width: 1, Pos: rn.Start, Style: theme.StyleBullet})
		l.decorate(strings.Repeat("\u2500", 9), theme.StyleBullet, false)
		l.cur().End = rn.End
		l.closeBlock(rn.End)
	default:
		label := "[" + dom.TagName(n) + "]"
		if alt, ok := dom.Attr(n, "alt"); ok && alt != "" {
			label = "[" + dom.TagName(n) + ": " + alt + "]"
		}
		runes := []rune(label)
		l.place(Cell{Main: runes[0], Width: 1, Pos: rn.Start, Style: theme.StyleComponent})
		l.decorate(string(runes[1:]), theme.StyleComponent, false)
		l.cur().End = rn.End
	}
}

func (l *layouter) element(rn *richnode.Node, depth int) {
	n := rn.DOMNode
	if dom.IsOpaque(n) {
		name, ok := dom.Attr(n, "data-component")
		if !ok {
			name = dom.TagName(n)
		}
		l.openBlock(rn.Start, true)
		l.decorate("[component: "+name+"]", theme.StyleComponent, false)
		l.closeBlock(rn.End)
		return
	}

	block := dom.IsBlock(n)
	oldIndent := l.indent
	if dom.IsList(n) {
		depth++
	}
	if dom.IsLI(n) {
		l.openBlock(rn.Start, true)
		bullet := listMarker(n)
		indent := strings.Repeat("  ", max(depth-1, 0))
		l.decorate(indent, theme.StyleDefault, true)
		l.decorate(bullet, theme.StyleBullet, true)
		l.indent = indent + strings.Repeat(" ", cellWidth.StringWidth(bullet))
	} else if block {
		l.openBlock(rn.Start, false)
	}

	l.styles = append(l.styles, styleFor(n))
	for _, c := range rn.Children {
		l.node(c, depth)
	}
	l.styles = l.styles[:len(l.styles)-1]
	l.indent = oldIndent

	if block {
		l.closeBlock(rn.End)
	}
}

func listMarker(li *html.Node) string {
	if !dom.IsElement(li.Parent, "ol") {
		return "\u2022 "
	}
	index := 1
	for s := li.PrevSibling; s != nil; s = s.PrevSibling {
		if dom.IsLI(s) {
			index++
		}
	}
	return fmt.Sprintf("%d. ", index)
}

// styleFor names the style an element imposes on its text, or "" to inherit.
func styleFor(n *html.Node) string {
	if dom.HasAttr(n, handlers.FlaggedRemoveAttr) {
		return theme.StyleFlagged
	}
	switch dom.TagName(n) {
	case "mark":
		return theme.StyleHighlight
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return theme.StyleHeading
	case "b", "strong":
		return theme.StyleBold
	case "i", "em":
		return theme.StyleItalic
	case "u":
		return theme.StyleUnderline
	case "a":
		return theme.StyleLink
	case "code", "pre", "kbd", "samp":
		return theme.StyleCode
	}
	if annotation.HasAttributes(n) {
		return theme.StyleAnnotated
	}
	return ""
}

// Locate returns the column and row at which a caret at pos is drawn.
// A cell starting at pos wins over a row that merely ends there.
func Locate(lines []Line, pos int) (x, y int, ok bool) {
	for row := range lines {
		col := 0
		for _, c := range lines[row].Cells {
			if c.Pos == pos {
				return col, row, true
			}
			col += c.Width
		}
	}
	for row := range lines {
		line := &lines[row]
		if pos < line.Start || pos > line.End {
			continue
		}
		col := 0
		for _, c := range line.Cells {
			if c.Pos >= pos {
				break
			}
			col += c.Width
		}
		return col, row, true
	}
	return 0, 0, false
}

// PositionAt maps a screen cell to the document position closest to it.
// Rows outside the document are clamped.
func PositionAt(lines []Line, x, y int) int {
	if len(lines) == 0 {
		return 0
	}
	y = max(0, min(y, len(lines)-1))
	line := &lines[y]
	col := 0
	for _, c := range line.Cells {
		if c.Pos >= 0 && col+c.Width > x {
			return c.Pos
		}
		col += c.Width
	}
	return line.End
}
