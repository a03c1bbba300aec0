package tui

import (
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/theme"
	"github.com/bethropolis/rawedit/internal/types"
)

// View draws the laid out document into the rows above the status bar and
// scrolls so the caret stays visible. It remembers the last layout so the
// host can map screen cells and vertical moves back to positions.
type View struct {
	offsetY int
	lines   []Line
}

// Lines returns the layout of the last Draw.
func (v *View) Lines() []Line {
	return v.lines
}

// Draw lays out root for the current screen width and draws rows
// [0, viewHeight). The caret goes to the head of sel, which is its End.
func (v *View) Draw(t *TUI, root *richnode.Node, sel types.Region, activeTheme *theme.Theme, viewHeight int) {
	if activeTheme == nil {
		logger.Warnf("View.Draw called with nil theme, using the built-in default.")
		activeTheme = &theme.PaperDark
	}
	screen := t.GetScreen()
	width, _ := t.Size()
	if viewHeight <= 0 || width <= 0 {
		return
	}

	v.lines = Layout(root, width)
	caretX, caretY, caretOK := Locate(v.lines, sel.End)
	if caretOK {
		if caretY < v.offsetY {
			v.offsetY = caretY
		} else if caretY >= v.offsetY+viewHeight {
			v.offsetY = caretY - viewHeight + 1
		}
	}
	if v.offsetY > len(v.lines)-1 {
		v.offsetY = max(len(v.lines)-1, 0)
	}

	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	selectionStyle := activeTheme.GetStyle(theme.StyleSelection)
	for screenY := 0; screenY < viewHeight; screenY++ {
		for fillX := 0; fillX < width; fillX++ {
			screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		lineIdx := screenY + v.offsetY
		if lineIdx >= len(v.lines) {
			continue
		}
		screenX := 0
		for _, c := range v.lines[lineIdx].Cells {
			if c.Width == 0 {
				continue
			}
			if screenX+c.Width > width {
				break
			}
			style := activeTheme.GetStyle(c.Style)
			if !sel.IsCaret() && c.Pos >= sel.Start && c.Pos < sel.End {
				style = selectionStyle
			}
			screen.SetContent(screenX, screenY, c.Main, c.Combining, style)
			screenX += c.Width
		}
	}

	if caretOK && caretY-v.offsetY < viewHeight && caretX < width {
		screen.ShowCursor(caretX, caretY-v.offsetY)
	} else {
		screen.HideCursor()
	}
}

// PositionAt maps a screen cell of the last Draw to a document position.
func (v *View) PositionAt(x, screenY int) int {
	return PositionAt(v.lines, x, screenY+v.offsetY)
}

// Vertical returns the position dy rows above or below pos, keeping the
// column where possible. ok is false when there is no such row.
func (v *View) Vertical(pos, dy int) (int, bool) {
	x, y, ok := Locate(v.lines, pos)
	if !ok || y+dy < 0 || y+dy >= len(v.lines) {
		return pos, false
	}
	return PositionAt(v.lines, x, y+dy), true
}

// LineBounds returns the first and last position of the row holding pos.
func (v *View) LineBounds(pos int) (int, int) {
	_, y, ok := Locate(v.lines, pos)
	if !ok {
		return pos, pos
	}
	return PositionAt(v.lines, 0, y), v.lines[y].End
}
