package app

import (
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/input"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// handleKey runs the action bound to ev under the editor lock and reports
// whether the screen needs a redraw.
func (a *App) handleKey(ev input.Event) bool {
	action := a.inputProcessor.Process(ev)
	redraw := true
	a.editor.Run(func() {
		sel := a.editor.Selection()
		switch action.Action {
		case input.ActionQuit:
			a.requestQuit(false)
		case input.ActionForceQuit:
			a.requestQuit(true)
		case input.ActionSave:
			_ = a.saveDocument()
		case input.ActionMoveLeft:
			if sel.IsCaret() {
				a.moveCaret(sel.Start - 1)
			} else {
				a.moveCaret(sel.Start)
			}
		case input.ActionMoveRight:
			if sel.IsCaret() {
				a.moveCaret(sel.End + 1)
			} else {
				a.moveCaret(sel.End)
			}
		case input.ActionMoveUp:
			if pos, ok := a.view.Vertical(sel.End, -1); ok {
				a.moveCaret(pos)
			}
		case input.ActionMoveDown:
			if pos, ok := a.view.Vertical(sel.End, 1); ok {
				a.moveCaret(pos)
			}
		case input.ActionMoveHome:
			start, _ := a.view.LineBounds(sel.End)
			a.moveCaret(start)
		case input.ActionMoveEnd:
			_, end := a.view.LineBounds(sel.End)
			a.moveCaret(end)
		case input.ActionSelectLeft:
			a.extendSelection(-1)
		case input.ActionSelectRight:
			a.extendSelection(1)
		case input.ActionEdit:
			a.edit(action.Event)
		default:
			redraw = false
		}
	})
	return redraw
}

// moveCaret collapses the selection at pos, clamped to the document.
func (a *App) moveCaret(pos int) {
	pos = max(0, min(pos, a.editor.Len()))
	if err := a.editor.SetCurrentPosition(pos); err != nil {
		logger.WarnTagf("input", "cannot place caret at %d: %v", pos, err)
		return
	}
	a.selAnchor = pos
}

// extendSelection moves the free end of the selection by delta.
func (a *App) extendSelection(delta int) {
	sel := a.editor.Selection()
	head := sel.End
	switch {
	case sel.IsCaret():
		a.selAnchor = sel.Start
	case sel.End == a.selAnchor:
		head = sel.Start
	}
	head = max(0, min(head+delta, a.editor.Len()))
	start, end := min(a.selAnchor, head), max(a.selAnchor, head)
	if err := a.editor.SetSelection(start, end); err != nil {
		logger.WarnTagf("input", "cannot select %d-%d: %v", start, end, err)
	}
}

// edit feeds a key through the handler pipeline as a press and a release.
func (a *App) edit(ev input.Event) {
	verdict := a.pipeline.KeyDown(ev)
	up := ev
	up.Type = input.EventKeyUp
	a.pipeline.KeyUp(up)
	if !verdict.Handled {
		logger.DebugTagf("input", "no handler for %s", ev)
	}
	a.selAnchor = a.editor.Selection().Start
}

// handleMouse places the caret where the primary button is released.
func (a *App) handleMouse(e *tcell.EventMouse) bool {
	pressed := e.Buttons()&tcell.Button1 != 0
	wasPressed := a.mouseDown
	a.mouseDown = pressed
	if pressed || !wasPressed {
		return false
	}
	x, y := e.Position()
	var moved bool
	a.editor.Run(func() { moved = a.clickAt(x, y) })
	return moved
}

// clickAt resolves a screen cell of the last draw to a caret and reports it
// to the pipeline as a mouse release. The caller holds the editor lock.
func (a *App) clickAt(x, y int) bool {
	pos := a.view.PositionAt(x, y)
	rn, err := a.editor.FindSuitableNodeForPosition(pos)
	if err != nil {
		logger.WarnTagf("input", "no caret position at %d: %v", pos, err)
		return false
	}
	a.pipeline.MouseUp(dom.CaretAt(rn.DOMNode, pos-rn.Start))
	a.selAnchor = a.editor.Selection().Start
	return true
}
