package core

import (
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
)

// Undo restores the most recent snapshot that differs from the current
// document. The resulting diff pass takes no snapshot of its own. It reports
// whether anything was restored.
func (e *Editor) Undo() bool {
	current := e.InnerHTML()
	for {
		snap, err := e.history.Pop()
		if err != nil {
			logger.WarnTagf("history", "no more history to undo")
			return false
		}
		if snap.Content == current {
			continue
		}
		if err := dom.SetInnerHTML(e.root, snap.Content); err != nil {
			logger.ErrorTagf("history", "restoring snapshot: %v", err)
			return false
		}
		e.UpdateRichNode()
		e.currentNode = nil
		e.domSelection = dom.Range{}

		sel := snap.Selection.Clamp(regionOf(e.tree.Len()))
		if sel.IsCaret() {
			err = e.SetCurrentPosition(sel.Start)
		} else {
			err = e.SetSelection(sel.Start, sel.End)
		}
		if err != nil {
			logger.WarnTagf("history", "restoring selection %s: %v", sel, err)
		}
		e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: "undo"})
		e.detector.Trigger(event.ExtraInfo{NoSnapshot: true, Source: "undo"})
		return true
	}
}
