package app

import (
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
)

func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeSelectionUpdate, a.handleSelectionUpdate)
	a.eventManager.Subscribe(event.TypeElementUpdate, a.handleDocumentChanged)
	a.eventManager.Subscribe(event.TypeFullContentUpdate, a.handleDocumentChanged)
	a.eventManager.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
	a.eventManager.Subscribe(event.TypeUnhandledInput, a.handleUnhandledInput)
}

// handleSelectionUpdate shows the new caret or selection.
func (a *App) handleSelectionUpdate(e event.Event) bool {
	if data, ok := e.Data.(event.SelectionUpdateData); ok {
		a.statusBar.SetSelection(data.Region)
	}
	return false
}

// handleDocumentChanged redraws after the change detector or a structural
// mutation touched the document.
func (a *App) handleDocumentChanged(e event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handleDocumentSaved(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentSavedData); ok {
		a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleUnhandledInput(e event.Event) bool {
	if data, ok := e.Data.(event.UnhandledInputData); ok {
		logger.DebugTagf("input", "unhandled input: %s", data.Key)
	}
	return false
}
