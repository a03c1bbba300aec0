package app

import (
	"github.com/bethropolis/rawedit/internal/config"
	"github.com/bethropolis/rawedit/internal/core"
)

// drawEditor redraws the document and the status bar under the editor lock.
func (a *App) drawEditor() {
	a.editor.Run(func() {
		activeTheme := a.themeManager.Current()
		a.updateStatusBarContent()

		screen := a.tuiManager.GetScreen()
		width, height := a.tuiManager.Size()

		a.tuiManager.Clear()
		a.view.Draw(a.tuiManager, a.editor.RichRoot(), a.editor.Selection(), activeTheme, height-config.StatusBarHeight)
		a.statusBar.Draw(screen, width, height, activeTheme)
		a.tuiManager.Show()
	})
}

// updateStatusBarContent pushes the editor state to the status bar. The
// caller holds the editor lock.
func (a *App) updateStatusBarContent() {
	sel := a.editor.Selection()
	a.statusBar.SetFileInfo(a.filePath, a.isModified())
	a.statusBar.SetSelection(sel)
	if a.editor.PropertyEnabledAt(core.Bold, sel.Start) {
		a.statusBar.SetProperties("Bold")
	} else {
		a.statusBar.SetProperties()
	}
}
