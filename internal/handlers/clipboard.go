package handlers

import (
	"strings"

	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/core/clipboard"
	"github.com/bethropolis/rawedit/internal/input"
)

// CopyHandler puts the visible text of the selection on the clipboard.
type CopyHandler struct {
	Clipboard *clipboard.Manager
}

func (CopyHandler) Name() string { return "copy" }

func (h CopyHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return ev.Type == input.EventKeyDown && ev.IsCtrl('c') && h.Clipboard != nil
}

func (h CopyHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	if sel := ed.Selection(); !sel.IsCaret() {
		h.Clipboard.Copy(ed.TextInRegion(sel))
	}
	return handled, nil
}

// PasteHandler types the clipboard text at the caret. Line breaks become
// spaces.
type PasteHandler struct {
	Clipboard *clipboard.Manager
}

func (PasteHandler) Name() string { return "paste" }

func (h PasteHandler) Eligible(ed *core.Editor, ev input.Event) bool {
	return ev.Type == input.EventKeyDown && ev.IsCtrl('v') && h.Clipboard != nil
}

func (h PasteHandler) Apply(ed *core.Editor, ev input.Event) (Response, error) {
	text, ok := h.Clipboard.Paste()
	if !ok {
		return handled, nil
	}
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	return handled, insertText(ed, "paste", text)
}
