// Package handlers runs keystrokes through an ordered chain of editing
// handlers. A handler decides from the event and the editor state whether it
// applies, performs its edit through the editor's mutation wrapper and tells
// the pipeline whether later handlers may still run.
package handlers

import (
	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/input"
)

// Response is a handler's verdict on the rest of the chain.
type Response struct {
	// AllowPropagation lets the next eligible handler run.
	AllowPropagation bool
	// AllowBrowserDefault lets the host perform its own action for the key.
	AllowBrowserDefault bool
}

// Handler is one editing strategy. Handlers keep no document state between
// events.
type Handler interface {
	Name() string
	Eligible(ed *core.Editor, ev input.Event) bool
	Apply(ed *core.Editor, ev input.Event) (Response, error)
}

// handled stops the chain and suppresses the default action.
var handled = Response{}
