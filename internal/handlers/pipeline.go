package handlers

import (
	"fmt"

	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/core/clipboard"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/input"
	"github.com/bethropolis/rawedit/internal/logger"
)

// Verdict reports what the pipeline did with one event.
type Verdict struct {
	// Handled is set when undo or at least one eligible handler took the event.
	Handled bool
	// PreventDefault is set when a handler refused the host's default action.
	PreventDefault bool
	// Ran lists the handlers that completed, in order.
	Ran []string
}

// Pipeline feeds host events to the handler chain of one editor. It is not
// safe for concurrent use; hosts call it from inside Editor.Run.
type Pipeline struct {
	ed       *core.Editor
	handlers []Handler
	// captured is set when the last keydown was taken by the pipeline.
	captured bool
}

// NewPipeline creates the pipeline of ed. custom handlers run before the
// defaults. A nil clipboard is replaced by an in-memory one.
func NewPipeline(ed *core.Editor, clip *clipboard.Manager, custom ...Handler) *Pipeline {
	if clip == nil {
		clip = clipboard.NewManager(false)
	}
	handlers := append([]Handler{}, custom...)
	handlers = append(handlers, DefaultHandlers(clip)...)
	return &Pipeline{ed: ed, handlers: handlers}
}

// DefaultHandlers returns the built-in chain in priority order.
func DefaultHandlers(clip *clipboard.Manager) []Handler {
	return []Handler{
		MarkdownListHandler{},
		ListHandler{Tag: "ul"},
		ListHandler{Tag: "ol"},
		IndentHandler{},
		UnindentHandler{},
		EnterHandler{},
		BackspaceHandler{},
		TabHandler{},
		FlaggedRemoveInputHandler{},
		TextInputHandler{},
		CopyHandler{Clipboard: clip},
		PasteHandler{Clipboard: clip},
	}
}

// Handlers returns the chain in the order it runs.
func (p *Pipeline) Handlers() []Handler {
	return p.handlers
}

// KeyDown runs a keydown through the chain. Ctrl+Z undoes without consulting
// any handler. A key nobody accepts is announced as unhandled input.
func (p *Pipeline) KeyDown(ev input.Event) Verdict {
	ev.Type = input.EventKeyDown
	if ev.IsCtrl('z') {
		p.ed.Undo()
		p.captured = true
		return Verdict{Handled: true, PreventDefault: true, Ran: []string{"undo"}}
	}

	eligible := p.eligible(ev)
	p.ed.CreateSnapshot()
	if len(eligible) == 0 {
		p.captured = false
		logger.DebugTagf("pipeline", "no handler for %s", ev)
		p.ed.Events().Dispatch(event.TypeUnhandledInput, event.UnhandledInputData{Key: ev.String()})
		return Verdict{}
	}

	v := Verdict{Handled: true}
	for _, h := range eligible {
		resp, ok := p.apply(h, ev)
		if !ok {
			continue
		}
		v.Ran = append(v.Ran, h.Name())
		if !resp.AllowBrowserDefault {
			v.PreventDefault = true
		}
		if !resp.AllowPropagation {
			break
		}
	}
	p.ed.UpdateRichNode()
	p.ed.TriggerChanges()
	p.captured = true
	logger.DebugTagf("pipeline", "%s handled by %v", ev, v.Ran)
	return v
}

// KeyUp resynchronizes the editor when the matching keydown was left to the
// host.
func (p *Pipeline) KeyUp(ev input.Event) Verdict {
	return p.uncaptured("uncaptured keyup")
}

// CompositionEnd resynchronizes the editor after input composed by the host.
func (p *Pipeline) CompositionEnd(ev input.Event) Verdict {
	return p.uncaptured("uncaptured composition")
}

// MouseUp adopts the host's selection after a click or drag. A zero range
// keeps the current selection.
func (p *Pipeline) MouseUp(sel dom.Range) Verdict {
	p.ed.UpdateRichNode()
	if !sel.IsZero() {
		if err := p.ed.UpdateSelectionFromRange(sel); err != nil {
			logger.WarnTagf("pipeline", "could not adopt selection: %v", err)
		}
	}
	p.ed.TriggerChanges()
	return Verdict{Ran: []string{"selection"}}
}

func (p *Pipeline) uncaptured(description string) Verdict {
	defer func() { p.captured = false }()
	if p.captured {
		return Verdict{}
	}
	p.ed.ApplyExternalMutation(description, func() {})
	return Verdict{Ran: []string{"resync"}}
}

func (p *Pipeline) eligible(ev input.Event) []Handler {
	var out []Handler
	for _, h := range p.handlers {
		if p.isEligible(h, ev) {
			out = append(out, h)
		}
	}
	return out
}

func (p *Pipeline) isEligible(h Handler, ev input.Event) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorTagf("pipeline", "handler %s panicked while checking %s: %v", h.Name(), ev, r)
			ok = false
		}
	}()
	return h.Eligible(p.ed, ev)
}

// apply runs h and reports whether it completed. Errors and panics are logged
// and the handler counts as not eligible.
func (p *Pipeline) apply(h Handler, ev input.Event) (resp Response, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorTagf("pipeline", "handler %s panicked on %s: %v", h.Name(), ev, r)
			resp, ok = Response{}, false
		}
	}()
	resp, err := h.Apply(p.ed, ev)
	if err != nil {
		logger.ErrorTagf("pipeline", "%v", fmt.Errorf("handler %s on %s: %w", h.Name(), ev, err))
		return Response{}, false
	}
	return resp, true
}
