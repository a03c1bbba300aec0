// internal/core/editor.go
package core

import (
	"sync"
	"time"

	"github.com/bethropolis/rawedit/internal/annotation"
	"github.com/bethropolis/rawedit/internal/config"
	"github.com/bethropolis/rawedit/internal/core/changes"
	"github.com/bethropolis/rawedit/internal/core/history"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/types"
	"golang.org/x/net/html"
)

// Options configures a new Editor. Zero values fall back to the defaults in
// the config package.
type Options struct {
	HistorySize  int
	DiffDebounce time.Duration
	Events       *event.Manager
	Scanner      annotation.Scanner
}

// Editor is one editing session over an editable root element.
type Editor struct {
	mu sync.Mutex

	root        *html.Node
	tree        *richnode.Tree
	currentNode *html.Node
	selection   types.Region
	// domSelection mirrors the host's native selection.
	domSelection dom.Range
	caretMoves   int

	history  *history.Manager
	events   *event.Manager
	detector *changes.Detector
	scanner  annotation.Scanner
}

// NewEditor creates an editor over root and builds its first position tree.
// Change detection starts with Attach.
func NewEditor(root *html.Node, opts Options) *Editor {
	if opts.HistorySize <= 0 {
		opts.HistorySize = config.DefaultHistorySize
	}
	if opts.DiffDebounce <= 0 {
		opts.DiffDebounce = config.DefaultDiffDebounce
	}
	if opts.Events == nil {
		opts.Events = event.NewManager()
	}
	if opts.Scanner == nil {
		opts.Scanner = annotation.NewRDFaScanner()
	}

	e := &Editor{
		root:    root,
		history: history.NewManager(opts.HistorySize),
		events:  opts.Events,
		scanner: opts.Scanner,
	}
	e.detector = changes.New(changes.Config{
		Interval:  opts.DiffDebounce,
		Linearize: e.liveText,
		Snapshot:  e.CreateSnapshot,
		Events:    e.events,
		Runner:    e.Run,
	})
	e.UpdateRichNode()
	return e
}

// NewEditorFromHTML parses markup into a fresh root and wraps it.
func NewEditorFromHTML(markup string, opts Options) (*Editor, error) {
	root, err := dom.NewRoot(markup)
	if err != nil {
		return nil, err
	}
	return NewEditor(root, opts), nil
}

// Attach announces the editor to consumers and schedules the first diff pass,
// which reports the initial content as one insertion.
func (e *Editor) Attach() {
	e.UpdateRichNode()
	e.events.Dispatch(event.TypeRawEditorInit, event.RawEditorInitData{Editor: e})
	e.events.Dispatch(event.TypeElementUpdate, event.ElementUpdateData{Description: "attach"})
	e.detector.Trigger(event.ExtraInfo{Source: "attach"})
	logger.DebugTagf("editor", "attached, %d positions", e.tree.Len())
}

// Detach cancels any pending diff pass.
func (e *Editor) Detach() {
	e.detector.Stop()
}

// Run executes fn while holding the editor lock. Every entry point that
// touches the document from another goroutine goes through Run.
func (e *Editor) Run(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// FlushChanges runs a pending diff pass immediately and reports whether one
// was pending.
func (e *Editor) FlushChanges() bool {
	var flushed bool
	e.Run(func() { flushed = e.detector.Flush() })
	return flushed
}

// UpdateRichNode rebuilds the position tree from the document.
func (e *Editor) UpdateRichNode() {
	e.tree = richnode.Build(e.root)
}

// TriggerChanges schedules a diff pass. Callers that mutate the document
// outside ApplyExternalMutation use it after their edit.
func (e *Editor) TriggerChanges(extra ...event.ExtraInfo) {
	e.detector.Trigger(extra...)
}

// CreateSnapshot pushes the current markup and selection onto the undo history.
func (e *Editor) CreateSnapshot() {
	e.history.Push(history.Snapshot{Content: e.InnerHTML(), Selection: e.selection})
}

func regionOf(length int) types.Region {
	return types.Region{Start: 0, End: length}
}

func (e *Editor) liveText() string {
	return richnode.Build(e.root).Text()
}

// Root returns the editable root element.
func (e *Editor) Root() *html.Node {
	return e.root
}

// Tree returns the current position tree. It is replaced on every rebuild.
func (e *Editor) Tree() *richnode.Tree {
	return e.tree
}

// RichRoot returns the root of the current position tree.
func (e *Editor) RichRoot() *richnode.Node {
	return e.tree.Root
}

// Events returns the event bus the editor dispatches on.
func (e *Editor) Events() *event.Manager {
	return e.events
}

// History returns the undo history.
func (e *Editor) History() *history.Manager {
	return e.history
}

// Detector returns the change detector watching the root.
func (e *Editor) Detector() *changes.Detector {
	return e.detector
}

// Scanner returns the annotation scanner used for node context.
func (e *Editor) Scanner() annotation.Scanner {
	return e.scanner
}

// Selection returns the selection in absolute positions.
func (e *Editor) Selection() types.Region {
	return e.selection
}

// DOMSelection returns the selection as document node and offset pairs.
func (e *Editor) DOMSelection() dom.Range {
	return e.domSelection
}

// CurrentNode returns the text node holding the caret, if any.
func (e *Editor) CurrentNode() *html.Node {
	return e.currentNode
}

// InnerHTML serializes the content of the root.
func (e *Editor) InnerHTML() string {
	return dom.InnerHTML(e.root)
}

// Text returns the linear text of the document.
func (e *Editor) Text() string {
	return e.tree.Text()
}

// Len returns the number of positions in the document.
func (e *Editor) Len() int {
	return e.tree.Len()
}

// Lookup returns the position node of n. A miss is logged and returns nil.
func (e *Editor) Lookup(n *html.Node) *richnode.Node {
	return e.tree.Lookup(n)
}

// CurrentRichNode returns the position node of the caret's text node, or nil
// when the selection is not a caret inside a known text node.
func (e *Editor) CurrentRichNode() *richnode.Node {
	if e.currentNode == nil || !e.tree.Has(e.currentNode) {
		return nil
	}
	return e.tree.Lookup(e.currentNode)
}

// TextInRegion returns the visible text of r, without zero-width markers.
func (e *Editor) TextInRegion(r types.Region) string {
	r = r.Normalize().Clamp(regionOf(e.tree.Len()))
	runes := []rune(e.tree.Text())
	return dom.VisibleText(string(runes[r.Start:r.End]))
}
