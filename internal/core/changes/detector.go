// Package changes turns document mutations into text insert and remove
// notifications after a quiet period.
package changes

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
	diff "github.com/sergi/go-diff/diffmatchpatch"
)

// Config wires a Detector to its editor.
type Config struct {
	// Interval is the quiet period after the last Trigger.
	Interval time.Duration
	// Linearize returns the current text of the document.
	Linearize func() string
	// Snapshot pushes an undo snapshot of the current document.
	Snapshot func()
	Events   *event.Manager
	// Runner executes a diff pass started by the timer. The editor passes a
	// function that takes its lock so a pass never overlaps a mutation.
	Runner func(func())
}

// Detector is a restartable debounced diff task. At most one pass is pending.
type Detector struct {
	cfg Config
	dmp *diff.DiffMatchPatch

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	pending    bool
	extra      []event.ExtraInfo
	current    string
}

// New creates a detector whose shadow text starts empty.
func New(cfg Config) *Detector {
	if cfg.Runner == nil {
		cfg.Runner = func(fn func()) { fn() }
	}
	if cfg.Events == nil {
		cfg.Events = event.NewManager()
	}
	return &Detector{cfg: cfg, dmp: diff.New()}
}

// Trigger (re)starts the quiet period. The extra info of the latest call is
// the one delivered with the resulting notifications.
func (d *Detector) Trigger(extra ...event.ExtraInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.extra = extra
	d.generation++
	gen := d.generation
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.cfg.Interval, func() { d.fire(gen) })
}

func (d *Detector) fire(gen uint64) {
	d.cfg.Runner(func() {
		extra, ok := d.take(gen)
		if !ok {
			logger.DebugTagf("diff", "stale diff timer dropped")
			return
		}
		d.pass(extra)
	})
}

// take claims the pending pass if gen is still the latest trigger.
func (d *Detector) take(gen uint64) ([]event.ExtraInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending || gen != d.generation {
		return nil, false
	}
	d.pending = false
	d.timer = nil
	return d.extra, true
}

// Flush runs the pending pass now. It reports whether one was pending.
func (d *Detector) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
	d.generation++
	extra := d.extra
	d.mu.Unlock()

	d.pass(extra)
	return true
}

// Stop cancels a pending pass.
func (d *Detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
	d.generation++
}

// Pending reports whether a pass is scheduled.
func (d *Detector) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Current returns the shadow text as of the last pass.
func (d *Detector) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// pass diffs the shadow text against the document and notifies consumers.
func (d *Detector) pass(extra []event.ExtraInfo) {
	next := d.cfg.Linearize()
	d.mu.Lock()
	prev := d.current
	d.mu.Unlock()

	diffs := d.dmp.DiffMain(prev, next, false)
	pos := 0
	changed := false
	shadow := []rune(prev)
	for _, op := range diffs {
		n := utf8.RuneCountInString(op.Text)
		switch op.Type {
		case diff.DiffEqual:
			pos += n
		case diff.DiffInsert:
			shadow = append(shadow[:pos], append([]rune(op.Text), shadow[pos:]...)...)
			d.setCurrent(string(shadow))
			changed = true
			d.cfg.Events.Dispatch(event.TypeTextInsert, event.TextInsertData{Position: pos, Text: op.Text, Extra: extra})
			pos += n
		case diff.DiffDelete:
			shadow = append(shadow[:pos], shadow[pos+n:]...)
			d.setCurrent(string(shadow))
			changed = true
			d.cfg.Events.Dispatch(event.TypeTextRemove, event.TextRemoveData{Start: pos, End: pos + n, Extra: extra})
		}
	}
	if !changed {
		return
	}
	logger.DebugTagf("diff", "text changed in %d diff ops", len(diffs))
	if !event.SkipsSnapshot(extra) && d.cfg.Snapshot != nil {
		d.cfg.Snapshot()
	}
	d.cfg.Events.Dispatch(event.TypeFullContentUpdate, event.FullContentUpdateData{Extra: extra})
}

func (d *Detector) setCurrent(s string) {
	d.mu.Lock()
	d.current = s
	d.mu.Unlock()
}
