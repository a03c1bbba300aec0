package changes

import (
	"sync"
	"testing"
	"time"

	"github.com/bethropolis/rawedit/internal/event"
)

type recorder struct {
	mu        sync.Mutex
	inserts   []event.TextInsertData
	removes   []event.TextRemoveData
	full      []event.FullContentUpdateData
	snapshots int
}

func newDetector(t *testing.T, text *string, interval time.Duration) (*Detector, *recorder) {
	t.Helper()
	rec := &recorder{}
	events := event.NewManager()
	events.Subscribe(event.TypeTextInsert, func(e event.Event) bool {
		rec.mu.Lock()
		rec.inserts = append(rec.inserts, e.Data.(event.TextInsertData))
		rec.mu.Unlock()
		return false
	})
	events.Subscribe(event.TypeTextRemove, func(e event.Event) bool {
		rec.mu.Lock()
		rec.removes = append(rec.removes, e.Data.(event.TextRemoveData))
		rec.mu.Unlock()
		return false
	})
	events.Subscribe(event.TypeFullContentUpdate, func(e event.Event) bool {
		rec.mu.Lock()
		rec.full = append(rec.full, e.Data.(event.FullContentUpdateData))
		rec.mu.Unlock()
		return false
	})
	d := New(Config{
		Interval:  interval,
		Linearize: func() string { return *text },
		Snapshot:  func() { rec.snapshots++ },
		Events:    events,
	})
	t.Cleanup(d.Stop)
	return d, rec
}

func TestRemoveSuffix(t *testing.T) {
	text := "hello world"
	d, rec := newDetector(t, &text, time.Hour)
	d.Trigger()
	d.Flush()
	rec.inserts, rec.removes, rec.full, rec.snapshots = nil, nil, nil, 0

	text = "hello"
	d.Trigger()
	if !d.Flush() {
		t.Fatal("Flush found nothing pending")
	}
	if len(rec.inserts) != 0 {
		t.Errorf("inserts = %+v", rec.inserts)
	}
	if len(rec.removes) != 1 || rec.removes[0].Start != 5 || rec.removes[0].End != 11 {
		t.Errorf("removes = %+v", rec.removes)
	}
	if d.Current() != "hello" {
		t.Errorf("Current = %q", d.Current())
	}
	if rec.snapshots != 1 || len(rec.full) != 1 {
		t.Errorf("snapshots = %d, full updates = %d", rec.snapshots, len(rec.full))
	}
}

func TestInsertOffsetsFollowShadowText(t *testing.T) {
	text := "abc"
	d, rec := newDetector(t, &text, time.Hour)
	d.Trigger()
	d.Flush()
	if len(rec.inserts) != 1 || rec.inserts[0].Position != 0 || rec.inserts[0].Text != "abc" {
		t.Fatalf("initial inserts = %+v", rec.inserts)
	}
	rec.inserts = nil

	text = "xa\u00e9bcy"
	d.Trigger()
	d.Flush()
	var got []event.TextInsertData
	got = append(got, rec.inserts...)
	want := []event.TextInsertData{{Position: 0, Text: "x"}, {Position: 2, Text: "\u00e9"}, {Position: 5, Text: "y"}}
	if len(got) != len(want) {
		t.Fatalf("inserts = %+v", got)
	}
	for i := range want {
		if got[i].Position != want[i].Position || got[i].Text != want[i].Text {
			t.Errorf("insert %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if d.Current() != text {
		t.Errorf("Current = %q", d.Current())
	}
}

func TestNoSnapshotAndLatestExtraWins(t *testing.T) {
	text := "a"
	d, rec := newDetector(t, &text, time.Hour)
	d.Trigger(event.ExtraInfo{Source: "first"})
	d.Trigger(event.ExtraInfo{Source: "undo", NoSnapshot: true})
	d.Flush()
	if rec.snapshots != 0 {
		t.Errorf("snapshot pushed despite NoSnapshot")
	}
	if len(rec.full) != 1 || rec.full[0].Extra[0].Source != "undo" {
		t.Errorf("full updates = %+v", rec.full)
	}
}

func TestUnchangedTextIsSilent(t *testing.T) {
	text := ""
	d, rec := newDetector(t, &text, time.Hour)
	d.Trigger()
	d.Flush()
	if len(rec.full) != 0 || rec.snapshots != 0 {
		t.Error("notifications for an unchanged text")
	}
	if d.Flush() {
		t.Error("second Flush found a pending pass")
	}
}

func TestDebounceCoalesces(t *testing.T) {
	text := "one"
	done := make(chan struct{}, 4)
	d, rec := newDetector(t, &text, 20*time.Millisecond)
	d.cfg.Runner = func(fn func()) {
		fn()
		done <- struct{}{}
	}
	for i := 0; i < 5; i++ {
		d.Trigger()
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("diff pass never ran")
	}
	time.Sleep(100 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.full) != 1 {
		t.Errorf("full updates = %d", len(rec.full))
	}
}
