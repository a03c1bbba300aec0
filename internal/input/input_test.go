package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromTcell(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), Rune('a')},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), Ctrl('z')},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'U', tcell.ModCtrl), Ctrl('u')},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Press(KeyEnter)},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Press(KeyTab)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), Press(KeyTab, ModShift)},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Press(KeyBackspace)},
		{"shift arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), Press(KeyLeft, ModShift)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FromTcell(c.ev); got != c.want {
				t.Errorf("FromTcell = %v (%+v), want %v", got, got, c.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	p := NewInputProcessor()
	cases := []struct {
		ev   Event
		want Action
	}{
		{Press(KeyEscape), ActionQuit},
		{Ctrl('s'), ActionSave},
		{Ctrl('q'), ActionForceQuit},
		{Press(KeyLeft), ActionMoveLeft},
		{Press(KeyLeft, ModShift), ActionSelectLeft},
		{Press(KeyHome), ActionMoveHome},
		{Rune('x'), ActionEdit},
		{Ctrl('z'), ActionEdit},
		{Press(KeyEnter), ActionEdit},
		{Press(KeyTab, ModShift), ActionEdit},
		{Press(KeyUnknown), ActionUnknown},
	}
	for _, c := range cases {
		if got := p.Process(c.ev).Action; got != c.want {
			t.Errorf("Process(%v) = %d, want %d", c.ev, got, c.want)
		}
	}
}

func TestEventPredicates(t *testing.T) {
	if !Ctrl('V').IsCtrl('v') {
		t.Error("Ctrl('V') should match v")
	}
	if Rune('v').IsCtrl('v') {
		t.Error("a plain rune is not a ctrl chord")
	}
	if !Rune('\u00e9').IsPlainRune() || Ctrl('a').IsPlainRune() {
		t.Error("IsPlainRune mismatch")
	}
	if got := Press(KeyTab, ModShift).String(); got != "Shift+Tab" {
		t.Errorf("String = %q", got)
	}
}
