package input

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// EventType distinguishes the host notifications the pipeline reacts to.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventCompositionEnd
	EventMouseUp
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventCompositionEnd:
		return "compositionend"
	case EventMouseUp:
		return "mouseup"
	}
	return "unknown"
}

// Key names a non-character key. Printable input uses KeyRune.
type Key int

const (
	KeyUnknown Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeyDelete
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyUnknown:   "Unknown",
	KeyRune:      "Rune",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyDelete:    "Delete",
	KeyEscape:    "Escape",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Mod is a bit set of held modifiers.
type Mod int

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModNone Mod = 0
)

// Event is a normalized input event. For KeyRune, Rune holds the character;
// with Ctrl held it is lower-cased.
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Mod  Mod
}

// Has reports whether all of m are held.
func (e Event) Has(m Mod) bool {
	return e.Mod&m == m
}

// IsCtrl reports whether the event is Ctrl plus the letter r.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Has(ModCtrl) && e.Rune == unicode.ToLower(r)
}

// IsPlainRune reports whether the event types a character.
func (e Event) IsPlainRune() bool {
	return e.Key == KeyRune && e.Mod&(ModCtrl|ModAlt) == 0 && e.Rune != 0
}

func (e Event) String() string {
	s := ""
	if e.Has(ModCtrl) {
		s += "Ctrl+"
	}
	if e.Has(ModAlt) {
		s += "Alt+"
	}
	if e.Has(ModShift) {
		s += "Shift+"
	}
	if e.Key == KeyRune {
		return s + string(e.Rune)
	}
	return s + e.Key.String()
}

// Rune builds a keydown typing r.
func Rune(r rune) Event {
	return Event{Type: EventKeyDown, Key: KeyRune, Rune: r}
}

// Press builds a keydown of a named key.
func Press(k Key, mods ...Mod) Event {
	e := Event{Type: EventKeyDown, Key: k}
	for _, m := range mods {
		e.Mod |= m
	}
	return e
}

// Ctrl builds a keydown of Ctrl plus r.
func Ctrl(r rune) Event {
	return Event{Type: EventKeyDown, Key: KeyRune, Rune: unicode.ToLower(r), Mod: ModCtrl}
}

var namedKeys = map[tcell.Key]Key{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyTab,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
}

// FromTcell normalizes a terminal key event into a keydown.
func FromTcell(ev *tcell.EventKey) Event {
	out := Event{Type: EventKeyDown, Mod: fromTcellMod(ev.Modifiers())}
	key := ev.Key()

	// Tab, Enter and Backspace share codes with Ctrl+I, Ctrl+M and Ctrl+H, so
	// named keys win.
	if k, ok := namedKeys[key]; ok {
		out.Key = k
		if key == tcell.KeyBacktab {
			out.Mod |= ModShift
		}
		if k == KeyTab || k == KeyEnter || k == KeyBackspace {
			out.Mod &^= ModCtrl
		}
		return out
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		out.Key = KeyRune
		out.Rune = 'a' + rune(key-tcell.KeyCtrlA)
		out.Mod |= ModCtrl
		return out
	}
	if key == tcell.KeyRune {
		out.Key = KeyRune
		out.Rune = ev.Rune()
		if out.Has(ModCtrl) {
			out.Rune = unicode.ToLower(out.Rune)
		}
		return out
	}
	out.Key = KeyUnknown
	return out
}

func fromTcellMod(m tcell.ModMask) Mod {
	var out Mod
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	return out
}
