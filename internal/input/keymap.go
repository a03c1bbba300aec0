// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps named keys to host actions.
type Keymap map[Key]Action
type ModKeymap map[Mod]Keymap // For keys combined with modifiers
type CtrlKeymap map[rune]Action

// InputProcessor decides which keys the host handles itself. Everything it
// does not claim is forwarded to the editing pipeline as ActionEdit.
type InputProcessor struct {
	keymap     Keymap
	modKeymap  ModKeymap
	ctrlKeymap CtrlKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		modKeymap:  make(ModKeymap),
		ctrlKeymap: make(CtrlKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[KeyLeft] = ActionMoveLeft
	p.keymap[KeyRight] = ActionMoveRight
	p.keymap[KeyUp] = ActionMoveUp
	p.keymap[KeyDown] = ActionMoveDown
	p.keymap[KeyHome] = ActionMoveHome
	p.keymap[KeyEnd] = ActionMoveEnd
	p.keymap[KeyEscape] = ActionQuit

	shiftMap := make(Keymap)
	shiftMap[KeyLeft] = ActionSelectLeft
	shiftMap[KeyRight] = ActionSelectRight
	p.modKeymap[ModShift] = shiftMap

	p.ctrlKeymap['s'] = ActionSave
	p.ctrlKeymap['q'] = ActionForceQuit
}

// Process maps a normalized event to an action.
func (p *InputProcessor) Process(ev Event) ActionEvent {
	if ev.Key == KeyRune && ev.Has(ModCtrl) {
		if action, ok := p.ctrlKeymap[ev.Rune]; ok {
			return ActionEvent{Action: action, Event: ev}
		}
		return ActionEvent{Action: ActionEdit, Event: ev}
	}
	if modMap, ok := p.modKeymap[ev.Mod]; ok {
		if action, ok := modMap[ev.Key]; ok {
			return ActionEvent{Action: action, Event: ev}
		}
	}
	if ev.Mod == ModNone || ev.Mod == ModShift {
		if action, ok := p.keymap[ev.Key]; ok {
			return ActionEvent{Action: action, Event: ev}
		}
	}
	if ev.Key == KeyUnknown {
		return ActionEvent{Action: ActionUnknown, Event: ev}
	}
	return ActionEvent{Action: ActionEdit, Event: ev}
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	return p.Process(FromTcell(ev))
}
