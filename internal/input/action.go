// internal/input/action.go
package input

// Action is what the host does with a key before, or instead of, handing it
// to the editing pipeline.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Caret Movement ---
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveHome
	ActionMoveEnd
	ActionSelectLeft  // Shift+Left
	ActionSelectRight // Shift+Right

	// ActionEdit forwards the key to the editing pipeline.
	ActionEdit
)

// ActionEvent is a decoded key: the host action plus the normalized event
// the pipeline receives for ActionEdit.
type ActionEvent struct {
	Action Action
	Event  Event
}
