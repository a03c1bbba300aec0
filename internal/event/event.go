// Package event carries engine notifications to the host and its plugins.
package event

import "github.com/bethropolis/rawedit/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Engine notifications
	TypeRawEditorInit     // the engine attached to a document
	TypeElementUpdate     // the document structure was mutated
	TypeSelectionUpdate   // the selection moved
	TypeTextInsert        // the change detector saw inserted text
	TypeTextRemove        // the change detector saw removed text
	TypeFullContentUpdate // a diff pass that changed text finished
	TypeUnhandledInput    // a keydown no handler accepted

	// Host lifecycle
	TypeAppReady
	TypeAppQuit
	TypeDocumentSaved
)

var typeNames = map[Type]string{
	TypeUnknown:           "unknown",
	TypeRawEditorInit:     "rawEditorInit",
	TypeElementUpdate:     "elementUpdate",
	TypeSelectionUpdate:   "selectionUpdate",
	TypeTextInsert:        "textInsert",
	TypeTextRemove:        "textRemove",
	TypeFullContentUpdate: "handleFullContentUpdate",
	TypeUnhandledInput:    "unhandledInput",
	TypeAppReady:          "appReady",
	TypeAppQuit:           "appQuit",
	TypeDocumentSaved:     "documentSaved",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// ExtraInfo travels with a mutation into the change notifications it causes.
type ExtraInfo struct {
	// NoSnapshot keeps the diff pass from pushing an undo snapshot.
	NoSnapshot bool
	// Source names the operation that caused the change.
	Source string
}

// SkipsSnapshot reports whether any entry suppresses snapshotting.
func SkipsSnapshot(extra []ExtraInfo) bool {
	for _, e := range extra {
		if e.NoSnapshot {
			return true
		}
	}
	return false
}

// RawEditorInitData carries the attached engine.
type RawEditorInitData struct {
	Editor interface{}
}

// ElementUpdateData describes a structural mutation.
type ElementUpdateData struct {
	Description string
}

// SelectionUpdateData carries the new selection.
type SelectionUpdateData struct {
	Region types.Region
}

// TextInsertData reports text inserted at Position.
type TextInsertData struct {
	Position int
	Text     string
	Extra    []ExtraInfo
}

// TextRemoveData reports text removed from [Start, End).
type TextRemoveData struct {
	Start int
	End   int
	Extra []ExtraInfo
}

// FullContentUpdateData closes a diff pass.
type FullContentUpdateData struct {
	Extra []ExtraInfo
}

// UnhandledInputData describes a keydown no handler accepted.
type UnhandledInputData struct {
	Key string
}

// DocumentSavedData carries the path written by the host.
type DocumentSavedData struct {
	FilePath string
}
