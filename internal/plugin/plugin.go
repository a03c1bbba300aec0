// Package plugin defines the surface host plugins use and manages their
// lifecycle.
package plugin

import (
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/types"
)

// EditorAPI is what plugins may do with the running host.
//
// Event handlers run while the document is locked and may use every method
// except SaveDocument and IsModified, which take the lock themselves and are
// meant for plugin goroutines.
type EditorAPI interface {
	// --- Document Access ---
	Text() string
	HTML() string
	Selection() types.Region
	FilePath() string
	IsModified() bool

	// --- Document Modification ---
	InsertText(text string, pos int) error
	HighlightRange(start, end int) error
	SaveDocument() error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})
	SetStatusField(name, value string)

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and start their goroutines here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the host is closing.
	Shutdown() error
}
