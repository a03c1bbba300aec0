// Package plugintest provides an in-memory plugin.EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/plugin"
	"github.com/bethropolis/rawedit/internal/types"
)

var _ plugin.EditorAPI = (*API)(nil)

// API records what plugins do. Fields may be set before Initialize; use the
// methods once plugin goroutines run.
type API struct {
	mu sync.Mutex

	Events   *event.Manager
	Content  string
	Path     string
	Modified bool
	Config   map[string]map[string]interface{}

	Saves    int
	SaveErr  error
	Messages []string
	Fields   map[string]string
	// Saved receives a value after every successful save, when non-nil.
	Saved chan struct{}
}

// New returns an API over text with an empty event bus.
func New(text string) *API {
	return &API{
		Events:  event.NewManager(),
		Content: text,
		Config:  map[string]map[string]interface{}{},
		Fields:  map[string]string{},
	}
}

func (a *API) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Content
}

func (a *API) HTML() string { return a.Text() }

func (a *API) Selection() types.Region { return types.Region{} }

func (a *API) FilePath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Path
}

func (a *API) IsModified() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Modified
}

// SetModified flips the modified flag from a test.
func (a *API) SetModified(modified bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Modified = modified
}

func (a *API) InsertText(text string, pos int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := []rune(a.Content)
	if pos < 0 || pos > len(r) {
		return fmt.Errorf("position %d out of range", pos)
	}
	a.Content = string(r[:pos]) + text + string(r[pos:])
	a.Modified = true
	return nil
}

func (a *API) HighlightRange(start, end int) error { return nil }

func (a *API) SaveDocument() error {
	a.mu.Lock()
	if a.SaveErr != nil {
		a.mu.Unlock()
		return a.SaveErr
	}
	a.Saves++
	a.Modified = false
	saved := a.Saved
	a.mu.Unlock()
	if saved != nil {
		saved <- struct{}{}
	}
	return nil
}

// SaveCount returns the number of successful saves.
func (a *API) SaveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Saves
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.Events.Subscribe(eventType, handler)
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

func (a *API) SetStatusField(name, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Fields[name] = value
}

// Field returns a status field set by a plugin.
func (a *API) Field(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Fields[name]
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	table, ok := a.Config[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}
