package app

import (
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/plugin"
	"github.com/bethropolis/rawedit/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI exposes the running host to plugins. Only SaveDocument and
// IsModified take the editor lock; everything else expects to be called from
// an event handler, which already holds it.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document Access ---

func (api *appEditorAPI) Text() string {
	return api.app.editor.Text()
}

func (api *appEditorAPI) HTML() string {
	return api.app.editor.InnerHTML()
}

func (api *appEditorAPI) Selection() types.Region {
	return api.app.editor.Selection()
}

func (api *appEditorAPI) FilePath() string {
	return api.app.filePath
}

func (api *appEditorAPI) IsModified() bool {
	var modified bool
	api.app.editor.Run(func() { modified = api.app.isModified() })
	return modified
}

// --- Document Modification ---

func (api *appEditorAPI) InsertText(text string, pos int) error {
	var err error
	api.app.editor.ApplyExternalMutation("plugin insert", func() {
		_, err = api.app.editor.InsertText(text, pos)
	})
	if err == nil {
		api.app.requestRedraw()
	}
	return err
}

func (api *appEditorAPI) HighlightRange(start, end int) error {
	if err := api.app.editor.HighlightRange(start, end, nil); err != nil {
		return err
	}
	api.app.requestRedraw()
	return nil
}

func (api *appEditorAPI) SaveDocument() error {
	var err error
	api.app.editor.Run(func() { err = api.app.saveDocument() })
	return err
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appEditorAPI) SetStatusField(name, value string) {
	api.app.statusBar.SetField(name, value)
	api.app.requestRedraw()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := api.app.cfg.PluginValue(pluginName, key)
	if !ok {
		logger.DebugTagf("plugin", "no config value %s.%s", pluginName, key)
	}
	return v, ok
}
