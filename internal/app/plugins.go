package app

import (
	"fmt"

	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/plugin"
	"github.com/bethropolis/rawedit/plugins/autosave"
	"github.com/bethropolis/rawedit/plugins/wordcount"
)

// registerPlugins registers the built-in plugins. Adding a plugin means
// adding its constructor here.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	pluginConstructors := []func() plugin.Plugin{
		wordcount.New,
		autosave.New,
	}

	var firstErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrapped := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrapped)
			if firstErr == nil {
				firstErr = wrapped
			}
		}
	}
	return firstErr
}
