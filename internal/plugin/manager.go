package plugin

import (
	"fmt"
	"sync"

	"github.com/bethropolis/rawedit/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin. Plugins initialize in registration order.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = p
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "registered plugin '%s'", name)
	return nil
}

func (m *Manager) ordered() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.plugins[name])
	}
	return out
}

// InitializePlugins calls Initialize on every plugin. A failing plugin is
// logged and the rest still initialize.
func (m *Manager) InitializePlugins(api EditorAPI) {
	plugins := m.ordered()
	logger.InfoTagf("plugin", "initializing %d plugins", len(plugins))
	for _, p := range plugins {
		if err := p.Initialize(api); err != nil {
			logger.ErrorTagf("plugin", "initializing plugin '%s': %v", p.Name(), err)
			continue
		}
		logger.DebugTagf("plugin", "initialized plugin '%s'", p.Name())
	}
}

// ShutdownPlugins calls Shutdown on all plugins in reverse order.
func (m *Manager) ShutdownPlugins() {
	plugins := m.ordered()
	for i := len(plugins) - 1; i >= 0; i-- {
		if err := plugins[i].Shutdown(); err != nil {
			logger.ErrorTagf("plugin", "shutting down plugin '%s': %v", plugins[i].Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
