// Package clipboard stores copied text, in memory or on the system clipboard.
package clipboard

import (
	"sync"

	sysclip "github.com/atotto/clipboard"
	"github.com/bethropolis/rawedit/internal/logger"
)

// Manager holds the copy buffer. With the system clipboard enabled, copies
// go there too and pastes read from it, falling back to memory on failure.
type Manager struct {
	useSystem bool

	mu       sync.Mutex
	internal string
}

// NewManager creates a clipboard.
func NewManager(useSystem bool) *Manager {
	if useSystem && sysclip.Unsupported {
		logger.WarnTagf("clipboard", "system clipboard unsupported, using internal clipboard")
		useSystem = false
	}
	return &Manager{useSystem: useSystem}
}

// Copy stores text.
func (m *Manager) Copy(text string) {
	m.mu.Lock()
	m.internal = text
	m.mu.Unlock()

	if m.useSystem {
		if err := sysclip.WriteAll(text); err != nil {
			logger.WarnTagf("clipboard", "system clipboard write failed: %v", err)
		}
	}
	logger.DebugTagf("clipboard", "copied %d bytes", len(text))
}

// Paste returns the stored text and whether there was any.
func (m *Manager) Paste() (string, bool) {
	if m.useSystem {
		text, err := sysclip.ReadAll()
		if err == nil {
			return text, text != ""
		}
		logger.WarnTagf("clipboard", "system clipboard read failed: %v", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.internal, m.internal != ""
}
