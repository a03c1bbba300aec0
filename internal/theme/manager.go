package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/rawedit/internal/logger"
)

// Manager holds the built-in and user themes and the active one.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme // keyed by lowercase name
	activeTheme *Theme
	themesDir   string
}

// NewManager loads the built-in themes and every *.toml file in themesDir.
// An empty or missing directory only leaves the built-ins.
func NewManager(themesDir string) *Manager {
	m := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	m.add(&PaperDark)
	m.add(&PaperLight)
	m.activeTheme = &PaperDark

	if themesDir != "" {
		if err := m.LoadThemesFromDir(); err != nil {
			logger.ErrorTagf("theme", "loading themes from '%s': %v", themesDir, err)
		}
	}
	return m
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.WarnTagf("theme", "theme '%s' replaces '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadThemesFromDir loads the theme files of the configured directory.
func (m *Manager) LoadThemesFromDir() error {
	files, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		logger.DebugTagf("theme", "theme directory '%s' does not exist", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(m.themesDir, file.Name())
		t, err := LoadFromFile(path)
		if err != nil {
			logger.WarnTagf("theme", "%v", err)
			continue
		}
		m.add(t)
		loaded++
	}
	logger.InfoTagf("theme", "loaded %d custom themes", loaded)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by case-insensitive name.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.activeTheme = t
	logger.InfoTagf("theme", "active theme set to: %s", t.Name)
	return nil
}

// ListThemes returns the loaded theme names, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	t, ok := m.themes[strings.ToLower(name)]
	return t, ok
}
