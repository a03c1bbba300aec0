// Package config loads the TOML configuration file and applies flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/rawedit/internal/logger"
)

// Config holds the combined application configuration.
type Config struct {
	Logger  logger.Config                     `toml:"logger"`
	Editor  EditorConfig                      `toml:"editor"`
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds the engine settings.
type EditorConfig struct {
	// HistorySize caps the undo stack.
	HistorySize int `toml:"history_size"`
	// DiffDebounce is the quiet period before the change detector diffs the text.
	DiffDebounce    Duration `toml:"diff_debounce"`
	SystemClipboard bool     `toml:"system_clipboard"`
	TabWidth        int      `toml:"tab_width"`
	// Theme names a built-in theme or one from the themes directory.
	Theme string `toml:"theme"`
}

// Duration decodes TOML strings such as "320ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig returns a Config filled with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			HistorySize:     DefaultHistorySize,
			DiffDebounce:    Duration{DefaultDiffDebounce},
			SystemClipboard: SystemClipboard,
			TabWidth:        DefaultTabWidth,
			Theme:           DefaultTheme,
		},
		Plugins: map[string]map[string]interface{}{},
	}
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// the logger is not initialized yet; this only shows up in tests or late reloads
		logger.WarnTagf("config", "config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.HistorySize <= 0 {
		c.Editor.HistorySize = defaults.Editor.HistorySize
	}
	if c.Editor.DiffDebounce.Duration <= 0 {
		c.Editor.DiffDebounce = defaults.Editor.DiffDebounce
	}
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Plugins == nil {
		c.Plugins = defaults.Plugins
	}
}

// ThemesDir returns the directory user themes are loaded from.
func ThemesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultThemesDirName)
}

// DefaultConfigPath returns the config file location under the user config dir.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// load builds a config from defaults, the file at path and the flag overrides.
func load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}

	var err error
	if path != "" {
		err = loadFromFile(path, cfg)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the configuration once. Later calls return the first result.
func LoadConfig(path string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = load(path, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded configuration. It panics before LoadConfig.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// PluginValue returns a value from the [plugins.<name>] table.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}
