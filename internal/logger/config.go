package logger

import (
	"log/slog"
	"strings"
)

// Config holds the logger settings, loaded from the [logger] table.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFilePath is the output file. Empty or "-" means stderr.
	LogFilePath string

	// EnabledTags restricts output to records tagged with one of these (if non-empty).
	EnabledTags []string
	// DisabledTags drops records with these tags. Wins over EnabledTags.
	DisabledTags []string

	// EnabledPackages restricts output to these package directories, e.g. "core", "handlers".
	EnabledPackages  []string
	DisabledPackages []string

	// EnabledFiles restricts output to these base file names, e.g. "backspace.go".
	EnabledFiles  []string
	DisabledFiles []string

	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig returns the default logger settings.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to a slog level. Unknown names give info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// process converts the string settings into lookup sets.
func (c *Config) process() {
	c.level, _ = ParseLevel(c.LogLevel)
	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)
}

// sliceToSet lowercases items into a set; an empty result is nil.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
