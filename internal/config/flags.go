package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/rawedit/internal/logger"
)

// Flags holds command line values. Pointers keep unset flags distinguishable.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	HistorySize     *int
	Debounce        *time.Duration
	SystemClipboard *bool
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
}

// NewFlags defines all flags on set. A nil set uses flag.CommandLine.
func NewFlags(set *flag.FlagSet) *Flags {
	if set == nil {
		set = flag.CommandLine
	}
	f := &Flags{set: set}
	f.ConfigFilePath = set.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = set.Bool("version", false, "Show version information and exit")
	f.LogLevel = set.String("loglevel", "", "Log level (debug, info, warn, error)")
	f.LogFilePath = set.String("logfile", "", "Log file path ('-' for stderr)")
	f.HistorySize = set.Int("history", 0, "Number of undo snapshots to keep")
	f.Debounce = set.Duration("debounce", 0, "Quiet period before text changes are diffed")
	f.SystemClipboard = set.Bool("system-clipboard", false, "Use the system clipboard for copy and paste")
	f.EnableTags = set.String("log-tags", "", "Comma-separated log tags to enable")
	f.DisableTags = set.String("log-disable-tags", "", "Comma-separated log tags to disable")
	f.EnablePkgs = set.String("log-packages", "", "Comma-separated packages to enable")
	f.DisablePkgs = set.String("log-disable-packages", "", "Comma-separated packages to disable")
	f.EnableFiles = set.String("log-files", "", "Comma-separated files to enable")
	f.DisableFiles = set.String("log-disable-files", "", "Comma-separated files to disable")
	return f
}

// Parse parses args and returns the remaining positional arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f.set.Args(), nil
}

// ApplyOverrides copies the flags that were explicitly set into cfg.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.set.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "history":
			if *f.HistorySize > 0 {
				cfg.Editor.HistorySize = *f.HistorySize
			}
		case "debounce":
			if *f.Debounce > 0 {
				cfg.Editor.DiffDebounce = Duration{*f.Debounce}
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
