package config

import "time"

const (
	AppName               = "rawedit"
	DefaultConfigFileName = "config.toml"
	DefaultLogFileName    = "rawedit.log"
	DefaultThemesDirName  = "themes"
)

// Editor defaults.
const (
	DefaultHistorySize  = 100
	DefaultDiffDebounce = 320 * time.Millisecond
	DefaultTabWidth     = 4
	SystemClipboard     = false
	DefaultTheme        = "Paper Dark"
)

// Terminal host.
const (
	StatusBarHeight = 1
	MessageTimeout  = 4 * time.Second
)
