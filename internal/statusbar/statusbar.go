// Package statusbar draws the bottom line of the terminal host: file, caret
// or selection, active properties, plugin fields and temporary messages.
package statusbar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/rawedit/internal/config"
	"github.com/bethropolis/rawedit/internal/theme"
	"github.com/bethropolis/rawedit/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{MessageTimeout: config.MessageTimeout}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	isModified bool
	selection  types.Region
	properties []string
	fields     map[string]string

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(cfg Config) *StatusBar {
	return &StatusBar{
		config: cfg,
		fields: make(map[string]string),
		now:    time.Now,
	}
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetSelection updates the caret or selection shown.
func (sb *StatusBar) SetSelection(r types.Region) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.selection = r
}

// SetProperties lists the editor properties active at the caret, e.g. "Bold".
func (sb *StatusBar) SetProperties(props ...string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.properties = append(sb.properties[:0], props...)
}

// SetField shows a named value, such as a plugin's word count. An empty
// value removes the field.
func (sb *StatusBar) SetField(name, value string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if value == "" {
		delete(sb.fields, name)
		return
	}
	sb.fields[name] = value
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// getDefaultDisplayText builds the status line. The caller holds the lock.
func (sb *StatusBar) getDefaultDisplayText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}

	var where string
	if sb.selection.IsCaret() {
		where = fmt.Sprintf("Pos: %d", sb.selection.Start)
	} else {
		where = fmt.Sprintf("Sel: %d-%d", sb.selection.Start, sb.selection.End)
	}

	parts := []string{fPath + modifiedIndicator, where}
	if len(sb.properties) > 0 {
		parts = append(parts, strings.Join(sb.properties, " "))
	}
	names := make([]string, 0, len(sb.fields))
	for name := range sb.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+": "+sb.fields[name])
	}
	return strings.Join(parts, " -- ")
}

// Text returns what Draw would show, expiring an old message first.
func (sb *StatusBar) Text() (text string, isMessage bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		return sb.tempMessage, true
	}
	return sb.getDefaultDisplayText(), false
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, isMessage := sb.Text()
	sb.mu.RLock()
	modified := sb.isModified
	sb.mu.RUnlock()

	style := activeTheme.GetStyle(theme.StyleStatusBar)
	switch {
	case isMessage:
		style = activeTheme.GetStyle(theme.StyleStatusBarMessage)
	case modified:
		style = activeTheme.GetStyle(theme.StyleStatusBarModified)
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
