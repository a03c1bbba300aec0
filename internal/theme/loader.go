package theme

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// StyleDef is one [styles.<Name>] table of a theme file. Pointers keep unset
// attributes inherited from Default.
type StyleDef struct {
	Fg            *string `toml:"fg"`
	Bg            *string `toml:"bg"`
	Bold          *bool   `toml:"bold"`
	Italic        *bool   `toml:"italic"`
	Underline     *bool   `toml:"underline"`
	Reverse       *bool   `toml:"reverse"`
	StrikeThrough *bool   `toml:"strikethrough"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]StyleDef `toml:"styles"`
}

// LoadFromFile parses a TOML theme. Styles other than Default inherit from
// Default; a style that fails to parse is skipped.
func LoadFromFile(filePath string) (*Theme, error) {
	var file themeFile
	metadata, err := toml.DecodeFile(filePath, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.WarnTagf("theme", "theme file '%s': unrecognized keys: %v", filePath, undecoded)
	}

	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	t := &Theme{
		Name:   file.Name,
		IsDark: file.IsDark,
		Styles: make(map[string]tcell.Style, len(file.Styles)+1),
	}

	base := tcell.StyleDefault
	if def, ok := file.Styles[StyleDefault]; ok {
		if base, err = def.apply(tcell.StyleDefault); err != nil {
			return nil, fmt.Errorf("theme '%s': style 'Default': %w", t.Name, err)
		}
	}
	t.Styles[StyleDefault] = base

	for name, def := range file.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := def.apply(base)
		if err != nil {
			logger.WarnTagf("theme", "theme '%s': skipping style '%s': %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}

	logger.DebugTagf("theme", "loaded theme '%s' from '%s' (%d styles)", t.Name, filePath, len(t.Styles))
	return t, nil
}

func (d StyleDef) apply(style tcell.Style) (tcell.Style, error) {
	if d.Fg != nil {
		color, err := ParseColor(*d.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground: %w", err)
		}
		style = style.Foreground(color)
	}
	if d.Bg != nil {
		color, err := ParseColor(*d.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background: %w", err)
		}
		style = style.Background(color)
	}
	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	if d.StrikeThrough != nil {
		style = style.StrikeThrough(*d.StrikeThrough)
	}
	return style, nil
}

// ParseColor accepts #RRGGBB, the keywords "reset" and "default", and the
// color names tcell knows.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if color, ok := tcell.ColorNames[s]; ok {
		return color, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
}
