// Package theme maps the style names used by the terminal renderer to tcell
// styles.
package theme

import (
	"strings"

	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names the renderer and the status bar look up.
const (
	StyleDefault           = "Default"
	StyleSelection         = "Selection"
	StyleHighlight         = "Highlight"
	StyleBold              = "Bold"
	StyleItalic            = "Italic"
	StyleUnderline         = "Underline"
	StyleHeading           = "Heading"
	StyleLink              = "Link"
	StyleCode              = "Code"
	StyleBullet            = "Bullet"
	StyleComponent         = "Component"
	StyleAnnotated         = "Annotated"
	StyleFlagged           = "Flagged"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, then the part before the first dot, then Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "theme '%s': style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.WarnTagf("theme", "theme '%s': style '%s' and 'Default' not found, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// PaperDark is the built-in dark theme.
var PaperDark Theme

// PaperLight is the built-in light theme.
var PaperLight Theme

func init() {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)
	red := tcell.NewHexColor(0xe06c75)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	PaperDark = Theme{
		Name:   "Paper Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:   base,
			StyleSelection: base.Reverse(true),
			StyleHighlight: tcell.StyleDefault.Background(yellow).Foreground(tcell.ColorBlack),
			StyleBold:      base.Bold(true),
			StyleItalic:    base.Italic(true),
			StyleUnderline: base.Underline(true),
			StyleHeading:   base.Foreground(blue).Bold(true),
			StyleLink:      base.Foreground(cyan).Underline(true),
			StyleCode:      base.Foreground(green),
			StyleBullet:    base.Foreground(muted),
			StyleComponent: base.Foreground(magenta).Italic(true),
			StyleAnnotated: base.Foreground(yellow),
			StyleFlagged:   base.Foreground(red).StrikeThrough(true),

			StyleStatusBar:         tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bg).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
		},
	}

	ink := tcell.NewHexColor(0x383a42)
	paper := tcell.NewHexColor(0xe5e5e6)
	lightBase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(ink)
	PaperLight = Theme{
		Name: "Paper Light",
		Styles: map[string]tcell.Style{
			StyleDefault:   lightBase,
			StyleSelection: lightBase.Reverse(true),
			StyleHighlight: tcell.StyleDefault.Background(tcell.NewHexColor(0xf4d03f)).Foreground(tcell.ColorBlack),
			StyleBold:      lightBase.Bold(true),
			StyleItalic:    lightBase.Italic(true),
			StyleUnderline: lightBase.Underline(true),
			StyleHeading:   lightBase.Foreground(tcell.NewHexColor(0x4078f2)).Bold(true),
			StyleLink:      lightBase.Foreground(tcell.NewHexColor(0x0184bc)).Underline(true),
			StyleCode:      lightBase.Foreground(tcell.NewHexColor(0x50a14f)),
			StyleBullet:    lightBase.Foreground(tcell.NewHexColor(0xa0a1a7)),
			StyleComponent: lightBase.Foreground(tcell.NewHexColor(0xa626a4)).Italic(true),
			StyleAnnotated: lightBase.Foreground(tcell.NewHexColor(0xc18401)),
			StyleFlagged:   lightBase.Foreground(tcell.NewHexColor(0xe45649)).StrikeThrough(true),

			StyleStatusBar:         tcell.StyleDefault.Background(paper).Foreground(ink),
			StyleStatusBarModified: tcell.StyleDefault.Background(paper).Foreground(tcell.NewHexColor(0xc18401)),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(paper).Foreground(ink).Bold(true),
		},
	}
}
