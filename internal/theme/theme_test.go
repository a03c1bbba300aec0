package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyleFallbacks(t *testing.T) {
	bold := tcell.StyleDefault.Bold(true)
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{
		StyleDefault: tcell.StyleDefault,
		"Heading":    bold,
	}}

	tests := []struct {
		name string
		want tcell.Style
	}{
		{"Heading", bold},
		{"Heading.h1", bold},
		{"Missing", tcell.StyleDefault},
	}
	for _, tt := range tests {
		if got := th.GetStyle(tt.name); got != tt.want {
			t.Errorf("GetStyle(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#ff0000", tcell.NewHexColor(0xff0000), false},
		{" Reset ", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"red", tcell.ColorRed, false},
		{"#fff", tcell.ColorDefault, true},
		{"#zzzzzz", tcell.ColorDefault, true},
		{"octarine", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

const sepia = `
name = "Sepia"

[styles.Default]
fg = "#5b4636"
bg = "#f4ecd8"

[styles.Heading]
bold = true

[styles.Broken]
fg = "not-a-color"
`

func TestLoadFromFileInheritsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sepia.toml")
	if err := os.WriteFile(path, []byte(sepia), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if th.Name != "Sepia" {
		t.Errorf("Name = %q", th.Name)
	}
	base := tcell.StyleDefault.Foreground(tcell.NewHexColor(0x5b4636)).Background(tcell.NewHexColor(0xf4ecd8))
	if th.Styles[StyleDefault] != base {
		t.Errorf("Default = %v", th.Styles[StyleDefault])
	}
	if th.Styles["Heading"] != base.Bold(true) {
		t.Errorf("Heading does not inherit Default: %v", th.Styles["Heading"])
	}
	if _, ok := th.Styles["Broken"]; ok {
		t.Error("a style with an invalid color must be skipped")
	}
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sepia.toml"), []byte(sepia), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir)
	want := []string{"Paper Dark", "Paper Light", "Sepia"}
	if got := m.ListThemes(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListThemes() = %v, want %v", got, want)
	}
	if m.Current().Name != "Paper Dark" {
		t.Errorf("initial theme = %q", m.Current().Name)
	}
	if err := m.SetTheme("sepia"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if m.Current().Name != "Sepia" {
		t.Errorf("current theme = %q", m.Current().Name)
	}
	if err := m.SetTheme("nope"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
}

func TestManagerWithoutDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing"))
	if len(m.ListThemes()) != 2 {
		t.Errorf("themes = %v", m.ListThemes())
	}
	if _, ok := m.GetTheme("PAPER LIGHT"); !ok {
		t.Error("lookup must ignore case")
	}
}
