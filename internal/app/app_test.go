package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/rawedit/internal/config"
	"github.com/bethropolis/rawedit/internal/input"
	"github.com/bethropolis/rawedit/internal/types"
	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, markup string) *App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		t.Fatal(err)
	}
	return newTestAppAt(t, path)
}

func newTestAppAt(t *testing.T, path string) *App {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Editor.DiffDebounce = config.Duration{Duration: time.Hour}

	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewAppWithScreen(cfg, path, screen)
	if err != nil {
		t.Fatalf("NewAppWithScreen: %v", err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(func() {
		a.editor.Detach()
		a.tuiManager.Close()
	})
	a.drawEditor()
	return a
}

func press(t *testing.T, a *App, events ...input.Event) {
	t.Helper()
	for _, ev := range events {
		a.handleKey(ev)
	}
	a.drawEditor()
}

func wantSelection(t *testing.T, a *App, start, end int) {
	t.Helper()
	if got := a.editor.Selection(); got != (types.Region{Start: start, End: end}) {
		t.Errorf("selection = %s, want [%d,%d)", got, start, end)
	}
}

func quitRequested(a *App) bool {
	select {
	case <-a.quit:
		return true
	default:
		return false
	}
}

func TestTypeAndSave(t *testing.T) {
	a := newTestApp(t, "<p>ab</p>")
	press(t, a, input.Press(input.KeyRight), input.Rune('x'))

	if got := a.editor.Text(); got != "axb" {
		t.Fatalf("text = %q", got)
	}
	wantSelection(t, a, 2, 2)
	if !a.editorAPI.IsModified() {
		t.Fatal("document should be modified after typing")
	}

	press(t, a, input.Ctrl('s'))
	data, err := os.ReadFile(a.filePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p>axb</p>" {
		t.Errorf("saved %q", data)
	}
	if a.editorAPI.IsModified() {
		t.Error("document should be clean after saving")
	}
	if text, isMessage := a.statusBar.Text(); !isMessage || !strings.HasPrefix(text, "Saved ") {
		t.Errorf("status = %q (message %v)", text, isMessage)
	}
}

func TestMissingFileStartsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "new.html")
	a := newTestAppAt(t, path)

	if a.editor.Len() != 0 {
		t.Fatalf("len = %d", a.editor.Len())
	}
	press(t, a, input.Rune('h'), input.Rune('i'), input.Ctrl('s'))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}
	if !strings.Contains(string(data), "hi") {
		t.Errorf("saved %q", data)
	}
}

func TestSaveWithoutFileName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := newTestAppAt(t, "")
	if err := a.editorAPI.SaveDocument(); err != errNoFileName {
		t.Errorf("err = %v", err)
	}
}

func TestQuitAsksBeforeDiscarding(t *testing.T) {
	a := newTestApp(t, "<p>ab</p>")
	press(t, a, input.Press(input.KeyEscape))
	if !quitRequested(a) {
		t.Fatal("Esc should quit a clean document")
	}

	a = newTestApp(t, "<p>ab</p>")
	press(t, a, input.Press(input.KeyRight), input.Rune('x'), input.Press(input.KeyEscape))
	if quitRequested(a) {
		t.Fatal("Esc quit with unsaved changes")
	}
	if text, _ := a.statusBar.Text(); !strings.Contains(text, "Unsaved") {
		t.Errorf("status = %q", text)
	}

	press(t, a, input.Ctrl('q'))
	if !quitRequested(a) {
		t.Error("Ctrl+Q should force quit")
	}
}

func TestArrowKeys(t *testing.T) {
	a := newTestApp(t, "<p>abc</p><p>de</p>")

	press(t, a, input.Press(input.KeyRight))
	wantSelection(t, a, 1, 1)
	press(t, a, input.Press(input.KeyDown))
	wantSelection(t, a, 4, 4)
	press(t, a, input.Press(input.KeyEnd))
	wantSelection(t, a, 5, 5)
	press(t, a, input.Press(input.KeyHome))
	wantSelection(t, a, 3, 3)
	press(t, a, input.Press(input.KeyUp))
	wantSelection(t, a, 0, 0)
	press(t, a, input.Press(input.KeyLeft))
	wantSelection(t, a, 0, 0)
}

func TestShiftSelection(t *testing.T) {
	a := newTestApp(t, "abc")
	press(t, a, input.Press(input.KeyRight), input.Press(input.KeyRight))

	press(t, a, input.Press(input.KeyLeft, input.ModShift))
	wantSelection(t, a, 1, 2)
	press(t, a, input.Press(input.KeyLeft, input.ModShift))
	wantSelection(t, a, 0, 2)
	press(t, a, input.Press(input.KeyRight, input.ModShift))
	wantSelection(t, a, 1, 2)

	press(t, a, input.Press(input.KeyLeft))
	wantSelection(t, a, 1, 1)
}

func TestTypingReplacesSelection(t *testing.T) {
	a := newTestApp(t, "abc")
	press(t, a,
		input.Press(input.KeyRight),
		input.Press(input.KeyRight, input.ModShift),
		input.Rune('x'),
	)
	if got := a.editor.Text(); got != "axc" {
		t.Errorf("text = %q", got)
	}
}

func TestMouseClickPlacesCaret(t *testing.T) {
	a := newTestApp(t, "<p>abc</p><p>de</p>")

	if a.handleMouse(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)) {
		t.Error("press alone should not move the caret")
	}
	if !a.handleMouse(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatal("release should move the caret")
	}
	wantSelection(t, a, 4, 4)
}

func TestStatusBarShowsPosition(t *testing.T) {
	a := newTestApp(t, "<p>abc</p>")
	a.statusBar.ResetTemporaryMessage()
	press(t, a, input.Press(input.KeyRight))

	text, isMessage := a.statusBar.Text()
	if isMessage {
		t.Fatalf("unexpected message %q", text)
	}
	if !strings.Contains(text, "doc.html") || !strings.Contains(text, "Pos: 1") {
		t.Errorf("status = %q", text)
	}
}

func TestStatusBarShowsBold(t *testing.T) {
	a := newTestApp(t, "<p>a<b>bc</b></p>")
	press(t, a, input.Press(input.KeyRight), input.Press(input.KeyRight))

	text, _ := a.statusBar.Text()
	if !strings.Contains(text, "Bold") {
		t.Errorf("status = %q", text)
	}
}

func TestPluginsRegistered(t *testing.T) {
	a := newTestApp(t, "")
	for _, name := range []string{"wordcount", "autosave"} {
		if _, ok := a.pluginManager.GetPlugin(name); !ok {
			t.Errorf("plugin %s not registered", name)
		}
	}
}

func TestUndoThroughPipeline(t *testing.T) {
	a := newTestApp(t, "<p>ab</p>")
	press(t, a, input.Press(input.KeyRight), input.Rune('x'), input.Ctrl('z'))

	if got := a.editor.Text(); got != "ab" {
		t.Errorf("text = %q", got)
	}
	wantSelection(t, a, 1, 1)
	if a.editorAPI.IsModified() {
		t.Error("undo back to the loaded markup should leave the document clean")
	}
}
