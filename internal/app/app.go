// Package app hosts the editing engine in a terminal: it loads an HTML file,
// feeds keys and clicks through the handler pipeline and draws the result.
package app

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bethropolis/rawedit/internal/config"
	"github.com/bethropolis/rawedit/internal/core"
	"github.com/bethropolis/rawedit/internal/core/clipboard"
	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/handlers"
	"github.com/bethropolis/rawedit/internal/input"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/plugin"
	"github.com/bethropolis/rawedit/internal/statusbar"
	"github.com/bethropolis/rawedit/internal/theme"
	"github.com/bethropolis/rawedit/internal/tui"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"
)

var errNoFileName = errors.New("document has no file name")

// App encapsulates the core components and main loop of the host.
type App struct {
	tuiManager     *tui.TUI
	view           *tui.View
	editor         *core.Editor
	pipeline       *handlers.Pipeline
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	themeManager   *theme.Manager
	editorAPI      *appEditorAPI
	cfg            *config.Config

	filePath string
	// savedHTML is the markup last read from or written to filePath.
	savedHTML string
	// selAnchor is the fixed end of a keyboard selection.
	selAnchor int
	mouseDown bool

	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

// NewApp creates the host on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, filePath, tuiManager)
}

// NewAppWithScreen creates the host on s, typically a simulation screen.
func NewAppWithScreen(cfg *config.Config, filePath string, s tcell.Screen) (*App, error) {
	tuiManager, err := tui.NewWithScreen(s)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, filePath, tuiManager)
}

func newApp(cfg *config.Config, filePath string, tuiManager *tui.TUI) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	root, err := loadDocument(filePath)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}

	eventManager := event.NewManager()
	editor := core.NewEditor(root, core.Options{
		HistorySize:  cfg.Editor.HistorySize,
		DiffDebounce: cfg.Editor.DiffDebounce.Duration,
		Events:       eventManager,
	})

	themeManager := theme.NewManager(config.ThemesDir())
	if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
		logger.Warnf("App: %v, keeping '%s'", err, themeManager.Current().Name)
	}

	a := &App{
		tuiManager:     tuiManager,
		view:           &tui.View{},
		editor:         editor,
		pipeline:       handlers.NewPipeline(editor, clipboard.NewManager(cfg.Editor.SystemClipboard)),
		inputProcessor: input.NewInputProcessor(),
		statusBar:      statusbar.New(statusbar.DefaultConfig()),
		eventManager:   eventManager,
		pluginManager:  plugin.NewManager(),
		themeManager:   themeManager,
		cfg:            cfg,
		filePath:       filePath,
		savedHTML:      editor.InnerHTML(),
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}
	a.editorAPI = newEditorAPI(a)
	tuiManager.SetStyle(themeManager.Current().GetStyle(theme.StyleDefault))

	a.subscribeEvents()
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	return a, nil
}

// loadDocument parses the file at path. A missing file starts an empty
// document that is created on the first save.
func loadDocument(path string) (*html.Node, error) {
	if path == "" {
		return dom.NewRoot("")
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("App: '%s' does not exist, starting empty", path)
		return dom.NewRoot("")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	root, err := dom.NewRoot(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	return root, nil
}

// Run starts the event loop and redraws until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.editor.Detach()

	// plugins subscribe before Attach so they see the initial content
	a.pluginManager.InitializePlugins(a.editorAPI)
	a.editor.Run(a.editor.Attach)

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("rawedit - Ctrl+S Save | Esc Quit | Ctrl+Q Force Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, nil)
			if a.editorAPI.IsModified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("App: exiting")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop reads terminal events until the screen is closed.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		if a.handleEvent(ev) {
			a.requestRedraw()
		}
	}
}

// handleEvent reports whether ev requires a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		return a.handleKey(input.FromTcell(e))
	case *tcell.EventMouse:
		return a.handleMouse(e)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// requestQuit closes the quit channel. Without force a modified document
// only produces a warning.
func (a *App) requestQuit(force bool) {
	if !force && a.isModified() {
		a.statusBar.SetTemporaryMessage("Unsaved changes: Ctrl+S to save, Ctrl+Q to quit anyway")
		return
	}
	a.quitOnce.Do(func() { close(a.quit) })
}

// isModified compares the document with the last saved markup. The caller
// holds the editor lock.
func (a *App) isModified() bool {
	return a.editor.InnerHTML() != a.savedHTML
}

// saveDocument writes the inner markup to filePath. The caller holds the
// editor lock.
func (a *App) saveDocument() error {
	if a.filePath == "" {
		a.statusBar.SetTemporaryMessage("Save failed: %v", errNoFileName)
		return errNoFileName
	}
	markup := a.editor.InnerHTML()
	if err := os.WriteFile(a.filePath, []byte(markup), 0o644); err != nil {
		logger.Errorf("App: failed to save '%s': %v", a.filePath, err)
		a.statusBar.SetTemporaryMessage("Save failed: %v", err)
		return fmt.Errorf("failed to write '%s': %w", a.filePath, err)
	}
	a.savedHTML = markup
	logger.Infof("App: saved '%s' (%d bytes)", a.filePath, len(markup))
	a.eventManager.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: a.filePath})
	return nil
}
