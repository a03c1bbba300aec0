// Package autosave periodically writes the document back to its file when it
// changed since the last save.
package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave is configured through [plugins.autosave] with the keys
// enabled (bool) and interval (duration string).
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex
	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the configuration and starts the save loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	name := p.Name()

	p.mutex.Lock()
	if v, ok := api.GetPluginConfigValue(name, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.WarnTagf(name, "invalid type for 'enabled' (%T), using default (%v)", v, p.enabled)
		}
	}
	if v, ok := api.GetPluginConfigValue(name, "interval"); ok {
		if s, isStr := v.(string); isStr {
			parsed, err := time.ParseDuration(s)
			switch {
			case err != nil:
				logger.WarnTagf(name, "invalid 'interval' %q: %v, using default (%v)", s, err, p.interval)
			case parsed <= 0:
				logger.WarnTagf(name, "'interval' must be positive (%q), using default (%v)", s, p.interval)
			default:
				p.interval = parsed
			}
		} else {
			logger.WarnTagf(name, "invalid type for 'interval' (%T), using default (%v)", v, p.interval)
		}
	}
	enabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	logger.InfoTagf(name, "initialized, enabled: %v, interval: %v", enabled, interval)
	if !enabled {
		return nil
	}

	api.SetStatusField(name, interval.String())
	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval)
	return nil
}

// Shutdown stops the save loop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
	}
	return nil
}

// Enabled reports the configured state.
func (p *AutoSave) Enabled() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.enabled
}

// Interval reports the configured period.
func (p *AutoSave) Interval() time.Duration {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.interval
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified saves a named, modified document. It reports whether it saved.
func (p *AutoSave) saveIfModified() bool {
	if !p.api.IsModified() {
		return false
	}
	filePath := p.api.FilePath()
	if filePath == "" {
		logger.DebugTagf(p.Name(), "document has no file name, skipping")
		return false
	}

	if err := p.api.SaveDocument(); err != nil {
		logger.ErrorTagf(p.Name(), "auto-save of '%s' failed: %v", filePath, err)
		p.api.SetStatusMessage("auto-save failed: %v", err)
		return false
	}
	logger.DebugTagf(p.Name(), "auto-saved '%s'", filePath)
	return true
}
