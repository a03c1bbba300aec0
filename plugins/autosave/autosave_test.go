package autosave

import (
	"errors"
	"testing"
	"time"

	"github.com/bethropolis/rawedit/internal/plugin/plugintest"
)

func TestConfiguration(t *testing.T) {
	tests := []struct {
		name         string
		table        map[string]interface{}
		wantEnabled  bool
		wantInterval time.Duration
	}{
		{"defaults", nil, false, defaultInterval},
		{"valid", map[string]interface{}{"enabled": true, "interval": "30s"}, true, 30 * time.Second},
		{"bad interval", map[string]interface{}{"enabled": true, "interval": "soon"}, true, defaultInterval},
		{"negative interval", map[string]interface{}{"interval": "-5s"}, false, defaultInterval},
		{"wrong types", map[string]interface{}{"enabled": "yes", "interval": 10}, false, defaultInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := plugintest.New("")
			if tt.table != nil {
				api.Config["autosave"] = tt.table
			}
			p := New().(*AutoSave)
			if err := p.Initialize(api); err != nil {
				t.Fatal(err)
			}
			defer p.Shutdown()
			if p.Enabled() != tt.wantEnabled || p.Interval() != tt.wantInterval {
				t.Errorf("enabled=%v interval=%v, want %v %v", p.Enabled(), p.Interval(), tt.wantEnabled, tt.wantInterval)
			}
		})
	}
}

func TestSaveIfModified(t *testing.T) {
	api := plugintest.New("text")
	p := New().(*AutoSave)
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}

	if p.saveIfModified() {
		t.Error("saved an unmodified document")
	}

	api.SetModified(true)
	if p.saveIfModified() {
		t.Error("saved a document without a file name")
	}

	api.Path = "doc.html"
	if !p.saveIfModified() || api.SaveCount() != 1 {
		t.Errorf("saves = %d", api.SaveCount())
	}
	if api.IsModified() {
		t.Error("document still modified after save")
	}

	api.SetModified(true)
	api.SaveErr = errors.New("disk full")
	if p.saveIfModified() {
		t.Error("a failed save reported success")
	}
	if len(api.Messages) != 1 {
		t.Errorf("messages = %v", api.Messages)
	}
}

func TestLoopSavesPeriodically(t *testing.T) {
	api := plugintest.New("text")
	api.Path = "doc.html"
	api.Modified = true
	api.Saved = make(chan struct{}, 1)
	api.Config["autosave"] = map[string]interface{}{"enabled": true, "interval": "5ms"}

	p := New().(*AutoSave)
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}
	defer p.Shutdown()

	select {
	case <-api.Saved:
	case <-time.After(5 * time.Second):
		t.Fatal("no auto-save within 5s")
	}
	if api.Field("autosave") != "5ms" {
		t.Errorf("status field = %q", api.Field("autosave"))
	}
}
