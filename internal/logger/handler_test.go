package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestHandler(t *testing.T, cfg Config) (*filteringHandler, *bytes.Buffer) {
	t.Helper()
	cfg.process()
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newFilteringHandler(base, &cfg), &buf
}

func record(msg, tag string) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func TestTagFiltering(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		tag  string
		want bool
	}{
		{"no filters", Config{}, "diff", true},
		{"disabled tag", Config{DisabledTags: []string{"diff"}}, "diff", false},
		{"disabled tag case", Config{DisabledTags: []string{"DIFF"}}, "diff", false},
		{"enabled tag", Config{EnabledTags: []string{"list"}}, "list", true},
		{"other tag", Config{EnabledTags: []string{"list"}}, "diff", false},
		{"untagged with enabled list", Config{EnabledTags: []string{"list"}}, "", false},
		{"disable wins", Config{EnabledTags: []string{"list"}, DisabledTags: []string{"list"}}, "list", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(t, tt.cfg)
			if err := h.Handle(context.Background(), record("hello", tt.tag)); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			got := strings.Contains(buf.String(), "hello")
			if got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestTagInheritedFromWithAttrs(t *testing.T) {
	h, buf := newTestHandler(t, Config{DisabledTags: []string{"tree"}})
	tagged := h.WithAttrs([]slog.Attr{slog.String(tagKey, "tree")})
	if err := tagged.Handle(context.Background(), record("rebuilt", "")); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected record to be dropped, got %q", buf.String())
	}
}

func TestRejectPackagesAndFiles(t *testing.T) {
	h, _ := newTestHandler(t, Config{
		EnabledPackages: []string{"core"},
		DisabledFiles:   []string{"undo.go"},
	})
	if r := h.reject("core", "editor.go", ""); r != "" {
		t.Errorf("core/editor.go rejected: %s", r)
	}
	if r := h.reject("handlers", "enter.go", ""); r == "" {
		t.Error("handlers package should be rejected")
	}
	if r := h.reject("core", "undo.go", ""); r == "" {
		t.Error("undo.go should be rejected")
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warning": slog.LevelWarn, "err": slog.LevelError,
	} {
		got, ok := ParseLevel(name)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Error("ParseLevel accepted an unknown level")
	}
}

func TestSliceToSet(t *testing.T) {
	if set := sliceToSet([]string{"", " "}); set != nil {
		t.Errorf("expected nil set, got %v", set)
	}
	set := sliceToSet([]string{"Core", " handlers "})
	if !foundInSet(set, "core") || !foundInSet(set, "handlers") {
		t.Errorf("unexpected set %v", set)
	}
}
