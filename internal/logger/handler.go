package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag"

// debugFilter traces every filtering decision to stderr.
var debugFilter = os.Getenv("RAWEDIT_DEBUG_LOGFILTER") != ""

// filteringHandler drops records by tag, package or file before they reach the base handler.
type filteringHandler struct {
	base  slog.Handler
	cfg   *Config
	attrs []slog.Attr
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.base.Handle(ctx, r)
	}

	pkg, file := recordSource(r)
	if reason := h.reject(pkg, file, recordTag(r, h.attrs)); reason != "" {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] dropped %q: %s\n", r.Message, reason)
		}
		return nil
	}
	return h.base.Handle(ctx, r)
}

// reject returns a non-empty reason when the record must be dropped.
func (h *filteringHandler) reject(pkg, file, tag string) string {
	if pkg != "" {
		if foundInSet(h.cfg.disabledPackagesSet, pkg) {
			return "package " + pkg + " disabled"
		}
		if h.cfg.enabledPackagesSet != nil && !foundInSet(h.cfg.enabledPackagesSet, pkg) {
			return "package " + pkg + " not enabled"
		}
	}
	if file != "" {
		if foundInSet(h.cfg.disabledFilesSet, file) {
			return "file " + file + " disabled"
		}
		if h.cfg.enabledFilesSet != nil && !foundInSet(h.cfg.enabledFilesSet, file) {
			return "file " + file + " not enabled"
		}
	}
	if tag == "" {
		if h.cfg.enabledTagsSet != nil {
			return "untagged while tags are enabled"
		}
		return ""
	}
	if foundInSet(h.cfg.disabledTagsSet, tag) {
		return "tag " + tag + " disabled"
	}
	if h.cfg.enabledTagsSet != nil && !foundInSet(h.cfg.enabledTagsSet, tag) {
		return "tag " + tag + " not enabled"
	}
	return ""
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return next
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	next := newFilteringHandler(h.base.WithGroup(name), h.cfg)
	next.attrs = h.attrs
	return next
}

// recordSource returns the lowercased package directory and file name of the record's caller.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	file = strings.ToLower(filepath.Base(frame.File))
	pkg = strings.ToLower(filepath.Base(filepath.Dir(frame.File)))
	return pkg, file
}

func recordTag(r slog.Record, inherited []slog.Attr) string {
	var tag string
	for _, a := range inherited {
		if a.Key == tagKey {
			tag = a.Value.String()
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	return strings.ToLower(tag)
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}
