package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// tee duplicates every record to each handler that accepts its level.
type tee []slog.Handler

// Tee combines handlers; nil entries are skipped.
func Tee(handlers ...slog.Handler) slog.Handler {
	var t tee
	for _, h := range handlers {
		if h != nil {
			t = append(t, h)
		}
	}
	switch len(t) {
	case 0:
		return NoopHandler{}
	case 1:
		return t[0]
	}
	return t
}

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(t, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

func (t tee) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, record.Level) {
			errs = append(errs, h.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t tee) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t tee) each(fn func(slog.Handler) slog.Handler) slog.Handler {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = fn(h)
	}
	return out
}

// minLevel drops records below floor before they reach next.
type minLevel struct {
	next  slog.Handler
	floor slog.Level
}

func (m minLevel) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= m.floor && m.next.Enabled(ctx, level)
}

func (m minLevel) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < m.floor {
		return nil
	}
	return m.next.Handle(ctx, record)
}

func (m minLevel) WithAttrs(attrs []slog.Attr) slog.Handler {
	return minLevel{next: m.next.WithAttrs(attrs), floor: m.floor}
}

func (m minLevel) WithGroup(name string) slog.Handler {
	return minLevel{next: m.next.WithGroup(name), floor: m.floor}
}

// WithMinLevel returns logger restricted to records at or above floor.
// Applied to an already restricted logger it replaces the floor.
func WithMinLevel(logger *slog.Logger, floor slog.Level) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	next := logger.Handler()
	if m, ok := next.(minLevel); ok {
		next = m.next
	}
	return slog.New(minLevel{next: next, floor: floor})
}

// newJSONHandler writes one object per record with a UTC "ts", a lowercase
// level and a file:line source.
func newJSONHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	})
}

func replaceJSONAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		return slog.String(slog.LevelKey, strings.ToLower(a.Value.String()))
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			return slog.String(slog.SourceKey, filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
		}
	}
	return a
}
