package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context. It reports
// false when the context carries nothing for it.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type decorator struct {
	inner      slog.Handler
	extractors []ContextExtractor
}

func newDecorator(inner slog.Handler, extractors ...ContextExtractor) slog.Handler {
	return &decorator{inner: inner, extractors: extractors}
}

func (d *decorator) Enabled(ctx context.Context, level slog.Level) bool {
	return d.inner.Enabled(ctx, level)
}

func (d *decorator) Handle(ctx context.Context, record slog.Record) error {
	for _, extract := range d.extractors {
		if attr, ok := extract(ctx); ok {
			record.AddAttrs(attr)
		}
	}
	return d.inner.Handle(ctx, record)
}

func (d *decorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &decorator{inner: d.inner.WithAttrs(attrs), extractors: d.extractors}
}

func (d *decorator) WithGroup(name string) slog.Handler {
	return &decorator{inner: d.inner.WithGroup(name), extractors: d.extractors}
}
