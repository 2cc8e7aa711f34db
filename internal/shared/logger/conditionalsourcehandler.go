package logger

import (
	"context"
	"log/slog"
	"runtime"
)

type conditionalSourceHandler struct {
	handler    slog.Handler
	sourceFrom slog.Level
}

// NewConditionalSourceHandler wraps a handler so records at or above sourceFrom carry the caller's
// source location. The wrapped handler should be built with AddSource: false.
//
// Example:
//
//	handler := NewConditionalSourceHandler(tint.NewHandler(os.Stdout, opts), slog.LevelWarn)
func NewConditionalSourceHandler(handler slog.Handler, sourceFrom slog.Level) slog.Handler {
	return &conditionalSourceHandler{
		handler:    handler,
		sourceFrom: sourceFrom,
	}
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.sourceFrom {
		frame := callerFrame(r.PC)
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.handler.Handle(ctx, r)
}

// callerFrame resolves the record's PC; records built without one fall back to the stack.
func callerFrame(pc uintptr) runtime.Frame {
	if pc == 0 {
		var pcs [1]uintptr
		runtime.Callers(4, pcs[:])
		pc = pcs[0]
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return frame
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{
		handler:    h.handler.WithAttrs(attrs),
		sourceFrom: h.sourceFrom,
	}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{
		handler:    h.handler.WithGroup(name),
		sourceFrom: h.sourceFrom,
	}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
