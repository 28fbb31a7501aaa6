package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dmitrymomot/journal/pkg/requestctx"
)

// LevelFatal extends slog's built-in levels for unrecoverable conditions.
// Ordering: Debug < Info < Warn < Error < Fatal.
const LevelFatal = slog.LevelError + 4

// Logger emits leveled, correlated log entries. Request context fields are
// attached automatically from the context passed to each call, so no log
// call needs an explicit correlation parameter.
//
// The zero value is not usable; construct with New or NewFromConfig.
type Logger struct {
	handler    slog.Handler
	level      slog.Level
	bound      []slog.Attr
	stackDepth int
}

// New creates a logger with the given options, writing JSON to stderr by
// default. The threshold check happens before any attribute formatting,
// so suppressed levels cost nothing beyond the comparison.
func New(opts ...Option) *Logger {
	cfg := options{
		out:        os.Stderr,
		level:      slog.LevelInfo,
		format:     FormatJSON,
		stackDepth: 0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.out, handlerOpts)
	}

	return &Logger{
		handler:    handler,
		level:      cfg.level,
		stackDepth: cfg.stackDepth,
	}
}

// Discard returns a logger that drops every record. Useful as a default
// when no logger is wired in.
func Discard() *Logger {
	return New(WithOutput(io.Discard), WithLevel(LevelFatal+4))
}

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type options struct {
	out        io.Writer
	level      slog.Level
	format     Format
	stackDepth int
}

// Option is a functional option for configuring the logger.
type Option func(*options)

// WithOutput sets the output sink (default: stderr).
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithLevel sets the minimum level threshold.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithFormat selects json or text output.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f == FormatJSON || f == FormatText {
			o.format = f
		}
	}
}

// WithStackTrace enables bounded stack capture for error and fatal entries.
// depth limits the number of captured frames; zero disables capture.
func WithStackTrace(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.stackDepth = depth
		}
	}
}

// ParseLevel converts a level name to a slog.Level, accepting the five
// supported names case-insensitively. Unknown names default to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "fatal":
		return LevelFatal
	default:
		return slog.LevelInfo
	}
}

// Child returns a new logger with extra bound attributes layered over the
// parent's. Parent attributes are preserved unless the child rebinds the
// same key, in which case the child's value wins.
func (l *Logger) Child(attrs ...slog.Attr) *Logger {
	merged := make([]slog.Attr, 0, len(l.bound)+len(attrs))
	for _, parent := range l.bound {
		overridden := false
		for _, child := range attrs {
			if child.Key == parent.Key {
				overridden = true
				break
			}
		}
		if !overridden {
			merged = append(merged, parent)
		}
	}
	for _, child := range attrs {
		if child.Key != "" {
			merged = append(merged, child)
		}
	}

	clone := *l
	clone.bound = merged
	return &clone
}

// Enabled reports whether entries at the given level would be emitted.
func (l *Logger) Enabled(level slog.Level) bool {
	return level >= l.level
}

func (l *Logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelDebug, msg, attrs)
}

func (l *Logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelInfo, msg, attrs)
}

func (l *Logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelWarn, msg, attrs)
}

func (l *Logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelError, msg, attrs)
}

func (l *Logger) Fatal(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelFatal, msg, attrs)
}

// log builds and emits a record. A logging failure must never mask the
// outcome of the operation being logged, so panics and handler errors are
// swallowed here.
func (l *Logger) log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if !l.Enabled(level) {
		return
	}

	defer func() {
		_ = recover()
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	record := slog.NewRecord(time.Now(), level, msg, 0)
	if rc, ok := requestctx.From(ctx); ok {
		record.AddAttrs(contextAttrs(rc)...)
	}
	record.AddAttrs(l.bound...)
	for _, a := range attrs {
		if a.Key != "" || !a.Value.Equal(slog.Value{}) {
			record.AddAttrs(a)
		}
	}

	if level >= slog.LevelError && l.stackDepth > 0 {
		record.AddAttrs(slog.String("stack", boundedStack(l.stackDepth)))
	}

	_ = l.handler.Handle(ctx, record)
}

// Err formats an error with its message and causal chain. Unlike the plain
// Error attr helper, the chain makes wrapped storage and codec failures
// visible as discrete entries.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	attrs := []slog.Attr{slog.String("message", err.Error())}

	var chain []string
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		chain = append(chain, cause.Error())
	}
	if len(chain) > 0 {
		attrs = append(attrs, slog.Any("cause", chain))
	}

	return Group("error", attrs...)
}

// boundedStack captures at most maxLines lines of the current stack,
// skipping the logger's own frames. The bound caps log entry size.
func boundedStack(maxLines int) string {
	buf := make([]byte, 16<<10)
	buf = buf[:runtime.Stack(buf, false)]

	lines := strings.Split(string(buf), "\n")
	// Line 0 is the goroutine header; each frame takes two lines. Skip the
	// header plus three logger-internal frames.
	const skip = 1 + 3*2
	limit := skip + maxLines*2
	if limit > len(lines) {
		limit = len(lines)
	}
	if skip >= len(lines) {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[skip:limit], "\n")
}

// Timer measures elapsed wall time for an operation.
type Timer struct {
	logger *Logger
	start  time.Time
}

// StartTimer begins a latency measurement bound to this logger.
func (l *Logger) StartTimer() *Timer {
	return &Timer{logger: l, start: time.Now()}
}

// Elapsed reports the wall time since the timer started without logging.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End emits an info-level entry carrying the elapsed duration.
func (t *Timer) End(ctx context.Context, msg string, attrs ...slog.Attr) time.Duration {
	elapsed := time.Since(t.start)
	all := make([]slog.Attr, 0, len(attrs)+1)
	all = append(all, Duration(elapsed))
	all = append(all, attrs...)
	t.logger.Info(ctx, msg, all...)
	return elapsed
}
