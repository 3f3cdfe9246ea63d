// Package log provides the small structured-logging interface used
// throughout pcodedmp, in the same shape as the logging seam the teacher
// codebase threads through its parser (a Logger interface, a Helper
// wrapping leveled convenience methods, a filtering decorator).
package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int

// Severities, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every component logs through.
type Logger interface {
	Log(level Level, msg string) error
}

// stdLogger writes log lines to an io.Writer, one per call.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes timestamped lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

func (s *stdLogger) Log(level Level, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%s %s %s\n", time.Now().Format(time.RFC3339), level, msg)
	return err
}

// filterOption configures a filter.
type filterOption func(*filter)

// FilterLevel sets the minimum level that passes through the filter.
func FilterLevel(level Level) filterOption {
	return func(f *filter) { f.level = level }
}

type filter struct {
	next  Logger
	level Level
}

// NewFilter wraps next so only records at or above the configured level
// (LevelError by default) reach it.
func NewFilter(next Logger, opts ...filterOption) Logger {
	f := &filter{next: next, level: LevelError}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, msg string) error {
	if level < f.level {
		return nil
	}
	return f.next.Log(level, msg)
}

// Helper adds leveled convenience methods around a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger with Debug/Info/Warn/Error convenience methods.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) Debug(msg string)                    { h.log(LevelDebug, msg) }
func (h *Helper) Debugf(format string, a ...any)       { h.log(LevelDebug, fmt.Sprintf(format, a...)) }
func (h *Helper) Info(msg string)                     { h.log(LevelInfo, msg) }
func (h *Helper) Infof(format string, a ...any)        { h.log(LevelInfo, fmt.Sprintf(format, a...)) }
func (h *Helper) Warn(msg string)                     { h.log(LevelWarn, msg) }
func (h *Helper) Warnf(format string, a ...any)        { h.log(LevelWarn, fmt.Sprintf(format, a...)) }
func (h *Helper) Error(msg string)                    { h.log(LevelError, msg) }
func (h *Helper) Errorf(format string, a ...any)       { h.log(LevelError, fmt.Sprintf(format, a...)) }

func (h *Helper) log(level Level, msg string) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, msg)
}
