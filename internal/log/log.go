// Package log provides a small leveled logger for the engine and its LSP
// host. It intentionally has no third-party dependency: the teacher
// project makes the same choice for its own ambient logging.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for verbose debugging information.
	LevelDebug Level = iota
	// LevelInfo is for important operational events.
	LevelInfo
	// LevelWarn is for warnings that don't prevent operation.
	LevelWarn
	// LevelError is for errors that may affect functionality.
	LevelError
)

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel atomic.Int32
	prefix          = "[AULS]"
)

func init() {
	minLevel.Store(int32(LevelInfo))
}

// SetOutput sets the output destination (primarily for testing).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display.
func SetLevel(level Level) {
	minLevel.Store(int32(level))
}

// GetLevel returns the current minimum log level.
func GetLevel() Level {
	return Level(minLevel.Load())
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) { log(LevelDebug, format, args...) }

// Info logs an info message.
func Info(format string, args ...interface{}) { log(LevelInfo, format, args...) }

// Warn logs a warning message.
func Warn(format string, args ...interface{}) { log(LevelWarn, format, args...) }

// Error logs an error message.
func Error(format string, args ...interface{}) { log(LevelError, format, args...) }

func log(level Level, format string, args ...interface{}) {
	// Fast path: check level without lock to avoid contention for filtered messages.
	if int32(level) < minLevel.Load() {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	fmt.Fprintf(output, "%s %s %s\n", prefix, levelName(level), fmt.Sprintf(format, args...))
}

func levelName(level Level) string {
	switch level {
	case LevelDebug:
		return "[debug]"
	case LevelInfo:
		return "[info]"
	case LevelWarn:
		return "[warn]"
	case LevelError:
		return "[error]"
	default:
		return "[?]"
	}
}
