// Package log is the application's structured debug logger.
// Entries are written as key=value lines through tea.LogToFile, kept in a
// bounded in-memory buffer for the log overlay, and published on a broker.
// Nothing is recorded until Init is called (--debug or ENROL_DEBUG=1).
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/enrol/internal/pubsub"
)

// Level represents log severity.
type Level int

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

// Category groups related log messages.
type Category string

const (
	CatApp      Category = "app"      // Program lifecycle
	CatUI       Category = "ui"       // Component focus and rendering
	CatForm     Category = "form"     // Field edits, validation, submission
	CatRegistry Category = "registry" // Record insertion and removal
	CatConfig   Category = "config"   // Configuration loading/saving
	CatTrace    Category = "trace"    // Tracing provider
)

// DefaultBufferSize is the number of entries retained for the log overlay.
const DefaultBufferSize = 500

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []string // ring of recent entries, oldest first
	capacity int
	broker   *pubsub.Broker[string]
	now      func() time.Time
}

var (
	loggerMu      sync.RWMutex
	defaultLogger *Logger
)

// Init opens path through tea.LogToFile and installs the global logger.
// The returned function closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "enrol")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	install(newLogger(f, f))
	return func() { _ = f.Close() }, nil
}

// InitWithWriter installs a logger that writes to w. Used by tests and by
// callers that already own a sink.
func InitWithWriter(w io.Writer) {
	install(newLogger(w, nil))
}

// Reset removes the global logger. Subsequent calls are no-ops.
func Reset() {
	loggerMu.Lock()
	old := defaultLogger
	defaultLogger = nil
	loggerMu.Unlock()

	if old != nil {
		old.broker.Close()
	}
}

func install(l *Logger) {
	loggerMu.Lock()
	old := defaultLogger
	defaultLogger = l
	loggerMu.Unlock()

	if old != nil {
		old.broker.Close()
	}
}

func current() *Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

func newLogger(w io.Writer, c io.Closer) *Logger {
	return &Logger{
		closer:   c,
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		capacity: DefaultBufferSize,
		broker:   pubsub.NewBroker[string](),
		now:      time.Now,
	}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

// Format renders one entry.
// Format: 2026-10-19T10:45:00 [INFO] [form] message key=value key2=value2
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	b.WriteString(ts.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	if !l.enabled || level < l.minLevel {
		l.mu.Unlock()
		return
	}

	entry := Format(l.now(), level, cat, msg, fields...)

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry+"\n")
	}

	l.buffer = append(l.buffer, entry)
	if over := len(l.buffer) - l.capacity; over > 0 {
		l.buffer = append(l.buffer[:0], l.buffer[over:]...)
	}
	broker := l.broker
	l.mu.Unlock()

	broker.Publish(pubsub.LoggedEvent, entry)
}

// GetRecentLogs returns up to n of the newest buffered entries, oldest first.
func GetRecentLogs(n int) []string {
	l := current()
	if l == nil || n <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	start := max(len(l.buffer)-n, 0)
	out := make([]string, len(l.buffer)-start)
	copy(out, l.buffer[start:])
	return out
}

// ClearBuffer drops all buffered entries. The log file is untouched.
func ClearBuffer() {
	if l := current(); l != nil {
		l.mu.Lock()
		l.buffer = nil
		l.mu.Unlock()
	}
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to log entries until ctx is cancelled.
// Returns nil when logging was never initialised.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener[string](ctx, l.broker)
}
