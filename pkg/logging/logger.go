package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LevelEnv overrides the level of the default logger.
const LevelEnv = "FEEDERDATA_LOG_LEVEL"

// Logger is the interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With creates a child logger with the given fields pre-set
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// Entry is one line of JSON output.
type Entry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// sink is shared by a logger and all of its children so their lines never interleave.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

// JSONLogger writes one JSON object per line.
type JSONLogger struct {
	out    *sink
	mu     sync.RWMutex
	level  Level
	fields []Field
	now    func() time.Time
}

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		out:   &sink{w: w},
		level: level,
		now:   time.Now,
	}
}

// NewLoggerFromEnv creates a JSON logger whose level comes from FEEDERDATA_LOG_LEVEL.
func NewLoggerFromEnv(w io.Writer) *JSONLogger {
	return NewJSONLogger(w, ParseLevel(os.Getenv(LevelEnv)))
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	l.mu.RLock()
	threshold, preset := l.level, l.fields
	l.mu.RUnlock()
	if level < threshold {
		return
	}

	entry := Entry{
		Time:    l.now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if len(preset)+len(fields) > 0 {
		entry.Fields = make(map[string]any, len(preset)+len(fields))
		for _, f := range preset {
			entry.Fields[f.Key] = f.Value
		}
		// Call-site fields override preset ones with the same key.
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":"ERROR","msg":"unencodable log entry","error":%q}`, err.Error()))
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.w.Write(append(data, '\n'))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With creates a child logger with the given fields pre-set
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &JSONLogger{
		out:    l.out,
		level:  l.level,
		fields: merged,
		now:    l.now,
	}
}

// SetLevel sets the minimum log level
func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *JSONLogger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// NopLogger discards everything. Library code falls back to it when no logger is given.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (n NopLogger) With(...Field) Logger { return n }
func (NopLogger) SetLevel(Level)         {}
func (NopLogger) GetLevel() Level        { return InfoLevel }

// NewNopLogger creates a logger that discards all output
func NewNopLogger() Logger {
	return NopLogger{}
}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// DefaultLogger returns the process-wide logger, writing to stderr.
func DefaultLogger() Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLoggerFromEnv(os.Stderr)
	}
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
