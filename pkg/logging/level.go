package logging

import (
	"fmt"
	"strings"
)

// Level represents a log level
type Level int

const (
	// DebugLevel logs per-load and per-group detail
	DebugLevel Level = iota
	// InfoLevel logs build stages and summaries
	InfoLevel
	// WarnLevel logs data problems that do not stop a build
	WarnLevel
	// ErrorLevel logs a failed build
	ErrorLevel
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, falling back to InfoLevel.
func ParseLevel(s string) Level {
	level, err := LookupLevel(s)
	if err != nil {
		return InfoLevel
	}
	return level
}

// LookupLevel converts a case-insensitive level name and reports unknown names.
func LookupLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}
