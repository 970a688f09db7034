// internal/utils/logger.go

package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger defines the interface for logging throughout the application.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel converts a config value such as "debug" into a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %q", s)
	}
}

// SimpleLogger writes leveled, line-oriented messages to a writer.
type SimpleLogger struct {
	level  LogLevel
	out    io.Writer
	fields map[string]interface{}
	mu     *sync.Mutex
}

// NewLogger creates a logger writing info and above to stderr.
func NewLogger() Logger {
	return NewLoggerWithLevel(InfoLevel)
}

// NewLoggerWithLevel creates a stderr logger with the specified log level.
func NewLoggerWithLevel(level LogLevel) Logger {
	return NewWriterLogger(os.Stderr, level)
}

// NewWriterLogger creates a logger writing to out.
func NewWriterLogger(out io.Writer, level LogLevel) Logger {
	return &SimpleLogger{
		level:  level,
		out:    out,
		fields: make(map[string]interface{}),
		mu:     &sync.Mutex{},
	}
}

func (l *SimpleLogger) Debug(msg string) {
	l.log(DebugLevel, msg)
}

func (l *SimpleLogger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}

func (l *SimpleLogger) Info(msg string) {
	l.log(InfoLevel, msg)
}

func (l *SimpleLogger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}

func (l *SimpleLogger) Warn(msg string) {
	l.log(WarnLevel, msg)
}

func (l *SimpleLogger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}

func (l *SimpleLogger) Error(msg string) {
	l.log(ErrorLevel, msg)
}

func (l *SimpleLogger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}

func (l *SimpleLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a child logger sharing the parent's writer and lock.
func (l *SimpleLogger) WithFields(fields map[string]interface{}) Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &SimpleLogger{
		level:  l.level,
		out:    l.out,
		fields: newFields,
		mu:     l.mu,
	}
}

// log formats and outputs a log message if it meets the minimum level.
func (l *SimpleLogger) log(level LogLevel, msg string) {
	if level < l.level {
		return
	}

	// Format: [TIME] [LEVEL] message fields={...}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	output := fmt.Sprintf("[%s] [%s] %s", timestamp, level, msg)

	if len(l.fields) > 0 {
		output += " fields=" + formatFields(l.fields)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, output)
}

// formatFields converts fields map to a string representation with sorted keys.
func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(fields))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string)                               {}
func (NopLogger) Debugf(string, ...interface{})              {}
func (NopLogger) Info(string)                                {}
func (NopLogger) Infof(string, ...interface{})               {}
func (NopLogger) Warn(string)                                {}
func (NopLogger) Warnf(string, ...interface{})               {}
func (NopLogger) Error(string)                               {}
func (NopLogger) Errorf(string, ...interface{})              {}
func (n NopLogger) WithField(string, interface{}) Logger     { return n }
func (n NopLogger) WithFields(map[string]interface{}) Logger { return n }
