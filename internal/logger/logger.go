// internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is the severity of a log line.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	SILENT
)

var levelNames = map[Level]string{
	DEBUG:  "DEBUG",
	INFO:   "INFO",
	WARN:   "WARN",
	ERROR:  "ERROR",
	SILENT: "SILENT",
}

// Logger writes one human-readable line per call, tagged with a module name.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
}

var (
	defaultLogger = New(INFO, os.Stderr)
	initOnce      sync.Once
)

// Init replaces the package logger. Only the first call has an effect.
func Init(level Level, output io.Writer) {
	initOnce.Do(func() {
		defaultLogger = New(level, output)
	})
}

// New creates a Logger. A nil output means stderr.
func New(level Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(output, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) logf(level Level, module, format string, args ...any) {
	if level < l.Level() || level >= SILENT {
		return
	}

	prefix := "[" + levelNames[level] + "]"
	if module != "" {
		prefix += " [" + module + "]"
	}

	l.out.Printf("%s %s", prefix, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(module, format string, args ...any) { l.logf(DEBUG, module, format, args...) }
func (l *Logger) Info(module, format string, args ...any)  { l.logf(INFO, module, format, args...) }
func (l *Logger) Warn(module, format string, args ...any)  { l.logf(WARN, module, format, args...) }
func (l *Logger) Error(module, format string, args ...any) { l.logf(ERROR, module, format, args...) }

// ---- package-level helpers ----

func SetLevel(level Level) { defaultLogger.SetLevel(level) }

func Debug(module, format string, args ...any) { defaultLogger.Debug(module, format, args...) }
func Info(module, format string, args ...any)  { defaultLogger.Info(module, format, args...) }
func Warn(module, format string, args ...any)  { defaultLogger.Warn(module, format, args...) }
func Error(module, format string, args ...any) { defaultLogger.Error(module, format, args...) }

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "info", "":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "silent", "none":
		return SILENT, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s", s)
	}
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}
