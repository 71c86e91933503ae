// Package logger is the process-wide leveled logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a logging severity.
type Level = logrus.Level

var std = newStd()

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// ParseLevel converts a level name (trace, debug, info, warn, error, fatal,
// panic) into a Level.
func ParseLevel(name string) (Level, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return lvl, nil
}

func SetLevel(level Level) { std.SetLevel(level) }

func GetLevel() Level { return std.GetLevel() }

// SetOutput redirects log output. The prompt itself goes to stdout, so logs
// default to stderr.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// SetFile appends log output to path in addition to stderr.
func SetFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	std.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}

// WithField returns an entry carrying a structured field.
func WithField(key string, value any) *logrus.Entry {
	return std.WithField(key, value)
}

func Trace(format string, args ...any) { std.Tracef(format, args...) }
func Debug(format string, args ...any) { std.Debugf(format, args...) }
func Info(format string, args ...any)  { std.Infof(format, args...) }
func Warn(format string, args ...any)  { std.Warnf(format, args...) }
func Error(format string, args ...any) { std.Errorf(format, args...) }
func Fatal(format string, args ...any) { std.Fatalf(format, args...) }
