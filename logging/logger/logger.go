package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/pagelink/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// VersionKey is the log field holding the application version
const VersionKey = "version"

const dayLayout = "2006-01-02"

// Logger wraps logrus with context-aware helpers
type Logger struct {
	*logrus.Logger
	mu      sync.Mutex
	version string
	logFile *os.File
	logPath string
	logDay  string
	stop    chan struct{}
}

var (
	stdLogger *Logger
	once      sync.Once
)

// StdLogger returns the process-wide logger
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = NewLogger()
	})
	return stdLogger
}

// NewLogger creates a standalone logger with text output on stderr
func NewLogger() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.Logger.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{})
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init configures the logger and returns a cleanup function
func (l *Logger) Init(c *config.Config) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	if l.release() {
		l.Logger.SetOutput(os.Stderr)
	}
	l.SetLevel(logrus.Level(c.Level))

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{})
	}

	switch c.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "file":
		if c.OutputFile == "" {
			return nil, fmt.Errorf("logger output is file but output_file is empty")
		}
		l.logPath = c.OutputFile
		if err := l.openLogFile(time.Now()); err != nil {
			return nil, err
		}
		l.stop = make(chan struct{})
		go l.periodicLogRotation(l.stop)
	default:
		l.SetOutput(os.Stderr)
	}

	if c.Redaction != nil && c.Redaction.Enabled {
		l.AddHook(NewRedactor(c.Redaction))
	} else {
		l.dropHooks(func(h logrus.Hook) bool {
			_, ok := h.(*Redactor)
			return ok
		})
	}

	return func() {
		if l.release() {
			l.Logger.SetOutput(os.Stderr)
		}
	}, nil
}

// release stops log rotation and closes the log file, reporting whether one was open
func (l *Logger) release() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
	if l.logFile == nil {
		return false
	}
	_ = l.logFile.Close()
	l.logFile = nil
	return true
}

// openLogFile opens the day-stamped log file for t and switches output to it
func (l *Logger) openLogFile(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	day := t.Format(dayLayout)
	name := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), day)
	f, err := os.OpenFile(name, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
	l.logFile = f
	l.logDay = day
	l.Logger.SetOutput(f)
	return nil
}

// rotateLog moves output to the file of t's day when it differs from the open one
func (l *Logger) rotateLog(t time.Time) error {
	l.mu.Lock()
	current := l.logFile == nil || l.logDay == t.Format(dayLayout)
	l.mu.Unlock()
	if current {
		return nil
	}
	return l.openLogFile(t)
}

// periodicLogRotation rotates the log at every local midnight until stop is closed
func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	for {
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		timer := time.NewTimer(midnight.Sub(now))
		select {
		case <-stop:
			timer.Stop()
			return
		case t := <-timer.C:
			if err := l.rotateLog(t); err != nil {
				l.Logger.Errorf("error rotating log: %v", err)
			}
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields(contextFields(ctx))
	if l.version != "" {
		fields[VersionKey] = l.version
	}
	return l.WithFields(fields)
}

// WithContext returns an entry carrying the request-scoped fields of ctx
func (l *Logger) WithContext(ctx context.Context) *logrus.Entry {
	return l.entryFromContext(ctx)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Debug(args...)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Info(args...)
}

// Warn logs a warn message
func (l *Logger) Warn(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Warn(args...)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Error(args...)
}

// Debugf logs a debug message with format
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Debugf(format, args...)
}

// Infof logs an info message with format
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Infof(format, args...)
}

// Warnf logs a warn message with format
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Warnf(format, args...)
}

// Errorf logs an error message with format
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Errorf(format, args...)
}

// SetOutput sets the output destination for the logger
func (l *Logger) SetOutput(out io.Writer) {
	l.Logger.SetOutput(out)
}

// AddHook adds a hook, replacing any registered hook of the same type
func (l *Logger) AddHook(hook logrus.Hook) {
	kind := reflect.TypeOf(hook)
	l.dropHooks(func(h logrus.Hook) bool { return reflect.TypeOf(h) == kind })
	l.Logger.AddHook(hook)
}

// dropHooks removes every registered hook matching match
func (l *Logger) dropHooks(match func(logrus.Hook) bool) {
	kept := make(logrus.LevelHooks)
	for level, hooks := range l.Hooks {
		for _, h := range hooks {
			if !match(h) {
				kept[level] = append(kept[level], h)
			}
		}
	}
	l.ReplaceHooks(kept)
}

// SetVersion sets the version for logging
func SetVersion(v string) { StdLogger().SetVersion(v) }

// New initializes the standard logger
func New(c *config.Config) (func(), error) { return StdLogger().Init(c) }

// WithFields returns an entry with the given fields
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return StdLogger().entryFromContext(ctx).WithFields(fields)
}

// Debug logs debug message
func Debug(ctx context.Context, args ...any) { StdLogger().Debug(ctx, args...) }

// Info logs info message
func Info(ctx context.Context, args ...any) { StdLogger().Info(ctx, args...) }

// Warn logs warn message
func Warn(ctx context.Context, args ...any) { StdLogger().Warn(ctx, args...) }

// Error logs error message
func Error(ctx context.Context, args ...any) { StdLogger().Error(ctx, args...) }

// Debugf logs debug message with format
func Debugf(ctx context.Context, format string, args ...any) {
	StdLogger().Debugf(ctx, format, args...)
}

// Infof logs info message with format
func Infof(ctx context.Context, format string, args ...any) {
	StdLogger().Infof(ctx, format, args...)
}

// Warnf logs warn message with format
func Warnf(ctx context.Context, format string, args ...any) {
	StdLogger().Warnf(ctx, format, args...)
}

// Errorf logs error message with format
func Errorf(ctx context.Context, format string, args ...any) {
	StdLogger().Errorf(ctx, format, args...)
}

// SetOutput sets the output destination for the standard logger
func SetOutput(out io.Writer) { StdLogger().SetOutput(out) }
