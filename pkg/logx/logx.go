package logx

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls which messages are emitted
type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// Fields are structured key/value pairs attached to a log line
type Fields map[string]any

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger(false)
)

func newLogger(development bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// SetLevel changes the minimum level at runtime
func SetLevel(l Level) {
	level.SetLevel(zapcore.Level(l))
}

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetDevelopment switches to the human readable console encoder
func SetDevelopment(development bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(development)
}

// SetLogger replaces the backing logger, mainly for tests
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered entries
func Sync() {
	_ = current().Sync()
}

func Debug(msg string)                  { current().Debug(msg) }
func Debugf(format string, args ...any) { current().Debugf(format, args...) }
func Info(msg string)                   { current().Info(msg) }
func Infof(format string, args ...any)  { current().Infof(format, args...) }
func Warn(msg string)                   { current().Warn(msg) }
func Warnf(format string, args ...any)  { current().Warnf(format, args...) }
func Error(msg string)                  { current().Error(msg) }
func Errorf(format string, args ...any) { current().Errorf(format, args...) }
func Fatalf(format string, args ...any) { current().Fatalf(format, args...) }

// Entry is a logger bound to a set of fields
type Entry struct {
	s *zap.SugaredLogger
}

// With returns an Entry carrying fields
func With(fields Fields) *Entry {
	kv := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &Entry{s: current().With(kv...)}
}

func (e *Entry) Debug(msg string) { e.s.Debug(msg) }
func (e *Entry) Info(msg string)  { e.s.Info(msg) }
func (e *Entry) Warn(msg string)  { e.s.Warn(msg) }
func (e *Entry) Error(msg string) { e.s.Error(msg) }
