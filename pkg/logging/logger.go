package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the encoder of a zap-backed logger
type Format string

const (
	// FormatJSON writes one JSON object per line (production)
	FormatJSON Format = "json"
	// FormatConsole writes human-readable lines (development)
	FormatConsole Format = "console"
)

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// NewLogger creates a zap-backed logger writing to writer
func NewLogger(writer io.Writer, level Level, format Format) *ZapLogger {
	atomic := zap.NewAtomicLevelAt(level.zapLevel())

	var encoder zapcore.Encoder
	if format == FormatConsole {
		encoder = zapcore.NewConsoleEncoder(encoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(writer)), atomic)
	return &ZapLogger{base: zap.New(core), level: atomic}
}

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(writer io.Writer, level Level) *ZapLogger {
	return NewLogger(writer, level, FormatJSON)
}

// NewDefaultLogger creates a logger that writes to stdout at INFO level.
// Production environments get JSON, everything else the console encoder.
func NewDefaultLogger(environment string) *ZapLogger {
	format := FormatConsole
	if environment == "production" {
		format = FormatJSON
	}
	return NewLogger(os.Stdout, InfoLevel, format)
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// Debug logs a debug-level message
func (l *ZapLogger) Debug(msg string, fields ...Field) {
	l.base.Debug(msg, toZap(fields)...)
}

// Info logs an info-level message
func (l *ZapLogger) Info(msg string, fields ...Field) {
	l.base.Info(msg, toZap(fields)...)
}

// Warn logs a warning-level message
func (l *ZapLogger) Warn(msg string, fields ...Field) {
	l.base.Warn(msg, toZap(fields)...)
}

// Error logs an error-level message
func (l *ZapLogger) Error(msg string, fields ...Field) {
	l.base.Error(msg, toZap(fields)...)
}

// With creates a child logger with the given fields pre-set. The child
// shares the parent's level.
func (l *ZapLogger) With(fields ...Field) Logger {
	return &ZapLogger{base: l.base.With(toZap(fields)...), level: l.level}
}

// SetLevel sets the minimum log level
func (l *ZapLogger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// GetLevel returns the current log level
func (l *ZapLogger) GetLevel() Level {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.WarnLevel:
		return WarnLevel
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Zap exposes the underlying zap logger
func (l *ZapLogger) Zap() *zap.Logger {
	return l.base
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

// Global default logger
var (
	defaultLogger Logger
	once          sync.Once
	mu            sync.RWMutex
)

// DefaultLogger returns the global default logger
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		l := NewDefaultLogger(os.Getenv("ARTNET_ENV"))
		l.SetLevel(level)
		mu.Lock()
		if defaultLogger == nil {
			defaultLogger = l
		}
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// Helper functions that use the default logger

// Info logs an info-level message using the default logger
func Info(msg string, fields ...Field) {
	DefaultLogger().Info(msg, fields...)
}

// Warn logs a warning-level message using the default logger
func Warn(msg string, fields ...Field) {
	DefaultLogger().Warn(msg, fields...)
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs the operation with its duration and returns the elapsed time
func (t *TimedOperation) End() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Info(t.msg, append(t.fields, Latency(elapsed))...)
	return elapsed
}

// EndWithLevel logs the operation at the specified level with its duration
func (t *TimedOperation) EndWithLevel(level Level, msg string) time.Duration {
	elapsed := time.Since(t.start)
	fields := append(t.fields, Latency(elapsed))
	switch level {
	case DebugLevel:
		t.logger.Debug(msg, fields...)
	case InfoLevel:
		t.logger.Info(msg, fields...)
	case WarnLevel:
		t.logger.Warn(msg, fields...)
	case ErrorLevel:
		t.logger.Error(msg, fields...)
	}
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, append(t.fields, Latency(elapsed), Error(err))...)
	return elapsed
}
