package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
	atom zap.AtomicLevel

	buildLogger = func(config zap.Config) (*zap.Logger, error) {
		return config.Build(zap.AddCallerSkip(1))
	}
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
)

// Init initializes the logger. "development" gets a colored console encoder,
// "test" discards everything.
func Init(env string) {
	once.Do(func() {
		if env == "test" {
			log = zap.NewNop()
			atom = zap.NewAtomicLevelAt(zapcore.FatalLevel)
			return
		}

		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		var err error
		log, err = buildLogger(config)
		if err != nil {
			panic(err)
		}
		atom = config.Level
	})
}

// GetLogger returns the underlying zap logger, or a no-op logger before Init.
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// WithContext adds context fields (request_id) to the logger
func WithContext(ctx context.Context) *zap.Logger {
	base := GetLogger()
	if ctx == nil {
		return base
	}

	var fields []zap.Field
	if reqID, ok := ctx.Value("request_id").(string); ok { // gin stores the key as a plain string
		fields = append(fields, zap.String("request_id", reqID))
	} else if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		fields = append(fields, zap.String("request_id", reqID))
	}

	if len(fields) > 0 {
		return base.With(fields...)
	}
	return base
}

// Info logs a message at InfoLevel
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// LogRequest logs an HTTP request details
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	WithContext(ctx).Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	)
}

// Sync flushes buffered entries; safe to call before Init.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
