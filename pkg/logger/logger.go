package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         = zap.NewNop()
	once        sync.Once
	buildLogger = func(cfg zap.Config) (*zap.Logger, error) { return cfg.Build(zap.AddCallerSkip(1)) }
)

type ContextKey string

const (
	RequestIDKey     ContextKey = "request_id"
	WalletAddressKey ContextKey = "wallet_address"
)

// Init initializes the logger. Development gets a colored console encoder,
// anything else JSON with ISO8601 timestamps.
func Init(env string) {
	once.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		l, err := buildLogger(config)
		if err != nil {
			panic(err)
		}
		log = l
	})
}

// GetLogger returns the underlying zap logger
func GetLogger() *zap.Logger {
	return log
}

// Sync flushes buffered entries
func Sync() {
	_ = log.Sync()
}

// WithContext adds request_id and wallet_address from ctx to the logger.
// Gin stores request values under plain string keys, so both forms are checked.
func WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}

	var fields []zap.Field
	if reqID := lookup(ctx, RequestIDKey); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if addr := lookup(ctx, WalletAddressKey); addr != "" {
		fields = append(fields, zap.String("wallet_address", addr))
	}

	if len(fields) > 0 {
		return log.With(fields...)
	}
	return log
}

func lookup(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	if v, ok := ctx.Value(string(key)).(string); ok {
		return v
	}
	return ""
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

// LogRequest logs an HTTP request. Server errors log at error level.
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	}
	if status >= 500 {
		WithContext(ctx).Error("HTTP Request", fields...)
		return
	}
	WithContext(ctx).Info("HTTP Request", fields...)
}
