package logutil

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	defaultLogger *zap.Logger = zap.NewNop()
	initOnce      sync.Once
)

// Init builds the process logger. level is one of debug/info/warn/error;
// console controls whether output goes to stderr in console encoding
// instead of JSON.
func Init(level string, console bool) *zap.Logger {
	initOnce.Do(func() {
		lvl := zapcore.InfoLevel
		_ = lvl.Set(level)
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		if console {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		logger, err := cfg.Build(zap.AddCallerSkip(0))
		if err != nil {
			logger = zap.NewNop()
		}
		defaultLogger = logger
	})
	return defaultLogger
}

// WithLogger returns a context carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// GetLogger returns the request-scoped logger if present, else the
// process logger.
func GetLogger(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	return defaultLogger
}
