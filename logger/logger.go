// Package logger is a thin context-aware wrapper around a process-wide zap logger.
package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu   sync.RWMutex
	base = zap.NewNop().Sugar()
)

// Init builds the process logger. Development mode switches to the console encoder.
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Set(l)
	return nil
}

// Set replaces the process logger.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l.Sugar()
}

func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// WithFields returns a context whose log lines carry the given key/value pairs.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	fields, _ := ctx.Value(ctxKey{}).([]any)
	merged := make([]any, 0, len(fields)+len(keysAndValues))
	merged = append(merged, fields...)
	merged = append(merged, keysAndValues...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func fromContext(ctx context.Context) *zap.SugaredLogger {
	mu.RLock()
	l := base
	mu.RUnlock()

	if ctx == nil {
		return l
	}
	if fields, ok := ctx.Value(ctxKey{}).([]any); ok && len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

func Debugf(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Debugf(template, args...)
}

func Infof(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Infof(template, args...)
}

func Info(ctx context.Context, msg string) {
	fromContext(ctx).Info(msg)
}

func Warnf(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Warnf(template, args...)
}

func Errorf(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Errorf(template, args...)
}

func Error(ctx context.Context, msg string) {
	fromContext(ctx).Error(msg)
}

// Fatal logs err and exits the process.
func Fatal(ctx context.Context, err error) {
	fromContext(ctx).Fatal(err)
}
