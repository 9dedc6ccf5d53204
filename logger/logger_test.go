package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })
	return logs
}

func TestWithFieldsAttachesContextFields(t *testing.T) {
	logs := observe(t)

	ctx := WithFields(context.Background(), "request_id", "abc")
	ctx = WithFields(ctx, "career_id", "registered-nurse")
	Warnf(ctx, "cache miss for %s", "key")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Message != "cache miss for key" {
		t.Errorf("unexpected message %q", entry.Message)
	}
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %s", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["request_id"] != "abc" || fields["career_id"] != "registered-nurse" {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestLoggingWithoutContextFields(t *testing.T) {
	logs := observe(t)

	Errorf(context.Background(), "boom %d", 1)
	Info(nil, "plain")

	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	if len(logs.All()[0].Context) != 0 {
		t.Errorf("expected no context fields")
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitBuildsLogger(t *testing.T) {
	t.Cleanup(func() { Set(zap.NewNop()) })
	if err := Init("debug", true); err != nil {
		t.Fatalf("init: %v", err)
	}
}
