package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.WarnContext(context.Background(), "row rejected", "row", 3, "error", errors.New("bad runs"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["row"] != int64(3) {
		t.Fatalf("unexpected row field: %#v", fields["row"])
	}
	if fields["error"] != "bad runs" {
		t.Fatalf("unexpected error field: %#v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_WithAndNamed(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core)).Named("ingestion").With("match", "m-1")

	logger.Debug("hidden")
	logger.Info("processed")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected debug entry to be filtered, got %d entries", len(entries))
	}
	if entries[0].LoggerName != "ingestion" {
		t.Fatalf("unexpected logger name: %q", entries[0].LoggerName)
	}
	if entries[0].ContextMap()["match"] != "m-1" {
		t.Fatalf("expected match field on child logger")
	}
}

func TestNewConsole_WritesToGivenWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsole(LevelInfo, &buf)
	logger.Info("fielding row unclassified", "text", "retired hurt")
	_ = logger.Sync()

	if !strings.Contains(buf.String(), "fielding row unclassified") {
		t.Fatalf("expected message in console output, got %q", buf.String())
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil child logger")
	}
}
