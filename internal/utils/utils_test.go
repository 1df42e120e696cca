package utils

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", true)
	logger.Debug("hidden")
	logger.Info("visible", slog.String("tenant", "t1"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"service":"tenant-posture"`) || !strings.Contains(out, `"tenant":"t1"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestAppErrorStatus(t *testing.T) {
	err := fmt.Errorf("fetch org: %w", NewStatusError("FetchOrganization", 404, "tenant not found"))
	if StatusCodeOf(err) != 404 {
		t.Fatalf("expected status 404, got %d", StatusCodeOf(err))
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected status in message, got %q", err.Error())
	}

	inner := errors.New("dial tcp: refused")
	wrapped := NewAppError("ListStandardTemplates", "upstream request failed", inner)
	if !errors.Is(wrapped, inner) {
		t.Fatalf("expected AppError to unwrap")
	}
	if StatusCodeOf(wrapped) != 0 || StatusCodeOf(inner) != 0 {
		t.Fatalf("expected no status code")
	}
}
