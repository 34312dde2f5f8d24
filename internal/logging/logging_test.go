package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewRejectsBadOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Level: "verbose"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewBuildsRequestedFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"console", "json"} {
		if _, err := New(Options{Level: "debug", Format: format}); err != nil {
			t.Fatalf("format %s: %v", format, err)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	t.Parallel()

	log := NewNop()
	if log.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger must not enable any level")
	}
	log.Info("ignored") // must not panic
}
