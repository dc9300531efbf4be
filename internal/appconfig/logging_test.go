package appconfig_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/duskhq/queuectl/internal/appconfig"
)

func TestNewLoggerNonNil(t *testing.T) {
	cfg := &appconfig.Config{LogLevel: "debug"}
	log := appconfig.NewLogger(cfg)
	if log == nil {
		t.Fatal("expected a non-nil logger")
	}
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug level to be enabled")
	}
}

func TestNewLoggerDefaultLevel(t *testing.T) {
	cfg := &appconfig.Config{}
	log := appconfig.NewLogger(cfg)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug level disabled by default")
	}
	if !log.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info level enabled by default")
	}
}
