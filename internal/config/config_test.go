package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Display.DefaultTranslation != "RST" {
		t.Errorf("translation = %q", cfg.Display.DefaultTranslation)
	}
	if cfg.Display.ShowSettle != 400*time.Millisecond || cfg.Display.HideSettle != 800*time.Millisecond {
		t.Errorf("settle = %v/%v", cfg.Display.ShowSettle, cfg.Display.HideSettle)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LUMEN_PORT", "9000")
	t.Setenv("LUMEN_TRANSLATION", "KTB")
	t.Setenv("LUMEN_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Display.DefaultTranslation != "KTB" {
		t.Errorf("translation = %q", cfg.Display.DefaultTranslation)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("format = %q", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("LUMEN_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Error("out-of-range port should fail validation")
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("LUMEN_PORT", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}
