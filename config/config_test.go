package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CanvasSize != 1024 || cfg.CloseRadius != 20 || !cfg.AskSavePath {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{CanvasSize: 4096, PreviewMaxSize: -1, RotateStep: 360, JPEGQuality: 0}
	_ = c.Validate()
	if c.CanvasSize != 1024 {
		t.Fatalf("canvas size not clamped: %d", c.CanvasSize)
	}
	if c.PreviewMaxSize != 300 || c.RotateStep != 90 || c.JPEGQuality != 100 {
		t.Fatalf("unexpected clamp result: %+v", c)
	}
	small := &Config{CanvasSize: 200}
	_ = small.Validate()
	if small.PreviewMaxSize != 200 {
		t.Fatalf("preview should not exceed canvas: %d", small.PreviewMaxSize)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	c := DefaultConfig()
	c.DarkMode = true
	c.LastOpenDir = "/tmp/pictures"
	c.CanvasSize = 512
	if err := c.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.DarkMode || got.LastOpenDir != "/tmp/pictures" || got.CanvasSize != 512 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if cfg == nil || cfg.CanvasSize != 1024 {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}
