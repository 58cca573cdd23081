package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.PrinterURL != "" {
		t.Errorf("PrinterURL = %q, want empty", cfg.PrinterURL)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.LastUpdated != nil {
		t.Errorf("LastUpdated = %v, want nil", cfg.LastUpdated)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	updated := time.Date(2026, 8, 26, 12, 30, 0, 0, time.UTC)
	cfg := Config{
		PrinterURL:     "http://192.168.1.13/DevMgmt/ProductUsageDyn.xml",
		TimeoutSeconds: 10,
		LastUpdated:    &updated,
	}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got.PrinterURL != cfg.PrinterURL {
		t.Errorf("PrinterURL = %q, want %q", got.PrinterURL, cfg.PrinterURL)
	}
	if got.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", got.TimeoutSeconds)
	}
	if got.LastUpdated == nil || !got.LastUpdated.Equal(updated) {
		t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, updated)
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.yaml")

	if err := Default().Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("printer_url: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("printer_url: http://x/DevMgmt/ProductUsageDyn.xml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default %d for partial file", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}
