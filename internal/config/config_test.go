package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 5000 {
		t.Errorf("Port: got %d, want 5000", cfg.Server.Port)
	}
	if cfg.Upload.MaxMB != 16 {
		t.Errorf("MaxMB: got %d, want 16", cfg.Upload.MaxMB)
	}
	if cfg.OCR.Lang != "por" {
		t.Errorf("OCR lang: got %q, want por", cfg.OCR.Lang)
	}
	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Errorf("Addr: got %q", cfg.Server.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("OCR_ENABLED", "true")
	t.Setenv("UPLOAD_DIR", "/tmp/statements")

	cfg := Load()

	if cfg.Server.Port != 8081 {
		t.Errorf("Port: got %d, want 8081", cfg.Server.Port)
	}
	if !cfg.OCR.Enabled {
		t.Error("OCR.Enabled: got false, want true")
	}
	if cfg.Upload.Dir != "/tmp/statements" {
		t.Errorf("Upload.Dir: got %q", cfg.Upload.Dir)
	}
}
