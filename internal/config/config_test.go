package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	cfg.Mail.SMTP.Username = "me@example.com"
	_, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("default config invalid: %v", vr.Errors)
	}
}

func TestNormalizeAndValidateCatchesBadValues(t *testing.T) {
	cfg := Default()
	cfg.Search.RequestsPerSecond = 0
	cfg.Search.Depth = "Deep"
	cfg.Mail.Transport = "carrier-pigeon"
	cfg.Mail.DelayMinSeconds = 10
	cfg.Mail.DelayMaxSeconds = 5

	_, vr := NormalizeAndValidate(cfg)
	if vr.OK() {
		t.Fatal("expected validation errors")
	}
	if len(vr.Errors) < 4 {
		t.Fatalf("expected at least 4 errors, got %v", vr.Errors)
	}
}

func TestNormalizeLowercasesTransport(t *testing.T) {
	cfg := Default()
	cfg.Mail.Transport = " SMTP "
	cfg.Mail.SMTP.Username = "me@example.com"
	out, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("unexpected errors: %v", vr.Errors)
	}
	if out.Mail.Transport != "smtp" {
		t.Fatalf("transport not normalized: %q", out.Mail.Transport)
	}
}

func TestEnsureUserConfigWritesDefaultsOnce(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if path != filepath.Join(dir, "config.yml") {
		t.Fatalf("unexpected path %q", path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Search.DaysFilter != 45 || cfg.Finder.MinConfidence != 50 {
		t.Fatalf("defaults not written: %+v", cfg)
	}

	// second call must not rewrite
	cfg.App.Port = 9999
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := EnsureUserConfig(dir); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	cfg2, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg2.App.Port != 9999 {
		t.Fatalf("bootstrap clobbered user settings: %+v", cfg2.App)
	}
}

func TestIsPlaceholder(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"  ", true},
		{"your_tavily_api_key_here", true},
		{"tvly-abc123", false},
	}
	for _, c := range cases {
		if got := IsPlaceholder(c.in); got != c.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if err := RequireKey("TAVILY_API_KEY", "your_tavily_api_key_here"); err == nil {
		t.Fatal("expected error for placeholder key")
	}
	if err := RequireKey("TAVILY_API_KEY", "tvly-abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
