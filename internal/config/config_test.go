package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing file", err)
	}

	if cfg.PlatformURL != "" || cfg.APIToken != "" {
		t.Errorf("connection settings = %q/%q, want empty defaults", cfg.PlatformURL, cfg.APIToken)
	}
	if len(cfg.Providers) == 0 {
		t.Error("default provider list is empty")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	want := New()
	want.PlatformURL = "https://catalogue.example.org"
	want.APIToken = "secret-token"

	if err := Save(want, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.PlatformURL != want.PlatformURL {
		t.Errorf("platform url = %q, want %q", got.PlatformURL, want.PlatformURL)
	}
	if got.APIToken != want.APIToken {
		t.Errorf("api token = %q, want %q", got.APIToken, want.APIToken)
	}
	if len(got.Providers) != len(want.Providers) {
		t.Fatalf("got %d providers, want %d", len(got.Providers), len(want.Providers))
	}
	for i := range want.Providers {
		if got.Providers[i] != want.Providers[i] {
			t.Errorf("provider %d = %+v, want %+v", i, got.Providers[i], want.Providers[i])
		}
	}
}

func TestParseOptions(t *testing.T) {
	options, err := ParseOptions("springer:Springer, ebl:EBL ,custom")
	if err != nil {
		t.Fatalf("ParseOptions() error = %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("got %d options, want 3", len(options))
	}
	if options[0].Value != "springer" || options[0].Label != "Springer" {
		t.Errorf("option 0 = %+v", options[0])
	}
	if options[1].Value != "ebl" || options[1].Label != "EBL" {
		t.Errorf("option 1 = %+v, want whitespace trimmed", options[1])
	}
	// A bare value uses itself as the label.
	if options[2].Value != "custom" || options[2].Label != "custom" {
		t.Errorf("option 2 = %+v", options[2])
	}
}

func TestParseOptionsRejectsEmptyList(t *testing.T) {
	if _, err := ParseOptions(" , "); err == nil {
		t.Error("ParseOptions() accepted an empty list")
	}
	if _, err := ParseOptions(":Label"); err == nil {
		t.Error("ParseOptions() accepted an entry with an empty value")
	}
}

func TestFormatOptionsRoundTrip(t *testing.T) {
	raw := FormatOptions(defaultProviders())
	parsed, err := ParseOptions(raw)
	if err != nil {
		t.Fatalf("ParseOptions() error = %v on formatted output %q", err, raw)
	}
	if len(parsed) != len(defaultProviders()) {
		t.Errorf("round trip lost entries: %q", raw)
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingPlatformURL) {
		t.Errorf("Validate() = %v, want ErrMissingPlatformURL", err)
	}

	cfg.PlatformURL = "https://catalogue.example.org"
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIToken) {
		t.Errorf("Validate() = %v, want ErrMissingAPIToken", err)
	}

	cfg.APIToken = "token"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	cfg.Providers = nil
	if err := cfg.Validate(); !errors.Is(err, ErrNoProviders) {
		t.Errorf("Validate() = %v, want ErrNoProviders", err)
	}
}
