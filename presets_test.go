package cardstream

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPresetRegistry_EmbeddedCatalog(t *testing.T) {
	reg := GetPresetRegistry()

	for _, name := range []string{"fast", "standard", "slow", "glacial"} {
		cfg, err := reg.Get(name)
		if err != nil {
			t.Errorf("Get(%q): %v", name, err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("embedded preset %q is invalid: %v", name, err)
		}
	}

	standard, err := reg.Get("standard")
	if err != nil {
		t.Fatalf("Get(standard): %v", err)
	}
	if standard != DefaultConfig() {
		t.Errorf("standard preset = %+v, want the library default %+v", standard, DefaultConfig())
	}
}

func TestPresetRegistry_UnknownPreset(t *testing.T) {
	_, err := GetPreset("does-not-exist")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestPresetRegistry_Names(t *testing.T) {
	names := GetPresetRegistry().Names()
	if len(names) < 4 {
		t.Fatalf("expected at least the 4 embedded presets, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestPresetRegistry_Register(t *testing.T) {
	reg := GetPresetRegistry()

	custom := Config{TokensPerSecond: 77, ThinkingDelay: 10 * time.Millisecond}
	if err := reg.Register("test-custom", custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := reg.Get("test-custom")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != custom {
		t.Errorf("Get = %+v, want %+v", got, custom)
	}

	if err := reg.Register("test-bad", Config{TokensPerSecond: 0}); err == nil {
		t.Error("registering an invalid config should fail")
	}
}

func TestPresetRegistry_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	yaml := `version: "1.0.0"
last_updated: "2025-06-01"
presets:
  test-file:
    tokens_per_second: 13
    thinking_delay_ms: 250
  fast:
    tokens_per_second: 500
    thinking_delay_ms: 0
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadPresetsFromFile(path); err != nil {
		t.Fatalf("LoadPresetsFromFile: %v", err)
	}

	cfg, err := GetPreset("test-file")
	if err != nil {
		t.Fatalf("Get(test-file): %v", err)
	}
	if cfg.TokensPerSecond != 13 || cfg.ThinkingDelay != 250*time.Millisecond {
		t.Errorf("loaded config = %+v", cfg)
	}

	// File entries override embedded ones of the same name.
	fast, err := GetPreset("fast")
	if err != nil {
		t.Fatalf("Get(fast): %v", err)
	}
	if fast.TokensPerSecond != 500 {
		t.Errorf("fast.TokensPerSecond = %v, want 500", fast.TokensPerSecond)
	}
}

func TestPresetRegistry_LoadFromMissingFile(t *testing.T) {
	if err := LoadPresetsFromFile("/nonexistent/presets.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
