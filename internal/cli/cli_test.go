package cli

import (
	"testing"

	"github.com/jvillar/filtersquash/internal/config"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestGlobalsStruct(t *testing.T) {
	globals := Globals{
		JSON:    true,
		Config:  "/path/to/config.yaml",
		Verbose: true,
		Quiet:   false,
		NoColor: true,
	}

	if !globals.JSON {
		t.Error("JSON should be true")
	}
	if globals.Config != "/path/to/config.yaml" {
		t.Errorf("Config = %q, want %q", globals.Config, "/path/to/config.yaml")
	}
	if !globals.Verbose {
		t.Error("Verbose should be true")
	}
	if globals.Quiet {
		t.Error("Quiet should be false")
	}
	if !globals.NoColor {
		t.Error("NoColor should be true")
	}
}

func TestNewContext(t *testing.T) {
	globals := &Globals{
		JSON:    true,
		Verbose: true,
	}

	ctx, err := NewContext(globals)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if ctx.Formatter == nil {
		t.Fatal("Formatter should not be nil")
	}
	if !ctx.Formatter.JSON {
		t.Error("Formatter.JSON should be true")
	}
	if !ctx.Formatter.Verbose {
		t.Error("Formatter.Verbose should be true")
	}
	if ctx.Globals != globals {
		t.Error("Globals not set correctly")
	}
}

func TestNewContextWithConfigPath(t *testing.T) {
	globals := &Globals{
		Config: "/nonexistent/config.yaml",
	}

	ctx, err := NewContext(globals)
	// Should not error even with invalid config path; falls back to defaults
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	if ctx.Config == nil {
		t.Error("Config should not be nil (should fall back to defaults)")
	}
	if ctx.Config.Auth.TokenStore != config.TokenStoreKeyring {
		t.Errorf("fallback TokenStore = %q, want %q", ctx.Config.Auth.TokenStore, config.TokenStoreKeyring)
	}
}

func TestLoadConfigExplicitPathError(t *testing.T) {
	cfg, err := loadConfig(&Globals{Config: "/nonexistent/config.yaml"})
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
	if cfg != nil {
		t.Errorf("cfg = %+v, want nil on load error", cfg)
	}
}

func TestLoadConfigNoExplicitPath(t *testing.T) {
	if config.Exists() {
		t.Skip("user config file present")
	}

	// Without --config and without a config file, loading is a clean
	// no-op rather than an error.
	cfg, err := loadConfig(&Globals{})
	if err != nil {
		t.Errorf("loadConfig() error = %v with no config file present", err)
	}
	if cfg != nil {
		t.Errorf("cfg = %+v, want nil", cfg)
	}
}

func TestSquashCmdDefaults(t *testing.T) {
	cmd := SquashCmd{}

	// Mutation must be opt-in.
	if cmd.Apply {
		t.Error("Apply should be false by default")
	}
	if cmd.Backup != "" {
		t.Errorf("Backup = %q, want empty", cmd.Backup)
	}
}

func TestConfigSetCmdUnknownKey(t *testing.T) {
	globals := &Globals{}
	ctx, err := NewContext(globals)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	cmd := ConfigSetCmd{Key: "no.such.key", Value: "x"}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestConfigSetCmdValidation(t *testing.T) {
	globals := &Globals{}
	ctx, err := NewContext(globals)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	tests := []struct {
		key   string
		value string
	}{
		{"auth.token_store", "vault"},
		{"defaults.format", "xml"},
	}

	for _, tt := range tests {
		cmd := ConfigSetCmd{Key: tt.key, Value: tt.value}
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("set %s=%s should be rejected", tt.key, tt.value)
		}
	}
}
