package namefilter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_NilConfig(t *testing.T) {
	nf := New(nil)

	if nf.IsEnabled() {
		t.Error("Filter should be disabled when config is nil")
	}
	if result := nf.Check("!!"); !result.Allowed {
		t.Error("Should allow any name when filter is disabled")
	}
}

func TestCheck_Shape(t *testing.T) {
	nf := New(DefaultConfig())

	tests := []struct {
		name    string
		allowed bool
	}{
		{"Gwen", true},
		{"Fargrim Stonefist", true},
		{"D'arcy", true},
		{"Anne-Marie", true},
		{"Éowyn", true},
		{"A", false},                         // Too short
		{"", false},                          // Empty
		{"Abcdefghijklmnopqrstuvwxy", false}, // 25 runes
		{"1Borin", false},                    // Leading digit
		{"-Borin", false},                    // Leading hyphen
		{"Bor1n", false},                     // Digit inside
		{"Borin!", false},                    // Punctuation
	}

	for _, tc := range tests {
		result := nf.Check(tc.name)
		if result.Allowed != tc.allowed {
			t.Errorf("Check(%q) = %v (%s), want %v", tc.name, result.Allowed, result.Reason, tc.allowed)
		}
		if !result.Allowed && result.Reason == "" {
			t.Errorf("Check(%q) rejected without a reason", tc.name)
		}
	}
}

func TestCheck_BannedLists(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BannedWords = []string{"admin", "gm"}
	cfg.BannedNames = []string{"Adventurer"}
	nf := New(cfg)

	tests := []struct {
		name    string
		allowed bool
	}{
		{"Admin", false},      // Case insensitive
		{"Superadmin", false}, // Contains banned word
		{"Gmork", false},      // Contains banned word
		{"adventurer", false}, // Exact banned name
		{"Adventurers", true}, // Not an exact match
		{"Hector", true},
	}

	for _, tc := range tests {
		if result := nf.Check(tc.name); result.Allowed != tc.allowed {
			t.Errorf("Check(%q) = %v, want %v", tc.name, result.Allowed, tc.allowed)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Gwen  ":             "Gwen",
		"Fargrim \t Stonefist": "Fargrim Stonefist",
		"":                     "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.yaml")
	content := `enabled: true
max_length: 8
banned_words:
  - dragon
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MinLength != DefaultMinLength {
		t.Errorf("MinLength = %d, want default %d", cfg.MinLength, DefaultMinLength)
	}

	nf := New(cfg)
	if nf.Check("Elenadorn").Allowed {
		t.Error("Expected 9-rune name to exceed max_length 8")
	}
	if nf.Check("Dragonx").Allowed {
		t.Error("Expected banned word to be rejected")
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
