package help

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTopics(t *testing.T) {
	h := Default()

	if !strings.HasPrefix(h.General(), "Commands:") {
		t.Errorf("unexpected general help: %q", h.General())
	}

	tests := []struct {
		topic string
		want  string
	}{
		{"inc", "27 points"},
		{"DEC", "27 points"},
		{"calling", "options"},
		{"hair_color", "Cycles"},
		{"finalize", "saves the character"},
	}
	for _, tt := range tests {
		if got := h.Topic(tt.topic); !strings.Contains(got, tt.want) {
			t.Errorf("Topic(%q) = %q, want it to contain %q", tt.topic, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	h := Default()

	if h.Text("") != h.General() {
		t.Error("empty topic should return general help")
	}
	got := h.Text("dance")
	if !strings.Contains(got, "No help available for 'dance'") {
		t.Errorf("unexpected not-found text: %q", got)
	}
}

func TestLoad(t *testing.T) {
	content := `
topics:
  name:
    text: |
      Custom name help
  lore:
    aliases: [history]
    text: |
      The realm is old.
`
	path := filepath.Join(t.TempDir(), "help.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	h, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load help: %v", err)
	}

	if got := h.Topic("name"); got != "Custom name help" {
		t.Errorf("expected overridden topic, got %q", got)
	}
	if got := h.Topic("history"); got != "The realm is old." {
		t.Errorf("expected new topic via alias, got %q", got)
	}
	if h.Topic("inc") == "" {
		t.Error("built-in topics should survive a partial file")
	}
	if h.General() != Default().General() {
		t.Error("general help should fall back to the built-in text")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load("/nonexistent/help.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("topics: [unclosed"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
