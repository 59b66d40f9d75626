// Package namefilter validates character names: shape rules plus banned
// word and banned name lists.
package namefilter

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Default length bounds, in runes.
const (
	DefaultMinLength = 2
	DefaultMaxLength = 24
)

// Config holds the name filter configuration
type Config struct {
	Enabled     bool     `yaml:"enabled"`
	MinLength   int      `yaml:"min_length"`
	MaxLength   int      `yaml:"max_length"`
	BannedWords []string `yaml:"banned_words"`
	BannedNames []string `yaml:"banned_names"`
}

// DefaultConfig returns an enabled filter with the default bounds and no lists.
func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// Result contains the outcome of checking a name
type Result struct {
	Allowed bool   // Whether the name is allowed
	Reason  string // Reason for rejection (if not allowed)
}

// NameFilter handles name validation
type NameFilter struct {
	enabled     bool
	minLength   int
	maxLength   int
	bannedWords []string // Lowercase banned words (partial match)
	bannedNames []string // Lowercase banned names (exact match)
}

// New creates a new NameFilter from a Config. A nil config disables the
// filter entirely.
func New(cfg *Config) *NameFilter {
	if cfg == nil {
		return &NameFilter{enabled: false}
	}

	nf := &NameFilter{
		enabled:     cfg.Enabled,
		minLength:   cfg.MinLength,
		maxLength:   cfg.MaxLength,
		bannedWords: make([]string, 0, len(cfg.BannedWords)),
		bannedNames: make([]string, 0, len(cfg.BannedNames)),
	}
	if nf.minLength <= 0 {
		nf.minLength = 1
	}
	if nf.maxLength <= 0 {
		nf.maxLength = DefaultMaxLength
	}

	for _, word := range cfg.BannedWords {
		if word != "" {
			nf.bannedWords = append(nf.bannedWords, strings.ToLower(word))
		}
	}
	for _, name := range cfg.BannedNames {
		if name != "" {
			nf.bannedNames = append(nf.bannedNames, strings.ToLower(name))
		}
	}

	return nf
}

// LoadConfig loads name filter configuration from a YAML file, on top of
// DefaultConfig.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Normalize trims the name and collapses runs of whitespace to one space.
func Normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Check validates a normalized name against the filter rules.
func (nf *NameFilter) Check(name string) Result {
	if !nf.enabled {
		return Result{Allowed: true}
	}

	n := utf8.RuneCountInString(name)
	if n < nf.minLength {
		return Result{Reason: "That name is too short."}
	}
	if n > nf.maxLength {
		return Result{Reason: "That name is too long."}
	}

	for i, r := range name {
		if i == 0 && !unicode.IsLetter(r) {
			return Result{Reason: "Names must start with a letter."}
		}
		if !unicode.IsLetter(r) && r != ' ' && r != '\'' && r != '-' {
			return Result{Reason: "Names may only contain letters, spaces, apostrophes and hyphens."}
		}
	}

	nameLower := strings.ToLower(name)

	for _, banned := range nf.bannedNames {
		if nameLower == banned {
			return Result{Reason: "That name is not allowed."}
		}
	}

	for _, word := range nf.bannedWords {
		if strings.Contains(nameLower, word) {
			return Result{Reason: "That name contains a word that is not allowed."}
		}
	}

	return Result{Allowed: true}
}

// IsEnabled returns whether the filter is enabled
func (nf *NameFilter) IsEnabled() bool {
	return nf.enabled
}
