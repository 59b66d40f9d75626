// Package character holds the data collected by the character-creation flow:
// name, lineage, calling, background, ability scores and appearance.
package character

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option is one selectable entry of a category, in display order.
type Option struct {
	ID          string
	Label       string
	Description string
}

type catalog []Option

func (c catalog) valid(i int) bool {
	return i >= 0 && i < len(c)
}

func (c catalog) label(i int) string {
	if !c.valid(i) {
		return "Unknown"
	}
	return c[i].Label
}

func (c catalog) id(i int) string {
	if !c.valid(i) {
		return ""
	}
	return c[i].ID
}

// parse matches an ID, label or ordinal, case-insensitive.
func (c catalog) parse(kind, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, opt := range c {
		if strings.EqualFold(s, opt.ID) || strings.EqualFold(s, opt.Label) {
			return i, nil
		}
	}
	if ord, err := strconv.Atoi(s); err == nil && c.valid(ord) {
		return ord, nil
	}
	return 0, fmt.Errorf("unknown %s: %s", kind, s)
}

func (c catalog) options() []Option {
	return append([]Option(nil), c...)
}

// CatalogText is the optional YAML overlay for labels and descriptions,
// keyed by category then option ID.
type CatalogText struct {
	Lineages    map[string]OptionText `yaml:"lineages"`
	Callings    map[string]OptionText `yaml:"callings"`
	Backgrounds map[string]OptionText `yaml:"backgrounds"`
}

// OptionText overrides the display text of one option.
type OptionText struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// LoadCatalogText reads a YAML overlay and applies it to the built-in
// categories. IDs and order never change. An unknown ID fails the whole load
// and nothing is applied.
func LoadCatalogText(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var text CatalogText
	if err := yaml.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	// Work on copies so a bad entry leaves every category untouched.
	l, c, b := lineages.options(), callings.options(), backgrounds.options()
	if err := applyText(l, "lineage", text.Lineages); err != nil {
		return err
	}
	if err := applyText(c, "calling", text.Callings); err != nil {
		return err
	}
	if err := applyText(b, "background", text.Backgrounds); err != nil {
		return err
	}
	lineages, callings, backgrounds = l, c, b
	return nil
}

func applyText(c catalog, kind string, text map[string]OptionText) error {
	for id, t := range text {
		idx := -1
		for i := range c {
			if c[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown %s id in catalog: %s", kind, id)
		}
		if t.Label != "" {
			c[idx].Label = t.Label
		}
		if t.Description != "" {
			c[idx].Description = t.Description
		}
	}
	return nil
}
