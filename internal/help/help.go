// Package help holds the creation session's help topics, built in or loaded
// from YAML.
package help

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Topic is one help entry reachable through any of its aliases.
type Topic struct {
	Aliases []string `yaml:"aliases"`
	Text    string   `yaml:"text"`
}

// Data is the help.yaml layout.
type Data struct {
	Topics  map[string]Topic `yaml:"topics"`
	General string           `yaml:"general_help"`
}

// Help looks up topics by alias. It is read-only after construction.
type Help struct {
	data        Data
	aliasLookup map[string]string // alias -> topic name
}

// New indexes d. A topic's own name always works as an alias.
func New(d Data) *Help {
	h := &Help{data: d, aliasLookup: make(map[string]string)}
	for name, topic := range d.Topics {
		h.aliasLookup[strings.ToLower(name)] = name
		for _, alias := range topic.Aliases {
			h.aliasLookup[strings.ToLower(alias)] = name
		}
	}
	return h
}

// Default returns the built-in creation help.
func Default() *Help {
	return New(defaultData)
}

// Load reads help from a YAML file. Topics in the file replace built-in
// topics of the same name; an empty general_help keeps the built-in text.
func Load(path string) (*Help, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read help file: %w", err)
	}

	var parsed Data
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse help file: %w", err)
	}

	merged := Data{General: defaultData.General, Topics: make(map[string]Topic)}
	for name, t := range defaultData.Topics {
		merged.Topics[name] = t
	}
	for name, t := range parsed.Topics {
		merged.Topics[name] = t
	}
	if strings.TrimSpace(parsed.General) != "" {
		merged.General = parsed.General
	}
	return New(merged), nil
}

// Topic returns the text for a topic or alias, or "" if there is none.
func (h *Help) Topic(topic string) string {
	name, ok := h.aliasLookup[strings.ToLower(topic)]
	if !ok {
		return ""
	}
	return strings.TrimSpace(h.data.Topics[name].Text)
}

// General returns the command overview.
func (h *Help) General() string {
	return strings.TrimSpace(h.data.General)
}

// Text returns the overview for an empty topic, else the topic text or a
// not-found message.
func (h *Help) Text(topic string) string {
	if topic == "" {
		return h.General()
	}
	if text := h.Topic(topic); text != "" {
		return text
	}
	return fmt.Sprintf("No help available for '%s'.\nType 'help' for a list of commands.", topic)
}

var defaultData = Data{
	General: `Commands:
  show                      Show the character sheet
  name <name>               Set the character name
  lineage|calling|background <choice>
  options                   List lineages, callings and backgrounds
  inc <ability>             Raise an ability (str, dex, con, int, wis, cha)
  dec <ability>             Lower an ability
  costs                     Show the point-buy cost table
  <part> [+n|-n]            Cycle an appearance part (skin, hair_style, hair_color, eyes, feature, clothing)
  random                    Randomize everything
  done                      Save the character and enter the game
  quit                      Leave without saving
Type 'help <command>' for details.`,
	Topics: map[string]Topic{
		"name": {Text: `name <name>
Names are 2 to 24 letters long and may contain spaces, apostrophes and hyphens.`},
		"lineage": {Aliases: []string{"calling", "background", "options"}, Text: `lineage <choice>, calling <choice>, background <choice>
A choice is its name or its number from 'options'.`},
		"inc": {Aliases: []string{"increase", "dec", "decrease", "costs", "points"}, Text: `inc <ability> / dec <ability>
Every ability starts at 8 and you have 27 points. Raising a score costs
1 point per step up to 14, 2 for the step to 15 and 3 for each step after.
Lowering a score refunds what the step cost.`},
		"look": {Aliases: []string{"appearance", "skin", "hair_style", "hair_color", "eyes", "feature", "clothing"}, Text: `<part> [+n|-n]
Cycles an appearance part forward (default) or back, wrapping around.`},
		"random": {Aliases: []string{"randomize"}, Text: `random
Picks a random name, lineage, calling, background and appearance, and spends
all 27 points at random.`},
		"done": {Aliases: []string{"finalize"}, Text: `done
Checks the name, saves the character and enters the game.`},
	},
}
