// Package stats defines the six D&D-style ability scores.
package stats

import (
	"fmt"
	"strings"
)

// Ability indexes one of the six scores. The order is fixed and is the order
// attributes are displayed, adjusted and persisted in.
type Ability int

const (
	Strength Ability = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma
)

// Count is the number of abilities.
const Count = 6

// AbilityNames in order for character creation
var AbilityNames = []string{"Strength", "Dexterity", "Constitution", "Intelligence", "Wisdom", "Charisma"}

// AbilityAbbrevs are the three-letter codes, in the same order.
var AbilityAbbrevs = []string{"STR", "DEX", "CON", "INT", "WIS", "CHA"}

// All returns every ability in order.
func All() []Ability {
	return []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}
}

// Valid reports whether a is one of the six abilities.
func (a Ability) Valid() bool {
	return a >= Strength && a <= Charisma
}

// String returns the full ability name
func (a Ability) String() string {
	if !a.Valid() {
		return "Unknown"
	}
	return AbilityNames[a]
}

// Abbrev returns the three-letter code, e.g. "STR".
func (a Ability) Abbrev() string {
	if !a.Valid() {
		return "???"
	}
	return AbilityAbbrevs[a]
}

// ParseAbility accepts a full name or abbreviation, case-insensitive.
func ParseAbility(s string) (Ability, error) {
	s = strings.TrimSpace(s)
	for i := range AbilityNames {
		if strings.EqualFold(s, AbilityNames[i]) || strings.EqualFold(s, AbilityAbbrevs[i]) {
			return Ability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ability: %s", s)
}

// Modifier calculates the D&D-style modifier using floor division
// Formula: floor((score - 10) / 2)
// Examples: 8=-1, 9=-1, 10=0, 11=0, 12=+1, 14=+2, 16=+3, 18=+4
func Modifier(score int) int {
	diff := score - 10
	if diff >= 0 {
		return diff / 2
	}
	return (diff - 1) / 2
}

// Scores holds the six ability values, indexed by Ability.
type Scores [Count]int

// Uniform returns scores with every ability set to v.
func Uniform(v int) Scores {
	var s Scores
	for i := range s {
		s[i] = v
	}
	return s
}

// Get returns the value of a. Invalid abilities read as 0.
func (s Scores) Get(a Ability) int {
	if !a.Valid() {
		return 0
	}
	return s[a]
}

// Set stores v for a. Invalid abilities are ignored.
func (s *Scores) Set(a Ability, v int) {
	if a.Valid() {
		s[a] = v
	}
}

// Sum returns the total of all six scores.
func (s Scores) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// String renders "STR 10 DEX 10 ...".
func (s Scores) String() string {
	parts := make([]string, 0, Count)
	for _, a := range All() {
		parts = append(parts, fmt.Sprintf("%s %d", a.Abbrev(), s[a]))
	}
	return strings.Join(parts, " ")
}
