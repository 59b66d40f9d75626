package character

import (
	"fmt"

	"github.com/lawnchairsociety/dungeonkit/internal/stats"
)

// DefaultName is used until the player picks one.
const DefaultName = "Adventurer"

// DefaultScore is every ability's value on a fresh record.
const DefaultScore = 10

// Data is the character record written at the end of creation.
type Data struct {
	Name       string
	Lineage    Lineage
	Calling    Calling
	Background Background
	Scores     stats.Scores
	Appearance Appearance
}

// NewData returns the default record.
func NewData() *Data {
	return &Data{
		Name:       DefaultName,
		Lineage:    Human,
		Calling:    Fighter,
		Background: Sellsword,
		Scores:     stats.Uniform(DefaultScore),
	}
}

// MaxHealth is 10 plus the truncated half of CON above 10.
func (d *Data) MaxHealth() int {
	return 10 + (d.Scores.Get(stats.Constitution)-10)/2
}

// ArmorClass is 10 plus the truncated half of DEX above 10.
func (d *Data) ArmorClass() int {
	return 10 + (d.Scores.Get(stats.Dexterity)-10)/2
}

// Summary is a one-line description for logs and prompts.
func (d *Data) Summary() string {
	return fmt.Sprintf("%s the %s %s (%s) HP %d AC %d", d.Name, d.Lineage, d.Calling, d.Background, d.MaxHealth(), d.ArmorClass())
}
