package character

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/dungeonkit/internal/stats"
)

func TestNewData_Defaults(t *testing.T) {
	d := NewData()
	assert.Equal(t, "Adventurer", d.Name)
	assert.Equal(t, Human, d.Lineage)
	assert.Equal(t, Fighter, d.Calling)
	assert.Equal(t, Sellsword, d.Background)
	for _, a := range stats.All() {
		assert.Equal(t, 10, d.Scores.Get(a))
	}
	assert.Equal(t, Appearance{}, d.Appearance)
	assert.Equal(t, 10, d.MaxHealth())
	assert.Equal(t, 10, d.ArmorClass())
}

func TestDerivedStats(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{8, 9},
		{9, 10}, // truncates toward zero
		{10, 10},
		{11, 10},
		{14, 12},
		{15, 12},
		{18, 14},
	}
	for _, tt := range tests {
		d := NewData()
		d.Scores.Set(stats.Constitution, tt.score)
		d.Scores.Set(stats.Dexterity, tt.score)
		assert.Equal(t, tt.want, d.MaxHealth(), "CON %d", tt.score)
		assert.Equal(t, tt.want, d.ArmorClass(), "DEX %d", tt.score)
	}
}

func TestSelections_OrderAndParse(t *testing.T) {
	assert.Len(t, Lineages(), 4)
	assert.Len(t, Callings(), 4)
	assert.Len(t, Backgrounds(), 6)

	assert.Equal(t, "Orc", Orc.String())
	assert.Equal(t, "Wizard", Wizard.String())
	assert.Equal(t, "Folk Hero", FolkHero.String())
	assert.Equal(t, "Unknown", Lineage(9).String())
	assert.False(t, Calling(-1).Valid())

	l, err := ParseLineage("DWARF")
	require.NoError(t, err)
	assert.Equal(t, Dwarf, l)

	b, err := ParseBackground("folk hero")
	require.NoError(t, err)
	assert.Equal(t, FolkHero, b)

	c, err := ParseCalling("3")
	require.NoError(t, err)
	assert.Equal(t, Cleric, c)

	_, err = ParseCalling("bard")
	assert.Error(t, err)
	_, err = ParseCalling("4")
	assert.Error(t, err)
}

func TestAppearance_RoundTrip(t *testing.T) {
	cases := []string{"0,0,0,0,0,0", "1,2,3,4,5,6", "10,0,7,123,0,9"}
	for _, s := range cases {
		var a Appearance
		require.True(t, a.Deserialize(s), s)
		assert.Equal(t, s, a.Serialize())
	}
}

func TestAppearance_MalformedKeepsValues(t *testing.T) {
	cases := []string{"", "1,2,3", "1,2,3,4,5,6,7", "1,2,x,4,5,6", "1,-2,3,4,5,6", "01,2,3,4,5,6", "+1,2,3,4,5,6", "1, 2,3,4,5,6"}
	for _, s := range cases {
		a := Appearance{1, 1, 1, 1, 1, 1}
		assert.False(t, a.Deserialize(s), s)
		assert.Equal(t, Appearance{1, 1, 1, 1, 1, 1}, a, s)
	}
}

func TestAppearance_Cycle(t *testing.T) {
	var a Appearance
	a.Cycle(HairStyle, -1, 8)
	assert.Equal(t, 7, a[HairStyle])
	a.Cycle(HairStyle, 1, 8)
	assert.Equal(t, 0, a[HairStyle])
	a.Cycle(HairStyle, 11, 8)
	assert.Equal(t, 3, a[HairStyle])

	a.Cycle(EyeColor, 1, 0)
	assert.Equal(t, 0, a[EyeColor])
	a.Cycle(Part(12), 1, 4)
	assert.True(t, a.Fits(DefaultOptions))
}

func TestParsePart(t *testing.T) {
	p, ok := ParsePart("hair_color")
	require.True(t, ok)
	assert.Equal(t, HairColor, p)

	p, ok = ParsePart("Skin Tone")
	require.True(t, ok)
	assert.Equal(t, SkinTone, p)

	p, ok = ParsePart("3")
	require.True(t, ok)
	assert.Equal(t, EyeColor, p)

	_, ok = ParsePart("tail")
	assert.False(t, ok)
}

func TestPartByName(t *testing.T) {
	p, ok := PartByName("Eye Color")
	require.True(t, ok)
	assert.Equal(t, EyeColor, p)

	_, ok = PartByName("3")
	assert.False(t, ok, "ordinals are not names")
}

func TestLoadCatalogText(t *testing.T) {
	orig := Lineages()
	t.Cleanup(func() { copy(lineages, orig) })

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
lineages:
  orc:
    label: Half-Orc
    description: Part orc.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, LoadCatalogText(path))
	assert.Equal(t, "Half-Orc", Orc.String())
	assert.Equal(t, "orc", Orc.ID())

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("lineages:\n  elf:\n    label: Sylvan\ncallings:\n  bard:\n    label: Bard\n"), 0o644))
	assert.Error(t, LoadCatalogText(bad))
	assert.Equal(t, "Elf", Elf.String(), "a failed load must not apply earlier categories")
	assert.Equal(t, "Half-Orc", Orc.String())
}
