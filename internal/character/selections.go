package character

// Lineage is the character's ancestry, stored as its ordinal.
type Lineage int

const (
	Human Lineage = iota
	Elf
	Dwarf
	Orc
)

var lineages = catalog{
	{ID: "human", Label: "Human", Description: "Adaptable and ambitious."},
	{ID: "elf", Label: "Elf", Description: "Graceful, long-lived and keen of sense."},
	{ID: "dwarf", Label: "Dwarf", Description: "Stout and hard to put down."},
	{ID: "orc", Label: "Orc", Description: "Strong and fierce."},
}

// Lineages returns every lineage option in ordinal order.
func Lineages() []Option { return lineages.options() }

// Valid reports whether l is a known lineage.
func (l Lineage) Valid() bool { return lineages.valid(int(l)) }

// String returns the display label.
func (l Lineage) String() string { return lineages.label(int(l)) }

// ID returns the stable identifier, or "" when invalid.
func (l Lineage) ID() string { return lineages.id(int(l)) }

// ParseLineage accepts an ID, label or ordinal.
func ParseLineage(s string) (Lineage, error) {
	i, err := lineages.parse("lineage", s)
	return Lineage(i), err
}

// Calling is the character's class, stored as its ordinal.
type Calling int

const (
	Fighter Calling = iota
	Rogue
	Wizard
	Cleric
)

var callings = catalog{
	{ID: "fighter", Label: "Fighter", Description: "Trained in arms and armor."},
	{ID: "rogue", Label: "Rogue", Description: "Quick hands and quicker feet."},
	{ID: "wizard", Label: "Wizard", Description: "Scholar of the arcane."},
	{ID: "cleric", Label: "Cleric", Description: "Servant of a higher power."},
}

// Callings returns every calling option in ordinal order.
func Callings() []Option { return callings.options() }

// Valid reports whether c is a known calling.
func (c Calling) Valid() bool { return callings.valid(int(c)) }

// String returns the display label.
func (c Calling) String() string { return callings.label(int(c)) }

// ID returns the stable identifier, or "" when invalid.
func (c Calling) ID() string { return callings.id(int(c)) }

// ParseCalling accepts an ID, label or ordinal.
func ParseCalling(s string) (Calling, error) {
	i, err := callings.parse("calling", s)
	return Calling(i), err
}

// Background is the character's history, stored as its ordinal.
type Background int

const (
	Acolyte Background = iota
	Criminal
	FolkHero
	Noble
	Sage
	Sellsword
)

var backgrounds = catalog{
	{ID: "acolyte", Label: "Acolyte", Description: "Raised in service of a temple."},
	{ID: "criminal", Label: "Criminal", Description: "No stranger to the wrong side of the law."},
	{ID: "folk_hero", Label: "Folk Hero", Description: "Champion of common people."},
	{ID: "noble", Label: "Noble", Description: "Born to title and privilege."},
	{ID: "sage", Label: "Sage", Description: "Years spent among books."},
	{ID: "sellsword", Label: "Sellsword", Description: "A blade for hire."},
}

// Backgrounds returns every background option in ordinal order.
func Backgrounds() []Option { return backgrounds.options() }

// Valid reports whether b is a known background.
func (b Background) Valid() bool { return backgrounds.valid(int(b)) }

// String returns the display label.
func (b Background) String() string { return backgrounds.label(int(b)) }

// ID returns the stable identifier, or "" when invalid.
func (b Background) ID() string { return backgrounds.id(int(b)) }

// ParseBackground accepts an ID, label or ordinal.
func ParseBackground(s string) (Background, error) {
	i, err := backgrounds.parse("background", s)
	return Background(i), err
}
