package character

import (
	"strconv"
	"strings"
)

// Part is one customizable feature of a character's appearance.
type Part int

const (
	SkinTone Part = iota
	HairStyle
	HairColor
	EyeColor
	FacialFeature
	Clothing

	PartCount = 6
)

var partNames = [PartCount]string{"Skin Tone", "Hair Style", "Hair Color", "Eye Color", "Facial Feature", "Clothing"}
var partIDs = [PartCount]string{"skin", "hair_style", "hair_color", "eyes", "feature", "clothing"}

// Parts returns every part in storage order.
func Parts() []Part {
	out := make([]Part, PartCount)
	for i := range out {
		out[i] = Part(i)
	}
	return out
}

// Valid reports whether p is a known part.
func (p Part) Valid() bool { return p >= 0 && p < PartCount }

func (p Part) String() string {
	if !p.Valid() {
		return "Unknown"
	}
	return partNames[p]
}

// PartByName looks a part up by its ID or display name only.
func PartByName(s string) (Part, bool) {
	s = strings.TrimSpace(s)
	for i := 0; i < PartCount; i++ {
		if strings.EqualFold(s, partIDs[i]) || strings.EqualFold(s, partNames[i]) {
			return Part(i), true
		}
	}
	return 0, false
}

// ParsePart accepts a part ID, display name or ordinal.
func ParsePart(s string) (Part, bool) {
	if p, ok := PartByName(s); ok {
		return p, true
	}
	if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && Part(i).Valid() {
		return Part(i), true
	}
	return 0, false
}

// Options holds how many choices each part offers.
type Options [PartCount]int

// DefaultOptions is used when no counts are configured.
var DefaultOptions = Options{6, 8, 6, 5, 4, 8}

// Appearance stores the selected index for each part.
type Appearance [PartCount]int

// Serialize renders the indices as six comma-delimited decimals.
func (a Appearance) Serialize() string {
	fields := make([]string, PartCount)
	for i, v := range a {
		fields[i] = strconv.Itoa(v)
	}
	return strings.Join(fields, ",")
}

// Deserialize parses s into a. Anything other than exactly six canonical
// non-negative decimals leaves a unchanged and returns false.
func (a *Appearance) Deserialize(s string) bool {
	fields := strings.Split(s, ",")
	if len(fields) != PartCount {
		return false
	}
	var parsed Appearance
	for i, f := range fields {
		v, ok := parseIndex(f)
		if !ok {
			return false
		}
		parsed[i] = v
	}
	*a = parsed
	return true
}

// parseIndex accepts digits only, with no sign and no leading zeros, so
// that every accepted string serializes back to itself.
func parseIndex(f string) (int, bool) {
	if f == "" || (len(f) > 1 && f[0] == '0') {
		return 0, false
	}
	for _, r := range f {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(f)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Cycle moves part p by dir steps, wrapping within count options.
// A count of zero or less leaves the index alone.
func (a *Appearance) Cycle(p Part, dir, count int) {
	if !p.Valid() || count <= 0 {
		return
	}
	i := (a[p] + dir) % count
	if i < 0 {
		i += count
	}
	a[p] = i
}

// Fits reports whether every index is within the given option counts.
func (a Appearance) Fits(opts Options) bool {
	for i, v := range a {
		if v < 0 || (opts[i] > 0 && v >= opts[i]) {
			return false
		}
	}
	return true
}
