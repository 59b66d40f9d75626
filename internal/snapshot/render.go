package snapshot

import (
	"strings"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
)

// Floor returns the floor rectangle in world space.
func (r RoomV1) Floor() geom.Rect {
	return geom.CenteredRect(r.Origin, geom.V(r.Width, r.Height))
}

// Render draws the layout as ASCII, cellsPerUnit characters per world unit
// horizontally and half that vertically. Walls are '#', items use the first
// letter of their name and the floor is '.'.
func Render(l Layout, cellsPerUnit int) string {
	if cellsPerUnit < 1 {
		cellsPerUnit = 1
	}
	t := l.Room.WallThickness
	outer := geom.CenteredRect(l.Room.Origin, geom.V(l.Room.Width+2*t, l.Room.Height+2*t))
	cols := int(outer.Width()*float64(cellsPerUnit)) + 1
	rows := int(outer.Height()*float64(cellsPerUnit)/2) + 1

	grid := make([][]byte, rows)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(" ", cols))
	}

	// Cell centers in world space; row 0 is the top of the map.
	cell := func(col, row int) geom.Vec2 {
		return geom.V(
			outer.Min.X+(float64(col)+0.5)/float64(cellsPerUnit),
			outer.Max.Y-(float64(row)+0.5)*2/float64(cellsPerUnit),
		)
	}
	toCell := func(p geom.Vec2) (int, int) {
		col := int((p.X - outer.Min.X) * float64(cellsPerUnit))
		row := int((outer.Max.Y - p.Y) * float64(cellsPerUnit) / 2)
		return min(max(col, 0), cols-1), min(max(row, 0), rows-1)
	}

	floor := l.Room.Floor()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := cell(col, row)
			if floor.Contains(p) {
				grid[row][col] = '.'
			}
		}
	}
	for _, w := range l.Room.Walls {
		c0, r0 := toCell(geom.V(w.Bounds.Min.X, w.Bounds.Max.Y))
		c1, r1 := toCell(geom.V(w.Bounds.Max.X, w.Bounds.Min.Y))
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				grid[row][col] = '#'
			}
		}
	}
	for _, it := range l.Items {
		col, row := toCell(it.Position)
		grid[row][col] = glyph(it)
	}

	lines := make([]string, rows)
	for i, g := range grid {
		lines[i] = strings.TrimRight(string(g), " ")
	}
	return strings.Join(lines, "\n")
}

func glyph(it ItemV1) byte {
	name := it.Name
	if name == "" {
		name = it.Prefab
	}
	if name == "" {
		return '?'
	}
	c := name[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}
