package world

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrInvalidGrid is returned for empty or ragged map rows
var ErrInvalidGrid = errors.New("invalid grid")

// GridMap is the flat tile buffer the renderer and collision code share.
// It is not mutated during a tick.
type GridMap struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGridMap builds a grid from equally wide rows
func NewGridMap(rows []string) (*GridMap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}

	width := utf8.RuneCountInString(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: empty first row", ErrInvalidGrid)
	}

	g := &GridMap{
		Width:  width,
		Height: len(rows),
		Tiles:  make([]Tile, 0, width*len(rows)),
	}
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, expected %d", ErrInvalidGrid, y, n, width)
		}
		for _, r := range row {
			g.Tiles = append(g.Tiles, Tile(r))
		}
	}
	return g, nil
}

// InBounds reports whether the cell exists
func (g *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at a cell
func (g *GridMap) At(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return g.Tiles[y*g.Width+x], true
}

// TileAt returns the tile under a world position
func (g *GridMap) TileAt(x, y float64) (Tile, bool) {
	return g.At(int(math.Floor(x)), int(math.Floor(y)))
}

// IsTileBlocking treats out-of-bounds and every non-floor tile as solid
func (g *GridMap) IsTileBlocking(tileX, tileY int) bool {
	t, ok := g.At(tileX, tileY)
	return !ok || !t.IsFloor()
}

// GetWorldBounds returns the grid size in cells
func (g *GridMap) GetWorldBounds() (width, height int) {
	return g.Width, g.Height
}

// CanMoveTo checks if a point-sized body may stand at the position
func (g *GridMap) CanMoveTo(x, y float64) bool {
	return !g.IsTileBlocking(int(math.Floor(x)), int(math.Floor(y)))
}

// FloorCells returns the coordinates of every floor cell in row order
func (g *GridMap) FloorCells() [][2]int {
	cells := make([][2]int, 0, len(g.Tiles)/2)
	for i, t := range g.Tiles {
		if t.IsFloor() {
			cells = append(cells, [2]int{i % g.Width, i / g.Width})
		}
	}
	return cells
}

// Rows renders the grid back into text rows
func (g *GridMap) Rows() []string {
	rows := make([]string, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]rune, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = rune(g.Tiles[y*g.Width+x])
		}
		rows[y] = string(row)
	}
	return rows
}
