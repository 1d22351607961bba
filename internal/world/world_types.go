package world

// Tile is one grid cell symbol
type Tile rune

// Tile vocabulary. Any symbol not listed here is treated as an opaque wall
// whose glyph comes from the texture atlas.
const (
	TileFloor      Tile = '.'
	TileWall       Tile = '#'
	TileDoor       Tile = 'X'
	TileObject     Tile = 'o' // translucent, drawn with a visible back face
	TileOpenObject Tile = ',' // translucent, opens the ceiling
)

// IsFloor reports whether entities and the player may stand on the tile
func (t Tile) IsFloor() bool {
	return t == TileFloor
}

// IsTranslucent reports whether rays pass through the tile while recording it
func (t Tile) IsTranslucent() bool {
	return t == TileObject || t == TileOpenObject
}

// IsExit reports whether stepping on the tile leaves the level
func (t Tile) IsExit() bool {
	return t == TileDoor
}

func (t Tile) String() string {
	return string(rune(t))
}
