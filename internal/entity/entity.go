package entity

import "math"

// Facing is the quantized direction an entity shows to the viewer.
type Facing byte

const (
	FacingNone  Facing = 0
	FacingFront Facing = 'F'
	FacingBack  Facing = 'B'
	FacingLeft  Facing = 'L'
	FacingRight Facing = 'R'
)

// String returns the facing symbol used in texture definitions
func (f Facing) String() string {
	if f == FacingNone {
		return ""
	}
	return string(rune(f))
}

// ParseFacing converts a texture key ("F", "B", "L", "R") into a Facing.
func ParseFacing(s string) (Facing, bool) {
	if len(s) != 1 {
		return FacingNone, false
	}
	switch f := Facing(s[0]); f {
	case FacingFront, FacingBack, FacingLeft, FacingRight:
		return f, true
	}
	return FacingNone, false
}

// Entity is a billboard sprite living on the grid
type Entity struct {
	ID   string
	Type string // selects the sprite definition

	X, Y float64
	R    float64 // heading in radians

	Moving bool
	Speed  float64

	Facing       Facing
	StuckCounter int

	// Z is the distance to the player stamped at the start of the tick
	// and refreshed after motion.
	Z float64

	// Remote entities are positioned by the server and never moved locally.
	Remote bool
}

// DistanceTo returns the euclidean distance from the entity to (x, y)
func (e *Entity) DistanceTo(x, y float64) float64 {
	return math.Hypot(e.X-x, e.Y-y)
}

// Clone returns a detached copy
func (e *Entity) Clone() *Entity {
	c := *e
	return &c
}
