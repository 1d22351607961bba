package render

import (
	"math"
	"sort"

	"glyphray/internal/world"
)

// WallDirection names the face of a cell a ray struck
type WallDirection byte

const (
	FaceNorth WallDirection = 'N'
	FaceSouth WallDirection = 'S'
	FaceEast  WallDirection = 'E'
	FaceWest  WallDirection = 'W'
)

// RayHit is what one column's ray found
type RayHit struct {
	WallDistance float64
	WallType     world.Tile

	// Translucent object along the ray. ObjectDistance is the distance to
	// its front face, ObjectBackDistance to where the ray left it.
	HitObject          bool
	ObjectType         world.Tile
	ObjectDistance     float64
	ObjectBackDistance float64

	// OpenObject is set when the ray passed through an open-ceiling object
	OpenObject bool

	Direction WallDirection
	SampleX   float64
	Boundary  bool

	// Void is set when the ray left the map or ran out of depth
	Void bool
}

// Raycaster marches rays through a grid in fixed steps
type Raycaster struct {
	grid              *world.GridMap
	grain             float64
	boundaryThreshold float64
	fovSplit          float64
}

// NewRaycaster creates a ray caster. fovSplit positions the first column's
// ray at heading - fov/fovSplit.
func NewRaycaster(grid *world.GridMap, grain, boundaryThreshold, fovSplit float64) *Raycaster {
	return &Raycaster{
		grid:              grid,
		grain:             grain,
		boundaryThreshold: boundaryThreshold,
		fovSplit:          fovSplit,
	}
}

// SetGrid swaps the grid after a level change
func (rc *Raycaster) SetGrid(grid *world.GridMap) {
	rc.grid = grid
}

// RayAngle returns the world angle of a screen column's ray
func (rc *Raycaster) RayAngle(heading, fov float64, column, width int) float64 {
	return heading - fov/rc.fovSplit + (float64(column)/float64(width))*fov
}

// Cast marches one ray from (x, y) along angle up to depth
func (rc *Raycaster) Cast(x, y, angle, depth float64) RayHit {
	eyeX, eyeY := math.Cos(angle), math.Sin(angle)

	hit := RayHit{WallType: world.TileWall, Direction: FaceNorth}
	hitBack := false
	length := 0.0

	for step := 1; length < depth; step++ {
		length = float64(step) * rc.grain

		if !hit.HitObject {
			hit.ObjectDistance = length
		}
		if !hitBack {
			hit.ObjectBackDistance = length
		}

		cellX := int(math.Floor(x + eyeX*length))
		cellY := int(math.Floor(y + eyeY*length))

		tile, inBounds := rc.grid.At(cellX, cellY)
		switch {
		case !inBounds:
			hit.WallDistance = depth
			hit.Void = true
			return hit

		case tile.IsTranslucent():
			hit.HitObject = true
			hit.ObjectType = tile
			if tile == world.TileOpenObject {
				hit.OpenObject = true
			}

		case tile.IsFloor():
			if hit.HitObject {
				hitBack = true
			}

		default:
			hit.WallDistance = math.Min(length, depth)
			hit.WallType = tile
			hit.Boundary = rc.isBoundary(x, y, eyeX, eyeY, cellX, cellY)
			hit.Direction, hit.SampleX = faceOf(x+eyeX*length, y+eyeY*length, cellX, cellY)
			return hit
		}
	}

	hit.WallDistance = math.Min(length, depth)
	hit.Void = true
	return hit
}

// isBoundary reports whether the ray runs along one of the two corners of
// the hit cell nearest to the viewer.
func (rc *Raycaster) isBoundary(x, y, eyeX, eyeY float64, cellX, cellY int) bool {
	type corner struct{ dist, dot float64 }
	corners := make([]corner, 0, 4)
	for tx := 0; tx < 2; tx++ {
		for ty := 0; ty < 2; ty++ {
			vx := float64(cellX+tx) - x
			vy := float64(cellY+ty) - y
			d := math.Hypot(vx, vy)
			if d == 0 {
				continue
			}
			dot := math.Max(-1, math.Min(1, eyeX*vx/d+eyeY*vy/d))
			corners = append(corners, corner{d, dot})
		}
	}
	sort.Slice(corners, func(i, j int) bool { return corners[i].dist < corners[j].dist })

	for i := 0; i < len(corners) && i < 2; i++ {
		if math.Acos(corners[i].dot) < rc.boundaryThreshold {
			return true
		}
	}
	return false
}

// faceOf works out which face of a cell the point (px, py) lies on from the
// angle between the cell center and the point, and the texture coordinate
// along that face.
func faceOf(px, py float64, cellX, cellY int) (WallDirection, float64) {
	midX := float64(cellX) + 0.5
	midY := float64(cellY) + 0.5
	a := math.Atan2(py-midY, px-midX)

	switch {
	case a >= -math.Pi/4 && a < math.Pi/4:
		return FaceWest, py - float64(cellY)
	case a >= math.Pi/4 && a < 3*math.Pi/4:
		return FaceNorth, px - float64(cellX)
	case a < -math.Pi/4 && a >= -3*math.Pi/4:
		return FaceSouth, px - float64(cellX)
	default:
		return FaceEast, py - float64(cellY)
	}
}
