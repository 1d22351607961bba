package collision

import "math"

// Point is a position on the grid
type Point struct {
	X, Y float64
}

// ProbePoints returns the front, front-left and front-right probes at radius
// around (x, y) for a body heading along r.
func ProbePoints(x, y, r, radius float64) [3]Point {
	return [3]Point{
		{X: x + radius*math.Cos(r), Y: y + radius*math.Sin(r)},
		{X: x + radius*math.Cos(r+math.Pi/4), Y: y + radius*math.Sin(r+math.Pi/4)},
		{X: x + radius*math.Cos(r-math.Pi/4), Y: y + radius*math.Sin(r-math.Pi/4)},
	}
}

// IsPointBlocked reports whether a point is outside the world or on a tile
// that blocks movement
func (ms *MotionSystem) IsPointBlocked(p Point) bool {
	width, height := ms.tileChecker.GetWorldBounds()
	tileX := int(math.Floor(p.X))
	tileY := int(math.Floor(p.Y))

	if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
		return true
	}
	return ms.tileChecker.IsTileBlocking(tileX, tileY)
}

// CanStandAt checks the three probes of a body at (x, y) heading along r
func (ms *MotionSystem) CanStandAt(x, y, r float64) bool {
	for _, p := range ProbePoints(x, y, r, ms.cfg.ProbeRadius) {
		if ms.IsPointBlocked(p) {
			return false
		}
	}
	return true
}
