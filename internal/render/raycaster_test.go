package render

import (
	"math"
	"testing"

	"glyphray/internal/world"
)

// distanceToBorder is the exact distance from (px, py) along angle to the
// first wall cell of a bordered room of the given size.
func distanceToBorder(px, py, angle float64, size int) float64 {
	inner := float64(size - 1)
	best := math.Inf(1)
	dx, dy := math.Cos(angle), math.Sin(angle)
	if dx > 1e-12 {
		best = math.Min(best, (inner-px)/dx)
	}
	if dx < -1e-12 {
		best = math.Min(best, (px-1)/-dx)
	}
	if dy > 1e-12 {
		best = math.Min(best, (inner-py)/dy)
	}
	if dy < -1e-12 {
		best = math.Min(best, (py-1)/-dy)
	}
	return best
}

func TestCastMatchesAnalyticDistance(t *testing.T) {
	grid := borderedGrid(t, 16)
	rc := NewRaycaster(grid, 0.05, 0.01, 1.8)

	fov := math.Pi / 2.25
	depth := 32.0
	width := 120

	for col := 0; col < width; col++ {
		angle := rc.RayAngle(0, fov, col, width)
		hit := rc.Cast(8, 8, angle, depth)
		expected := distanceToBorder(8, 8, angle, 16)

		if hit.Void {
			t.Fatalf("Column %d: expected a wall, got void", col)
		}
		if hit.WallType != world.TileWall {
			t.Errorf("Column %d: expected wall type '#', got %q", col, hit.WallType)
		}
		if hit.WallDistance < expected-1e-9 || hit.WallDistance > expected+0.05+1e-9 {
			t.Errorf("Column %d: distance %.4f, expected %.4f (+grain)", col, hit.WallDistance, expected)
		}
	}
}

func TestRayAngleSplit(t *testing.T) {
	rc := NewRaycaster(nil, 0.05, 0.01, 1.8)
	fov := math.Pi / 2.25

	if got := rc.RayAngle(1, fov, 0, 100); !near(got, 1-fov/1.8, 1e-12) {
		t.Errorf("Expected first column at heading - fov/1.8, got %v", got)
	}
	if got := rc.RayAngle(1, fov, 50, 100); !near(got, 1-fov/1.8+fov/2, 1e-12) {
		t.Errorf("Expected middle column half a field of view further, got %v", got)
	}
}

func TestCastVoidAndBounds(t *testing.T) {
	testCases := []struct {
		name  string
		grid  *world.GridMap
		x, y  float64
		angle float64
		depth float64
	}{
		{"leaves the map", gridFromRows(t, "....", "...."), 1.5, 0.5, 0, 32},
		{"runs out of depth", gridFromRows(t, "..........#"), 0.5, 0.5, 0, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rc := NewRaycaster(tc.grid, 0.05, 0.01, 1.8)
			hit := rc.Cast(tc.x, tc.y, tc.angle, tc.depth)
			if !hit.Void {
				t.Error("Expected a void hit")
			}
			if hit.WallDistance < 0 || hit.WallDistance > tc.depth {
				t.Errorf("Expected distance in [0, %v], got %v", tc.depth, hit.WallDistance)
			}
		})
	}
}

func TestCastThroughObject(t *testing.T) {
	// player in cell 0, object in cells 2-3, wall at 6
	grid := gridFromRows(t, "..oo..#")
	rc := NewRaycaster(grid, 0.05, 0.01, 1.8)

	hit := rc.Cast(0.5, 0.5, 0, 32)

	if !hit.HitObject || hit.ObjectType != world.TileObject {
		t.Fatalf("Expected to record the object, got %+v", hit)
	}
	if !near(hit.ObjectDistance, 1.5, 0.051) {
		t.Errorf("Expected object front at ~1.5, got %v", hit.ObjectDistance)
	}
	if !near(hit.ObjectBackDistance, 3.5, 0.051) {
		t.Errorf("Expected object back at ~3.5, got %v", hit.ObjectBackDistance)
	}
	if !near(hit.WallDistance, 5.5, 0.051) {
		t.Errorf("Expected wall at ~5.5, got %v", hit.WallDistance)
	}
	if hit.OpenObject {
		t.Error("Did not expect an open object")
	}

	open := NewRaycaster(gridFromRows(t, "..,..#"), 0.05, 0.01, 1.8).Cast(0.5, 0.5, 0, 32)
	if !open.OpenObject {
		t.Error("Expected an open object flag for ','")
	}
}

func TestCastFaceAndSample(t *testing.T) {
	grid := borderedGrid(t, 8)
	rc := NewRaycaster(grid, 0.05, 0.01, 1.8)

	testCases := []struct {
		name     string
		angle    float64
		expected WallDirection
	}{
		{"looking east", 0, FaceEast},
		{"looking west", math.Pi, FaceWest},
		{"looking south", math.Pi / 2, FaceSouth},
		{"looking north", -math.Pi / 2, FaceNorth},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hit := rc.Cast(3.3, 3.6, tc.angle, 32)
			if hit.Direction != tc.expected {
				t.Errorf("Expected face %c, got %c", tc.expected, hit.Direction)
			}
			if hit.SampleX < 0 || hit.SampleX > 1 {
				t.Errorf("Expected sample coordinate in [0,1], got %v", hit.SampleX)
			}
		})
	}
}

func TestCastBoundary(t *testing.T) {
	grid := borderedGrid(t, 8)
	rc := NewRaycaster(grid, 0.05, 0.01, 1.8)

	// Aim exactly at the corner between wall cells (7,3) and (7,4)
	x, y := 3.5, 3.5
	angle := math.Atan2(4-y, 7-x)
	if hit := rc.Cast(x, y, angle, 32); !hit.Boundary {
		t.Error("Expected a ray aimed at a cell corner to be a boundary")
	}

	if hit := rc.Cast(x, y, 0, 32); hit.Boundary {
		t.Error("Did not expect a ray hitting mid-face to be a boundary")
	}
}
