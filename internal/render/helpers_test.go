package render

import (
	"math"
	"strings"
	"testing"

	"glyphray/internal/config"
	"glyphray/internal/graphics"
	"glyphray/internal/world"
)

// borderedGrid builds a size x size room with '#' walls on the border
func borderedGrid(t *testing.T, size int) *world.GridMap {
	t.Helper()
	rows := make([]string, size)
	for y := 0; y < size; y++ {
		if y == 0 || y == size-1 {
			rows[y] = strings.Repeat("#", size)
			continue
		}
		rows[y] = "#" + strings.Repeat(".", size-2) + "#"
	}
	g, err := world.NewGridMap(rows)
	if err != nil {
		t.Fatalf("NewGridMap failed: %v", err)
	}
	return g
}

func gridFromRows(t *testing.T, rows ...string) *world.GridMap {
	t.Helper()
	g, err := world.NewGridMap(rows)
	if err != nil {
		t.Fatalf("NewGridMap failed: %v", err)
	}
	return g
}

func testAtlas(t *testing.T) *graphics.Atlas {
	t.Helper()
	atlas, err := graphics.ParseAtlas([]byte(`
textures:
  "#":
    width: 2
    height: 2
    scale: 1
    pixels: "####"
sprites:
  block:
    width: 4
    height: 4
    pixels: "################"
`))
	if err != nil {
		t.Fatalf("ParseAtlas failed: %v", err)
	}
	return atlas
}

func defaultShader() Shader {
	cfg := config.Default()
	return NewShader(cfg.Camera.RenderDepth, cfg.Shading.WallDivisors, cfg.Shading.GateDivisor)
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
