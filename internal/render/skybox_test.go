package render

import (
	"math"
	"testing"

	"glyphray/internal/config"
)

func TestSkyboxGlyph(t *testing.T) {
	cfg := config.Default()
	sky := NewSkybox(cfg.Skybox, cfg.Camera.FieldOfView)

	testCases := []struct {
		name     string
		angle    float64
		y        float64
		expected rune
	}{
		{"moon center", math.Pi, 0.05, 'O'},
		{"moon center wrapped", -math.Pi, 0.05, 'O'},
		{"moon rim", math.Pi, 0.05 + 0.42*0.7, '.'},
		{"first galaxy core", math.Pi / 2, 0.08, '*'},
		{"second galaxy core", 3 * math.Pi / 2, 0.03, '#'},
		{"empty sky", 0, 5, Blank},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sky.Glyph(tc.angle, tc.y); got != tc.expected {
				t.Errorf("Glyph(%v, %v) = %q, expected %q", tc.angle, tc.y, got, tc.expected)
			}
		})
	}
}

func TestSkyboxIsDeterministic(t *testing.T) {
	cfg := config.Default()
	sky := NewSkybox(cfg.Skybox, cfg.Camera.FieldOfView)

	for a := 0.0; a < 2*math.Pi; a += 0.1 {
		for y := -0.5; y < 1; y += 0.05 {
			if sky.Glyph(a, y) != sky.Glyph(a, y) {
				t.Fatalf("Glyph(%v, %v) not deterministic", a, y)
			}
		}
	}
}
