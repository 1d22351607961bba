package render

import (
	"math"
	"unicode/utf8"

	"glyphray/internal/config"
	"glyphray/internal/mathutil"
)

type galaxy struct {
	angle, y, size   float64
	core, arm, outer rune
	arms, tightness  float64
}

type nebula struct {
	angle, y, size        float64
	dense, medium, sparse rune
}

// Skybox draws the moon, spiral galaxies and nebulas fixed in world angle
type Skybox struct {
	fov float64

	moonAngle, moonY, moonSize float64

	galaxies []galaxy
	nebulas  []nebula
}

// NewSkybox creates a skybox for a field of view. Horizontal positions in
// cfg are fractions of a full turn.
func NewSkybox(cfg config.SkyboxConfig, fov float64) *Skybox {
	s := &Skybox{
		fov:       fov,
		moonAngle: cfg.Moon.Angle,
		moonY:     cfg.Moon.Y,
		moonSize:  cfg.Moon.Size,
	}
	for _, g := range cfg.Galaxies {
		s.galaxies = append(s.galaxies, galaxy{
			angle:     mathutil.TwoPi * g.X,
			y:         g.Y,
			size:      g.Size,
			core:      firstRune(g.Core),
			arm:       firstRune(g.Arm),
			outer:     firstRune(g.Outer),
			arms:      g.Arms,
			tightness: g.Tightness,
		})
	}
	for _, n := range cfg.Nebulas {
		s.nebulas = append(s.nebulas, nebula{
			angle:  mathutil.TwoPi * n.X,
			y:      n.Y,
			size:   n.Size,
			dense:  firstRune(n.Dense),
			medium: firstRune(n.Medium),
			sparse: firstRune(n.Sparse),
		})
	}
	return s
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return Blank
	}
	return r
}

// Glyph returns the sky glyph for a world angle and a look-adjusted
// normalized row. The moon covers galaxies, galaxies cover nebulas.
func (s *Skybox) Glyph(worldAngle, y float64) rune {
	if r, ok := s.moon(worldAngle, y); ok {
		return r
	}
	for i := range s.galaxies {
		if r, ok := s.galaxy(&s.galaxies[i], worldAngle, y); ok {
			return r
		}
	}
	for i := range s.nebulas {
		if r, ok := s.nebula(&s.nebulas[i], worldAngle, y); ok {
			return r
		}
	}
	return Blank
}

// horizontal is the wrapped angular distance scaled by half the field of view
func (s *Skybox) horizontal(worldAngle, target float64) float64 {
	d := math.Abs(worldAngle - target)
	if d > math.Pi {
		d = mathutil.TwoPi - d
	}
	return d / (s.fov / 2)
}

func (s *Skybox) moon(worldAngle, y float64) (rune, bool) {
	h := s.horizontal(worldAngle, s.moonAngle)
	d := math.Hypot(h, y-s.moonY)
	if d >= s.moonSize {
		return 0, false
	}

	intensity := 1 - d/s.moonSize
	switch {
	case intensity > 0.8:
		return 'O', true
	case intensity > 0.6:
		return 'o', true
	default:
		return '.', true
	}
}

func (s *Skybox) galaxy(g *galaxy, worldAngle, y float64) (rune, bool) {
	h := s.horizontal(worldAngle, g.angle)
	v := y - g.y
	d := math.Hypot(h, v)
	if d >= g.size {
		return 0, false
	}

	a := math.Atan2(v, h)
	r := d / g.size
	armR := g.tightness * math.Mod(a*g.arms, mathutil.TwoPi)

	switch {
	case r < 0.2:
		return g.core, true
	case math.Abs(r-armR) < 0.15*(1-0.5*r):
		return g.arm, true
	case r < 0.85:
		scatter := math.Sin(r*50+a*20) * math.Cos(r*30-a*15)
		if scatter > 0.85-r {
			return g.outer, true
		}
	}
	return 0, false
}

func (s *Skybox) nebula(n *nebula, worldAngle, y float64) (rune, bool) {
	h := s.horizontal(worldAngle, n.angle)
	v := y - n.y
	d := math.Hypot(h, v)
	if d >= n.size {
		return 0, false
	}

	noise := math.Sin(d*20) * math.Cos(h*25) * math.Sin(v*30+h*20)
	falloff := d / n.size
	density := ((1 - falloff) + noise*0.3) * (1 - falloff*falloff)

	switch {
	case density > 0.7:
		return n.dense, true
	case density > 0.45:
		return n.medium, true
	case density > 0.2:
		return n.sparse, true
	}
	return 0, false
}
