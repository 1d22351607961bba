package render

import "math"

// Perspective turns the look offset and headbob into the screen split
// every surface uses. Build one per tick with NewPerspective.
type Perspective struct {
	Height    float64
	LookTimer float64
	LookLimit float64

	LookFactor  float64
	HeadbobTerm float64
	Denominator float64
}

// NewPerspective computes the adjusted denominator for a screen height,
// look offset, look limit and headbob timer.
func NewPerspective(height int, lookTimer, lookLimit, headbobTimer float64) Perspective {
	lookFactor := lookTimer * 0.15
	if lookTimer < 0 {
		down := math.Abs(lookTimer) / lookLimit
		lookFactor *= 1 + down*down*2.5
	}

	headbob := headbobTimer * 0.05
	if lookFactor > 0 {
		headbob *= math.Max(0, 1-lookFactor*1.5)
	}

	return Perspective{
		Height:      float64(height),
		LookTimer:   lookTimer,
		LookLimit:   lookLimit,
		LookFactor:  lookFactor,
		HeadbobTerm: headbob,
		Denominator: (2 - headbob) - lookFactor,
	}
}

// Horizon is the screen row the view is split at
func (p Perspective) Horizon() float64 {
	return p.Height / p.Denominator
}

// Ceiling is the top row of a surface at distance
func (p Perspective) Ceiling(distance float64) float64 {
	return p.Horizon() - p.Height/distance
}

// Floor is the bottom row of a surface at distance
func (p Perspective) Floor(distance float64) float64 {
	return p.Horizon() + p.Height/distance
}

// LookDown is how far down the viewer looks, 0 (level or up) to 1 (limit)
func (p Perspective) LookDown() float64 {
	if p.LookTimer >= 0 {
		return 0
	}
	return math.Min(1, math.Abs(p.LookTimer)/p.LookLimit)
}

// FloorBrightness maps a floor row to 1 near the horizon falling towards 0
// at the bottom of the screen. Looking down stretches the ladder.
func (p Perspective) FloorBrightness(row int) float64 {
	down := p.LookDown()
	denom := 2 - p.LookTimer*0.1 + down*down*0.3
	half := p.Height / denom
	return 1 - (float64(row)-half)/half
}

// CeilingBrightness is the plain ceiling ladder used when the sky is off
func (p Perspective) CeilingBrightness(row int) float64 {
	half := p.Height / 2
	return 1 - (float64(row)-half)/half
}

// SkyOffset shifts the normalized sky row so celestial objects stay put
// while the horizon moves with the look offset.
func (p Perspective) SkyOffset() float64 {
	lf := p.LookTimer / p.LookLimit

	if lf > 0 {
		switch {
		case lf > 0.5:
			t := (lf - 0.5) / 0.5
			return -lf * (0.84 + t*t*3.3)
		case lf > 0.23:
			t := (lf - 0.23) / 0.27
			return -lf * (0.6 + t*0.23)
		default:
			return -lf * 0.58
		}
	}

	switch {
	case lf < -0.5:
		t := (lf + 0.5) / 3
		return -lf * (0.39 + math.Abs(t)*0.000001)
	case lf < -0.23:
		t := (lf + 0.23) / 0.27
		return -lf * (0.39 + t*0.005)
	default:
		return -lf * 0.4
	}
}
