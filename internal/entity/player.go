package entity

import (
	"math"

	"glyphray/internal/mathutil"
)

// Player is the first-person camera and the body that entities collide with
type Player struct {
	X, Y  float64
	Angle float64 // heading, kept in [0, 2π)

	// LookTimer is the vertical look offset. Positive looks up.
	LookTimer float64

	FOV   float64
	Depth float64

	MayMoveForward bool
}

// NewPlayer creates a player at a position with the given camera settings
func NewPlayer(x, y, angle, fov, depth float64) *Player {
	return &Player{
		X:              x,
		Y:              y,
		Angle:          mathutil.WrapAngle(angle),
		FOV:            fov,
		Depth:          depth,
		MayMoveForward: true,
	}
}

// GetForwardX returns the X component of the forward direction vector
func (p *Player) GetForwardX() float64 {
	return math.Cos(p.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (p *Player) GetForwardY() float64 {
	return math.Sin(p.Angle)
}

// GetRightX returns the X component of the right direction vector
func (p *Player) GetRightX() float64 {
	return math.Cos(p.Angle + math.Pi/2)
}

// GetRightY returns the Y component of the right direction vector
func (p *Player) GetRightY() float64 {
	return math.Sin(p.Angle + math.Pi/2)
}

// GetPosition returns the player's current position
func (p *Player) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// SetPosition sets the player's position
func (p *Player) SetPosition(x, y float64) {
	p.X = x
	p.Y = y
}

// Rotate turns the player and keeps the heading wrapped
func (p *Player) Rotate(angle float64) {
	p.Angle = mathutil.WrapAngle(p.Angle + angle)
}

// HeadingDegrees returns the heading in whole degrees, used to pick
// directional wall textures.
func (p *Player) HeadingDegrees() int {
	return mathutil.Degrees(p.Angle)
}

// ApplyLook moves the look offset by a scaled input. The step grows when
// looking down and is damped (eventually reversed) near the upper limit.
// The curve is measured against limit; a step that would leave
// [-bound, +bound] is rejected and false returned.
func (p *Player) ApplyLook(input, factor, limit, bound float64) bool {
	pct := math.Min(1, math.Abs(p.LookTimer)/limit)
	moveBy := input * factor * 0.8

	if p.LookTimer < 0 {
		moveBy *= 1 + pct*pct*0.5
	} else if p.LookTimer > 0 {
		moveBy *= 1 + pct*pct*(-1.2)
	}

	next := p.LookTimer - moveBy
	if next < -bound || next > bound {
		return false
	}
	p.LookTimer = next
	return true
}
