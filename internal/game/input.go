package game

import "math"

// Intent is the motion requested for one tick. Presenters translate their
// devices into it; the game never reads devices itself.
type Intent struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	LookUp      bool
	LookDown    bool

	// LookDelta is pointer movement in device units, positive is down
	LookDelta float64
}

// Moving reports whether the intent walks the player
func (i Intent) Moving() bool {
	return i.Forward || i.Backward || i.StrafeLeft || i.StrafeRight
}

// updatePlayer applies the current intent. It returns true when the player
// walked into an exit.
func (g *Game) updatePlayer() bool {
	mv := g.config.Movement
	p := g.player
	limit, bound := g.config.Camera.LookLimit, g.config.GetLookLimit()

	if g.intent.TurnLeft {
		p.Angle -= mv.RotationSpeed
	}
	if g.intent.TurnRight {
		p.Angle += mv.RotationSpeed
	}

	if g.intent.LookUp {
		p.ApplyLook(mv.LookUpInput, mv.KeyLookFactor, limit, bound)
	}
	if g.intent.LookDown {
		p.ApplyLook(mv.LookDownInput, mv.KeyLookFactor, limit, bound)
	}
	if g.intent.LookDelta != 0 {
		p.ApplyLook(g.intent.LookDelta, mv.MouseLookFactor, limit, bound)
	}

	sin := (math.Sin(p.Angle) + mv.StrideBias) * mv.MoveFactor
	cos := (math.Cos(p.Angle) + mv.StrideBias) * mv.MoveFactor

	exit := false
	if g.intent.StrafeLeft && g.tryStep(sin, -cos) {
		exit = true
	}
	if g.intent.StrafeRight && g.tryStep(-sin, cos) {
		exit = true
	}
	if g.intent.Forward && p.MayMoveForward && g.tryStep(cos, sin) {
		exit = true
	}
	if g.intent.Backward && g.tryStep(-cos, -sin) {
		exit = true
	}
	return exit
}

// tryStep moves the player and reverts when the destination is not floor.
// It returns true when the rejected destination was an exit.
func (g *Game) tryStep(dx, dy float64) bool {
	p := g.player
	p.X += dx
	p.Y += dy

	tile, ok := g.level.Grid.TileAt(p.X, p.Y)
	if ok && tile.IsFloor() {
		return false
	}

	p.X -= dx
	p.Y -= dy
	return ok && tile.IsExit()
}

func (g *Game) updateHeadbob() {
	mv := g.config.Movement
	if g.intent.Moving() {
		g.headbobTimer = math.Mod(g.headbobTimer+mv.HeadbobStep, mv.HeadbobPeriod)
		return
	}
	g.headbobTimer = math.Max(0, g.headbobTimer-mv.HeadbobDecay)
}
