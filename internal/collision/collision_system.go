package collision

import (
	"math"
	"math/rand"

	"glyphray/internal/config"
	"glyphray/internal/entity"
	"glyphray/internal/mathutil"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// MotionSystem walks entities across the grid and resolves their contact
// with the player
type MotionSystem struct {
	tileChecker TileChecker
	cfg         config.EntityConfig
	rng         *rand.Rand
}

// NewMotionSystem creates a new motion system
func NewMotionSystem(tileChecker TileChecker, cfg config.EntityConfig, rng *rand.Rand) *MotionSystem {
	return &MotionSystem{
		tileChecker: tileChecker,
		cfg:         cfg,
		rng:         rng,
	}
}

// UpdateTileChecker updates the tile checker (used when switching levels)
func (ms *MotionSystem) UpdateTileChecker(tileChecker TileChecker) {
	ms.tileChecker = tileChecker
}

// MoveEntities advances every local moving entity one step and then
// resolves player proximity for the whole roster.
func (ms *MotionSystem) MoveEntities(player *entity.Player, entities []*entity.Entity) {
	blocked := false
	for _, e := range entities {
		if e.Moving && !e.Remote {
			ms.step(e)
		}
		if ms.resolvePlayer(player, e) {
			blocked = true
		}
	}
	player.MayMoveForward = !blocked
}

// ResolveCollisions only refreshes distances and pushes the player out of
// entities. Positions and headings are left alone.
func (ms *MotionSystem) ResolveCollisions(player *entity.Player, entities []*entity.Entity) {
	blocked := false
	for _, e := range entities {
		if ms.resolvePlayer(player, e) {
			blocked = true
		}
	}
	player.MayMoveForward = !blocked
}

func (ms *MotionSystem) step(e *entity.Entity) {
	speed := e.Speed
	if speed <= 0 {
		speed = ms.cfg.DefaultSpeed
	}

	e.X += math.Cos(e.R) * speed
	e.Y += math.Sin(e.R) * speed

	if ms.CanStandAt(e.X, e.Y, e.R) {
		e.StuckCounter = 0
	} else {
		e.X -= math.Cos(e.R) * speed * ms.cfg.Pushback
		e.Y -= math.Sin(e.R) * speed * ms.cfg.Pushback

		jitter := (ms.rng.Float64()*2 - 1) * ms.cfg.HeadingJitter
		e.R = mathutil.WrapAngle(e.R + 3*math.Pi/2 + jitter)
		e.StuckCounter++

		if e.StuckCounter > ms.cfg.StuckLimit {
			e.StuckCounter = 0
			e.R = ms.cfg.EscapeHeading
			e.X -= math.Cos(e.R) * ms.cfg.EscapeDistance
			e.Y -= math.Sin(e.R) * ms.cfg.EscapeDistance
		}
	}

	// Z is still last tick's distance here
	if e.Z < ms.cfg.TurnAwayDistance && e.Facing != entity.FacingBack {
		e.R = mathutil.WrapAngle(e.R + 3*math.Pi/2)
	}
}

// resolvePlayer stamps the entity's distance and reports whether it blocks
// the player, nudging the player away when it does.
func (ms *MotionSystem) resolvePlayer(player *entity.Player, e *entity.Entity) bool {
	e.Z = e.DistanceTo(player.X, player.Y)
	if e.Z >= ms.cfg.BlockDistance {
		return false
	}

	push := math.Atan2(player.Y-e.Y, player.X-e.X)
	player.X += math.Cos(push) * ms.cfg.PushStrength
	player.Y += math.Sin(push) * ms.cfg.PushStrength
	return true
}
