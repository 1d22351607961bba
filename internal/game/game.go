package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"glyphray/internal/collision"
	"glyphray/internal/config"
	"glyphray/internal/entity"
	"glyphray/internal/graphics"
	"glyphray/internal/mathutil"
	"glyphray/internal/render"
	"glyphray/internal/threading"
	"glyphray/internal/world"
)

// RosterFeed supplies server-driven entities and receives the local
// player's state. Implementations must be safe to call from the tick.
type RosterFeed interface {
	Connected() bool
	// NPCs returns detached copies of the server NPCs on a level. The bool
	// reports whether the server has sent NPCs for the level yet.
	NPCs(level string) ([]*entity.Entity, bool)
	// Players returns detached copies of the other players on a level
	Players(level string) []*entity.Entity
	SendPosition(x, y, angle, lookTimer float64, level string)
	SendLevelChange(level string)
}

// Game is the tick context: every component reads and writes through it,
// one tick at a time.
type Game struct {
	config *config.Config
	worlds *world.WorldManager
	level  *world.Level

	player *entity.Player
	roster *entity.Roster
	feed   RosterFeed
	intent Intent

	raycaster  *render.Raycaster
	compositor *render.Compositor
	sprites    *render.SpriteRenderer
	motion     *collision.MotionSystem
	threading  *threading.ThreadingComponents
	rng        *rand.Rand

	frame *render.Frame
	hits  []render.RayHit

	animationTimer int
	headbobTimer   float64
	ticks          uint64
	entityCount    int
}

// NewGame builds the tick context and enters the start level. feed may be nil.
func NewGame(cfg *config.Config, worlds *world.WorldManager, atlas *graphics.Atlas, startLevel string, feed RosterFeed) (*Game, error) {
	level, err := worlds.SwitchTo(startLevel)
	if err != nil {
		return nil, err
	}

	seed := cfg.Entities.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	shader := render.NewShader(cfg.Camera.RenderDepth, cfg.Shading.WallDivisors, cfg.Shading.GateDivisor)
	mode := render.RenderMode(cfg.Shading.RenderMode)

	var sky *render.Skybox
	if cfg.Skybox.Enabled {
		sky = render.NewSkybox(cfg.Skybox, cfg.Camera.FieldOfView)
	}

	width, height := cfg.GetScreenWidth(), cfg.GetScreenHeight()
	g := &Game{
		config:     cfg,
		worlds:     worlds,
		player:     entity.NewPlayer(0, 0, 0, cfg.Camera.FieldOfView, cfg.Camera.RenderDepth),
		roster:     entity.NewRoster(),
		feed:       feed,
		raycaster:  render.NewRaycaster(level.Grid, cfg.Raycast.Grain, cfg.Raycast.BoundaryThreshold, cfg.Camera.FOVSplit),
		compositor: render.NewCompositor(atlas, shader, sky, mode),
		sprites:    render.NewSpriteRenderer(atlas, shader, mode, cfg.Sprites),
		motion:     collision.NewMotionSystem(level.Grid, cfg.Entities, rng),
		threading:  threading.NewThreadingComponents(cfg),
		rng:        rng,
		frame:      render.NewFrame(width, height),
		hits:       make([]render.RayHit, width),
	}

	if err := g.enterLevel(level); err != nil {
		g.threading.Shutdown()
		return nil, err
	}
	return g, nil
}

// enterLevel swaps the grid, places the player and rebuilds the local roster
func (g *Game) enterLevel(level *world.Level) error {
	g.level = level
	g.raycaster.SetGrid(level.Grid)
	g.motion.UpdateTileChecker(level.Grid)

	g.player.SetPosition(level.Start.X, level.Start.Y)
	g.player.Angle = mathutil.WrapAngle(level.Start.Angle)
	g.player.MayMoveForward = true

	spawned := level.SpawnEntities(g.rng, g.config.Entities.SpawnDensity, g.config.Entities.DefaultSpeed)
	if err := g.roster.Replace(spawned); err != nil {
		return fmt.Errorf("failed to populate level %s: %w", level.Name, err)
	}

	if g.feed != nil {
		g.feed.SendLevelChange(level.Name)
	}
	log.Printf("Entered level %s with %d entities", level.Name, g.roster.Len())
	return nil
}

// nextLevel follows the current level's exit. A level without an exit
// keeps the player where they are.
func (g *Game) nextLevel() {
	level, err := g.worlds.Next()
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	if err := g.enterLevel(level); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// SetIntent replaces the motion intent used by the next tick
func (g *Game) SetIntent(intent Intent) {
	g.intent = intent
}

// CycleRenderMode switches walls and sprites to the next render mode
func (g *Game) CycleRenderMode() render.RenderMode {
	mode := g.compositor.Mode.Next()
	g.compositor.Mode = mode
	g.sprites.Mode = mode
	return mode
}

// RenderMode returns the active render mode
func (g *Game) RenderMode() render.RenderMode {
	return g.compositor.Mode
}

// Player returns the player state
func (g *Game) Player() *entity.Player {
	return g.player
}

// Roster returns the local roster
func (g *Game) Roster() *entity.Roster {
	return g.roster
}

// Level returns the active level
func (g *Game) Level() *world.Level {
	return g.level
}

// Frame returns the last rendered frame
func (g *Game) Frame() *render.Frame {
	return g.frame
}

// Ticks returns how many ticks have run
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// Status summarizes the game for a presenter's status line
func (g *Game) Status() string {
	metrics := g.threading.GetPerformanceMetrics()
	return fmt.Sprintf("%s | %s | %d entities | look %+.1f | %v/tick",
		g.level.Name, g.compositor.Mode, g.entityCount, g.player.LookTimer, metrics.AverageFrame.Round(time.Microsecond))
}

// Threading exposes the worker and monitoring components
func (g *Game) Threading() *threading.ThreadingComponents {
	return g.threading
}

// Close stops the worker pool
func (g *Game) Close() {
	g.threading.Shutdown()
}

// entitiesForTick returns this tick's roster. Once the server has sent NPCs
// they replace the local roster and the second result is true; until then
// the local roster keeps moving alongside the other players.
func (g *Game) entitiesForTick() ([]*entity.Entity, bool) {
	g.roster.SortByDistance(g.player.X, g.player.Y)
	if g.feed == nil || !g.feed.Connected() {
		return g.roster.Snapshot(), false
	}

	players := g.feed.Players(g.level.Name)
	entities, serverNPCs := g.feed.NPCs(g.level.Name)
	if !serverNPCs {
		entities = g.roster.Snapshot()
	}
	entities = append(entities, players...)
	entity.SortFarthestFirst(entities, g.player.X, g.player.Y)
	return entities, serverNPCs
}

// Tick advances the world by one step and renders a frame. The returned
// frame is reused by the next tick.
func (g *Game) Tick() *render.Frame {
	monitor := g.threading.PerformanceMonitor
	timer := monitor.StartFrame()

	g.animationTimer++
	if g.animationTimer > g.config.Engine.AnimationFrames {
		g.animationTimer = 0
	}

	entities, serverDriven := g.entitiesForTick()

	monitor.ProfiledFunction("entity_update", func() {
		if serverDriven {
			g.motion.ResolveCollisions(g.player, entities)
		} else {
			g.motion.MoveEntities(g.player, entities)
		}
	})
	monitor.UpdateGameMetrics(len(entities), !g.player.MayMoveForward)

	if g.updatePlayer() {
		g.nextLevel()
		entities, _ = g.entitiesForTick()
	}
	g.player.Angle = mathutil.WrapAngle(g.player.Angle)
	g.updateHeadbob()

	g.entityCount = len(entities)
	g.render(entities)

	if g.feed != nil && g.feed.Connected() {
		g.feed.SendPosition(g.player.X, g.player.Y, g.player.Angle, g.player.LookTimer, g.level.Name)
	}

	g.ticks++
	timer.EndFrame()
	monitor.MaybeReport()
	return g.frame
}

func (g *Game) render(entities []*entity.Entity) {
	cfg := g.config
	monitor := g.threading.PerformanceMonitor
	width := g.frame.Width
	p := render.NewPerspective(g.frame.Height, g.player.LookTimer, cfg.Camera.LookLimit, g.headbobTimer)
	view := render.ColumnView{Perspective: p, HeadingDegrees: g.player.HeadingDegrees()}

	g.frame.Reset(g.player.Depth)

	monitor.ProfiledFunction("raycast", func() {
		g.threading.CastColumns(width, func(col int) {
			angle := g.raycaster.RayAngle(g.player.Angle, g.player.FOV, col, width)
			g.hits[col] = g.raycaster.Cast(g.player.X, g.player.Y, angle, g.player.Depth)
		})
		for col := 0; col < width; col++ {
			angle := g.raycaster.RayAngle(g.player.Angle, g.player.FOV, col, width)
			g.compositor.Column(g.frame, col, angle, g.hits[col], view)
		}
	})

	monitor.ProfiledFunction("sprite_render", func() {
		g.sprites.Draw(g.frame, entities, g.player, p, g.animationTimer)
	})
}
