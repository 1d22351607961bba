package game

import (
	"math"
	"strings"
	"testing"
	"time"

	"glyphray/internal/entity"
	"glyphray/internal/render"
)

func TestNewGame(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)

	if g.Level().Name != "hall" {
		t.Errorf("Expected to start in hall, got %s", g.Level().Name)
	}
	if x, y := g.Player().GetPosition(); x != 10.5 || y != 3.5 {
		t.Errorf("Expected the player at the level start, got (%v, %v)", x, y)
	}
	if _, ok := g.Roster().Get("statue"); !ok {
		t.Error("Expected the level's explicit sprite in the roster")
	}
	if g.RenderMode() != render.ModeShaded {
		t.Errorf("Expected the configured render mode, got %v", g.RenderMode())
	}
}

func TestTickProducesFullFrame(t *testing.T) {
	for _, parallel := range []bool{true, false} {
		cfg := testConfig()
		cfg.Raycast.Parallel = parallel
		g := newTestGame(t, cfg, nil)

		frame := g.Tick()

		if len(frame.Glyphs) != 40*20 || len(frame.Depth) != 40 {
			t.Fatalf("Expected a 40x20 frame, got %d glyphs and %d depths", len(frame.Glyphs), len(frame.Depth))
		}
		for col, d := range frame.Depth {
			if d < 0 || d > cfg.Camera.RenderDepth {
				t.Errorf("Column %d: depth %v out of range", col, d)
			}
		}
		if g.Ticks() != 1 {
			t.Errorf("Expected 1 tick, got %d", g.Ticks())
		}
		t.Logf("parallel=%v\n%s", parallel, frame)
	}
}

func TestTickAfterCloseDoesNotHang(t *testing.T) {
	cfg := testConfig()
	cfg.Raycast.Parallel = true
	g := newTestGame(t, cfg, nil)
	g.Close()

	done := make(chan *render.Frame)
	go func() { done <- g.Tick() }()

	select {
	case frame := <-done:
		if frame.Width != 40 || frame.Height != 20 {
			t.Errorf("Expected a full 40x20 frame, got %dx%d", frame.Width, frame.Height)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Tick to finish after Close")
	}
}

func TestTickIsDeterministic(t *testing.T) {
	a := newTestGame(t, testConfig(), nil)
	b := newTestGame(t, testConfig(), nil)

	intents := []Intent{{TurnLeft: true}, {Backward: true}, {LookDown: true}, {}, {StrafeLeft: true}}
	for i, intent := range intents {
		a.SetIntent(intent)
		b.SetIntent(intent)
		fa := a.Tick().String()
		fb := b.Tick().String()
		if fa != fb {
			t.Fatalf("Tick %d: frames differ\n%s\n---\n%s", i, fa, fb)
		}
	}
}

func TestWalkingIntoExitChangesLevel(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)
	g.SetIntent(Intent{Forward: true})

	for i := 0; i < 20 && g.Level().Name == "hall"; i++ {
		g.Tick()
	}

	if g.Level().Name != "yard" {
		t.Fatalf("Expected to reach the yard, still in %s at (%v, %v)", g.Level().Name, g.Player().X, g.Player().Y)
	}
	if x, y := g.Player().GetPosition(); x != 1.5 || y != 2.5 {
		t.Errorf("Expected the player at the yard start, got (%v, %v)", x, y)
	}
	if g.Roster().Len() != 0 {
		t.Errorf("Expected the yard roster to be empty, got %d", g.Roster().Len())
	}
}

func TestLevelWithoutExitKeepsPlayer(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)
	g.nextLevel() // to the yard
	g.nextLevel() // the yard has no exit

	if g.Level().Name != "yard" {
		t.Errorf("Expected to stay in the yard, got %s", g.Level().Name)
	}
}

func TestWallsStopThePlayer(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)
	g.nextLevel()
	g.SetIntent(Intent{Forward: true})

	for i := 0; i < 30; i++ {
		g.Tick()
		tile, ok := g.Level().Grid.TileAt(g.Player().X, g.Player().Y)
		if !ok || !tile.IsFloor() {
			t.Fatalf("Tick %d: player left the floor at (%v, %v)", i, g.Player().X, g.Player().Y)
		}
	}
	if g.Player().X >= 1.5 {
		t.Errorf("Expected the player to walk west until the wall, got x=%v", g.Player().X)
	}
}

func TestLookStaysWithinLimits(t *testing.T) {
	testCases := []struct {
		name  string
		width int
		limit float64
	}{
		{"narrow screen", 40, 12},
		{"wide screen", 600, 12 * 0.9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Display.ScreenWidth = tc.width
			g := newTestGame(t, cfg, nil)
			p := g.Player()

			g.SetIntent(Intent{LookUp: true})
			for i := 0; i < 500; i++ {
				g.updatePlayer()
				if p.LookTimer > tc.limit || p.LookTimer < -tc.limit {
					t.Fatalf("Look %v left [-%v, %v]", p.LookTimer, tc.limit, tc.limit)
				}
			}

			g.SetIntent(Intent{LookDown: true, LookDelta: 40})
			for i := 0; i < 500; i++ {
				g.updatePlayer()
				if p.LookTimer > tc.limit || p.LookTimer < -tc.limit {
					t.Fatalf("Look %v left [-%v, %v]", p.LookTimer, tc.limit, tc.limit)
				}
			}
			if p.LookTimer >= 0 {
				t.Errorf("Expected to end up looking down, got %v", p.LookTimer)
			}
		})
	}
}

func TestHeadbob(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)

	g.SetIntent(Intent{StrafeRight: true})
	for i := 0; i < 3; i++ {
		g.updateHeadbob()
	}
	if math.Abs(g.headbobTimer-0.6) > 1e-9 {
		t.Errorf("Expected headbob 0.6 after three moving ticks, got %v", g.headbobTimer)
	}

	for i := 0; i < 10; i++ {
		g.updateHeadbob()
		if g.headbobTimer < 0 || g.headbobTimer >= 2 {
			t.Fatalf("Headbob %v outside [0, 2)", g.headbobTimer)
		}
	}

	g.SetIntent(Intent{})
	g.headbobTimer = 1
	g.updateHeadbob()
	if math.Abs(g.headbobTimer-0.6) > 1e-9 {
		t.Errorf("Expected headbob to decay to 0.6, got %v", g.headbobTimer)
	}
	g.updateHeadbob()
	g.updateHeadbob()
	if g.headbobTimer != 0 {
		t.Errorf("Expected headbob to settle at 0, got %v", g.headbobTimer)
	}
}

func TestTurningWrapsHeading(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)
	g.SetIntent(Intent{TurnLeft: true})

	g.Tick()

	a := g.Player().Angle
	if a < 0 || a >= 2*math.Pi {
		t.Errorf("Expected heading in [0, 2π), got %v", a)
	}
	if math.Abs(a-(2*math.Pi-0.05)) > 1e-9 {
		t.Errorf("Expected heading 2π-0.05, got %v", a)
	}
}

func TestCycleRenderMode(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)

	expected := []render.RenderMode{render.ModeSolid, render.ModeTexture, render.ModeShaded}
	for _, want := range expected {
		if got := g.CycleRenderMode(); got != want {
			t.Errorf("Expected %v, got %v", want, got)
		}
		if g.sprites.Mode != want {
			t.Errorf("Expected sprites to follow the wall mode %v, got %v", want, g.sprites.Mode)
		}
	}
}

func TestRemoteFeedIsCollisionOnly(t *testing.T) {
	feed := &mockFeed{
		connected:    true,
		npcsReceived: true,
		npcs: []*entity.Entity{
			{ID: "npc-1", Type: "block", X: 10.8, Y: 3.5, R: 1, Moving: true, Speed: 0.05, Remote: true},
		},
		players: []*entity.Entity{
			{ID: "player-2", Type: "block", X: 2.5, Y: 2.5, Remote: true},
		},
	}
	g := newTestGame(t, testConfig(), feed)

	g.Tick()

	npc := feed.npcs[0]
	if npc.X != 10.8 || npc.Y != 3.5 || npc.R != 1 {
		t.Errorf("Expected the remote entity untouched, got (%v, %v, %v)", npc.X, npc.Y, npc.R)
	}
	if g.Player().MayMoveForward {
		t.Error("Expected the close remote entity to block the player")
	}
	if g.Player().X >= 10.5 {
		t.Errorf("Expected the player pushed away, got x=%v", g.Player().X)
	}
	if feed.positions != 1 || feed.lastLevel != "hall" {
		t.Errorf("Expected one position update for hall, got %d for %q", feed.positions, feed.lastLevel)
	}
	if len(feed.levelChanges) != 1 || feed.levelChanges[0] != "hall" {
		t.Errorf("Expected the start level announced, got %v", feed.levelChanges)
	}
	if _, ok := g.Roster().Get("statue"); !ok {
		t.Error("Expected the local roster to be kept while remote")
	}
	if !strings.Contains(g.Status(), "| 2 entities |") {
		t.Errorf("Expected the server NPC and the player only, got status %q", g.Status())
	}
}

func TestPlayersOnlyFeedKeepsLocalRoster(t *testing.T) {
	feed := &mockFeed{
		connected: true,
		players: []*entity.Entity{
			{ID: "player-2", Type: "block", X: 2.5, Y: 2.5, R: 0.5, Moving: true, Remote: true},
		},
	}
	g := newTestGame(t, testConfig(), feed)

	statue, _ := g.Roster().Get("statue")
	statue.X, statue.Y = 10.7, 3.5

	g.Tick()

	if g.Player().MayMoveForward {
		t.Error("Expected the local statue ahead to block the player before server NPCs arrive")
	}
	if g.Player().X >= 10.5 {
		t.Errorf("Expected the player pushed away from the statue, got x=%v", g.Player().X)
	}
	if statue.Z <= 0 || statue.Z >= 0.4 {
		t.Errorf("Expected the statue's distance stamped, got %v", statue.Z)
	}
	other := feed.players[0]
	if other.X != 2.5 || other.Y != 2.5 || other.R != 0.5 {
		t.Errorf("Expected the other player untouched, got (%v, %v, %v)", other.X, other.Y, other.R)
	}
	if !strings.Contains(g.Status(), "| 2 entities |") {
		t.Errorf("Expected the statue and the other player, got status %q", g.Status())
	}

	feed.npcsReceived = true
	g.Tick()
	if !strings.Contains(g.Status(), "| 1 entities |") {
		t.Errorf("Expected server NPCs to replace the local roster, got status %q", g.Status())
	}
}

func TestDisconnectedFeedUsesLocalRoster(t *testing.T) {
	feed := &mockFeed{
		npcsReceived: true,
		npcs:         []*entity.Entity{{ID: "npc-1", Type: "block", X: 10.8, Y: 3.5}},
	}
	g := newTestGame(t, testConfig(), feed)

	g.Tick()

	if !g.Player().MayMoveForward {
		t.Error("Expected the disconnected feed to be ignored")
	}
	if feed.positions != 0 {
		t.Errorf("Expected no position updates while disconnected, got %d", feed.positions)
	}
}
