package game

import (
	"testing"
	"testing/fstest"

	"glyphray/internal/config"
	"glyphray/internal/entity"
	"glyphray/internal/graphics"
	"glyphray/internal/render"
	"glyphray/internal/world"
)

const hallLevel = `
name: hall
exit_to: yard
player: {x: 10.5, y: 3.5, angle: 0}
sprites:
  - {id: statue, type: block, x: 3.5, y: 5.5}
rows:
  - "############"
  - "#..........#"
  - "#..........#"
  - "#..........X"
  - "#..........#"
  - "#....o.....#"
  - "#..........#"
  - "############"
`

const yardLevel = `
name: yard
player: {x: 1.5, y: 2.5, angle: 3.14159}
rows:
  - "######"
  - "#....#"
  - "#....#"
  - "#....#"
  - "######"
`

const testTextures = `
textures:
  "#":
    width: 2
    height: 2
    pixels: "#7#7"
sprites:
  block:
    width: 4
    height: 4
    pixels: "################"
`

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Display.ScreenWidth = 40
	cfg.Display.ScreenHeight = 20
	cfg.Entities.Seed = 7
	cfg.Engine.Workers = 2
	cfg.Engine.TickMs = 1
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, feed RosterFeed) *Game {
	t.Helper()
	levels := fstest.MapFS{
		"hall.yaml": {Data: []byte(hallLevel)},
		"yard.yaml": {Data: []byte(yardLevel)},
	}
	atlas, err := graphics.ParseAtlas([]byte(testTextures))
	if err != nil {
		t.Fatalf("ParseAtlas failed: %v", err)
	}

	g, err := NewGame(cfg, world.NewWorldManager(levels), atlas, "hall", feed)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

// mockFeed is a feed serving fixed NPC and player lists
type mockFeed struct {
	connected    bool
	npcs         []*entity.Entity
	npcsReceived bool
	players      []*entity.Entity
	positions    int
	lastLevel    string
	levelChanges []string
}

func (m *mockFeed) Connected() bool { return m.connected }

func (m *mockFeed) NPCs(level string) ([]*entity.Entity, bool) {
	out := make([]*entity.Entity, len(m.npcs))
	copy(out, m.npcs)
	return out, m.npcsReceived
}

func (m *mockFeed) Players(level string) []*entity.Entity {
	out := make([]*entity.Entity, len(m.players))
	copy(out, m.players)
	return out
}

func (m *mockFeed) SendPosition(x, y, angle, lookTimer float64, level string) {
	m.positions++
	m.lastLevel = level
}

func (m *mockFeed) SendLevelChange(level string) {
	m.levelChanges = append(m.levelChanges, level)
}

// scriptedPresenter replays controls and records presented frames
type scriptedPresenter struct {
	script    []Controls
	polls     int
	presented int
	quitAfter int
	err       error
}

func (s *scriptedPresenter) Poll() Controls {
	defer func() { s.polls++ }()
	if s.quitAfter > 0 && s.presented >= s.quitAfter {
		return Controls{Quit: true}
	}
	if s.polls < len(s.script) {
		return s.script[s.polls]
	}
	return Controls{}
}

func (s *scriptedPresenter) Present(frame *render.Frame) error {
	s.presented++
	return s.err
}
