package headless

import (
	"context"
	"strings"
	"testing"
	"time"

	"glyphray/assets"
	"glyphray/internal/config"
	"glyphray/internal/game"
	"glyphray/internal/graphics"
	"glyphray/internal/render"
	"glyphray/internal/world"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	cfg := config.Default()
	cfg.Display.ScreenWidth = 60
	cfg.Display.ScreenHeight = 24
	cfg.Entities.Seed = 42
	cfg.Engine.TickMs = 1

	atlas, err := graphics.LoadAtlas(assets.Files, assets.TexturesFile)
	if err != nil {
		t.Fatalf("LoadAtlas failed: %v", err)
	}
	g, err := game.NewGame(cfg, world.NewWorldManager(assets.Levels()), atlas, assets.DefaultLevel, nil)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestRunFrames(t *testing.T) {
	g := newGame(t)
	p := New(5)
	p.Script = []game.Intent{{Forward: true}, {Forward: true}, {TurnRight: true}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := game.NewGameLoop(g, p).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if p.Presented() != 5 || g.Ticks() != 5 {
		t.Errorf("Expected 5 frames and ticks, got %d and %d", p.Presented(), g.Ticks())
	}
	last := p.Last()
	if last == nil || last.Width != 60 || last.Height != 24 {
		t.Fatalf("Expected a 60x24 last frame, got %v", last)
	}
	if !strings.HasPrefix(p.Status(), "level1 | shaded") {
		t.Errorf("Unexpected status %q", p.Status())
	}

	out := p.String()
	if lines := strings.Split(out, "\n"); len(lines) != 25 {
		t.Errorf("Expected 24 frame rows and a status line, got %d lines", len(lines))
	}
	t.Logf("\n%s", out)
}

func TestPollScript(t *testing.T) {
	p := New(2)
	p.Script = []game.Intent{{StrafeLeft: true}}

	if c := p.Poll(); !c.Intent.StrafeLeft {
		t.Errorf("Expected the scripted intent, got %+v", c)
	}
	p.Present(newFrame())
	if c := p.Poll(); c != (game.Controls{}) {
		t.Errorf("Expected standing still past the script, got %+v", c)
	}
	p.Present(newFrame())
	if c := p.Poll(); !c.Quit {
		t.Error("Expected quit after the frame budget")
	}
}

func TestEmptyPresenter(t *testing.T) {
	p := New(0)
	if p.String() != "" || p.Last() != nil {
		t.Error("Expected nothing before the first frame")
	}
	if !p.Poll().Quit {
		t.Error("Expected a zero budget to quit immediately")
	}
}

func newFrame() *render.Frame {
	return render.NewFrame(3, 2)
}
