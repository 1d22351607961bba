package terminal

import (
	"testing"
	"time"

	"glyphray/internal/game"
	"glyphray/internal/render"

	"github.com/gdamore/tcell/v2"
)

func newSimPresenter(t *testing.T) (*Presenter, tcell.SimulationScreen) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	ss.SetSize(20, 6)
	p := New(ss)
	t.Cleanup(p.Close)
	return p, ss
}

// pollUntil polls until the event reader has delivered something
func pollUntil(t *testing.T, p *Presenter) game.Controls {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c := p.Poll(); c != (game.Controls{}) {
			return c
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Timed out waiting for key events")
	return game.Controls{}
}

func TestKeyMapping(t *testing.T) {
	testCases := []struct {
		name     string
		key      tcell.Key
		r        rune
		expected game.Controls
	}{
		{"arrow up walks forward", tcell.KeyUp, 0, game.Controls{Intent: game.Intent{Forward: true}}},
		{"arrow down walks backward", tcell.KeyDown, 0, game.Controls{Intent: game.Intent{Backward: true}}},
		{"arrow left turns", tcell.KeyLeft, 0, game.Controls{Intent: game.Intent{TurnLeft: true}}},
		{"arrow right turns", tcell.KeyRight, 0, game.Controls{Intent: game.Intent{TurnRight: true}}},
		{"w walks forward", tcell.KeyRune, 'w', game.Controls{Intent: game.Intent{Forward: true}}},
		{"a strafes left", tcell.KeyRune, 'a', game.Controls{Intent: game.Intent{StrafeLeft: true}}},
		{"D strafes right", tcell.KeyRune, 'D', game.Controls{Intent: game.Intent{StrafeRight: true}}},
		{"page up looks up", tcell.KeyPgUp, 0, game.Controls{Intent: game.Intent{LookUp: true}}},
		{"f looks down", tcell.KeyRune, 'f', game.Controls{Intent: game.Intent{LookDown: true}}},
		{"m cycles mode", tcell.KeyRune, 'm', game.Controls{CycleMode: true}},
		{"p pauses", tcell.KeyRune, 'p', game.Controls{TogglePause: true}},
		{"q quits", tcell.KeyRune, 'q', game.Controls{Quit: true}},
		{"escape quits", tcell.KeyEscape, 0, game.Controls{Quit: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ss := newSimPresenter(t)
			ss.InjectKey(tc.key, tc.r, tcell.ModNone)

			got := pollUntil(t, p)
			if got != tc.expected {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
			if again := p.Poll(); again != (game.Controls{}) {
				t.Errorf("Expected controls to clear after a poll, got %+v", again)
			}
		})
	}
}

func TestPresentDrawsFrame(t *testing.T) {
	p, ss := newSimPresenter(t)

	frame := render.NewFrame(4, 2)
	frame.Set(0, 0, '#')
	frame.Set(3, 1, 'x')
	frame.Set(1, 1, '中')
	p.SetStatus("mode shaded, level hall, a long status line")

	if err := p.Present(frame); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	expected := []struct {
		x, y int
		r    rune
	}{
		{0, 0, '#'},
		{3, 1, 'x'},
		{1, 1, '?'},
		{2, 0, ' '},
		{0, 2, 'm'},
	}
	for _, e := range expected {
		r, _, _, _ := ss.GetContent(e.x, e.y)
		if r != e.r {
			t.Errorf("Cell (%d, %d): expected %q, got %q", e.x, e.y, e.r, r)
		}
	}

	// the status is truncated to the screen width
	r, _, _, _ := ss.GetContent(19, 2)
	if r != '~' {
		t.Errorf("Expected the status to end in the truncation tail, got %q", r)
	}
}

func TestPresentClipsToScreen(t *testing.T) {
	p, ss := newSimPresenter(t)
	frame := render.NewFrame(30, 10)
	for x := 0; x < 30; x++ {
		frame.Set(x, 9, '=')
	}

	if err := p.Present(frame); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if r, _, _, _ := ss.GetContent(19, 5); r != ' ' {
		t.Errorf("Expected a clipped frame, got %q at the last cell", r)
	}
}

func TestCellRune(t *testing.T) {
	if cellRune('x') != 'x' {
		t.Error("Expected ASCII glyphs to pass through")
	}
	if cellRune('中') != '?' {
		t.Errorf("Expected wide glyphs to be replaced, got %q", cellRune('中'))
	}
	if r := cellRune(render.Block100); r != render.Block100 && r != '#' {
		t.Errorf("Expected a full block or its ASCII fallback, got %q", r)
	}
}
