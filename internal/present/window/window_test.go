package window

import (
	"testing"

	"glyphray/internal/config"
	"glyphray/internal/render"
)

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	cfg := config.Default()
	cfg.Display.ScreenWidth = 10
	cfg.Display.ScreenHeight = 4
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w
}

func TestLayout(t *testing.T) {
	w := newTestWindow(t)

	width, height := w.Layout(1920, 1080)

	if width != 10*8 || height != 4*16+hudHeight {
		t.Errorf("Expected 80x%d, got %dx%d", 4*16+hudHeight, width, height)
	}
}

func TestPresentCopiesFrame(t *testing.T) {
	w := newTestWindow(t)
	frame := render.NewFrame(10, 4)
	frame.Set(2, 1, '#')

	if err := w.Present(frame); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	frame.Set(2, 1, 'x')

	if got := w.frame.At(2, 1); got != '#' {
		t.Errorf("Expected the presented frame to be detached, got %q", got)
	}
}

func TestPresentResizes(t *testing.T) {
	w := newTestWindow(t)
	frame := render.NewFrame(6, 3)
	frame.Set(5, 2, '=')

	w.Present(frame)

	if w.frame.Width != 6 || w.frame.Height != 3 || w.frame.At(5, 2) != '=' {
		t.Errorf("Expected a 6x3 copy, got %dx%d", w.frame.Width, w.frame.Height)
	}
}

func TestRunWithoutLoop(t *testing.T) {
	w := newTestWindow(t)
	if err := w.Run(); err == nil {
		t.Error("Expected an error without a game loop")
	}
}
