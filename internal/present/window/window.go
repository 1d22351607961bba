// Package window presents frames in a desktop window through ebiten
package window

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync"

	"glyphray/internal/config"
	"glyphray/internal/game"
	"glyphray/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

// TicksPerSecond is the window's tick rate
const TicksPerSecond = 30

// hudHeight is the strip under the glyph grid holding the status line
const hudHeight = 16

// gomono advances every glyph by 0.6 em
const monoAdvance = 0.6

var (
	foreground = color.RGBA{200, 200, 200, 255}
	hudColor   = color.RGBA{120, 200, 120, 255}
)

// Window is both the game's presenter and the ebiten.Game running it.
// Ebiten calls Update at TicksPerSecond; each call is one scheduler step.
type Window struct {
	cfg  *config.Config
	loop *game.GameLoop

	face *text.GoTextFace
	keys *KeyTracker

	mouseLook  bool
	lastCursor int

	mu     sync.Mutex
	frame  *render.Frame
	status string
}

// New creates the window presenter. Attach a game loop before Run.
func New(cfg *config.Config) (*Window, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load mono font: %w", err)
	}

	return &Window{
		cfg:   cfg,
		face:  &text.GoTextFace{Source: src, Size: FontSize(cfg.Display.CellWidth)},
		keys:  NewKeyTracker(),
		frame: render.NewFrame(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
	}, nil
}

// FontSize returns the point size whose glyph advance fills one cell
func FontSize(cellWidth int) float64 {
	return float64(cellWidth) / monoAdvance
}

// Attach sets the loop driven by Update
func (w *Window) Attach(loop *game.GameLoop) {
	w.loop = loop
}

// Run opens the window and blocks until it is closed or the game quits
func (w *Window) Run() error {
	if w.loop == nil {
		return errors.New("window has no game loop attached")
	}
	width, height := w.cfg.GetWindowSize()
	ebiten.SetWindowSize(width, height+hudHeight)
	ebiten.SetWindowTitle(w.cfg.Display.WindowTitle)
	ebiten.SetTPS(TicksPerSecond)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update implements ebiten.Game
func (w *Window) Update() error {
	done, err := w.loop.Update()
	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

// Poll reads the keyboard and mouse. Movement keys count while held.
func (w *Window) Poll() game.Controls {
	held := ebiten.IsKeyPressed
	c := game.Controls{
		Intent: game.Intent{
			Forward:     held(ebiten.KeyW) || held(ebiten.KeyArrowUp),
			Backward:    held(ebiten.KeyS) || held(ebiten.KeyArrowDown),
			StrafeLeft:  held(ebiten.KeyA),
			StrafeRight: held(ebiten.KeyD),
			TurnLeft:    held(ebiten.KeyArrowLeft) || held(ebiten.KeyQ),
			TurnRight:   held(ebiten.KeyArrowRight) || held(ebiten.KeyE),
			LookUp:      held(ebiten.KeyR) || held(ebiten.KeyPageUp),
			LookDown:    held(ebiten.KeyF) || held(ebiten.KeyPageDown),
		},
		CycleMode:   w.keys.AnyJustPressed(ebiten.KeyM, ebiten.KeyTab),
		TogglePause: w.keys.IsKeyJustPressed(ebiten.KeyP),
		Quit:        w.keys.IsKeyJustPressed(ebiten.KeyEscape),
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w.toggleMouseLook()
	}
	if w.mouseLook {
		_, y := ebiten.CursorPosition()
		c.Intent.LookDelta = float64(y - w.lastCursor)
		w.lastCursor = y
	}
	return c
}

func (w *Window) toggleMouseLook() {
	w.mouseLook = !w.mouseLook
	if w.mouseLook {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		_, w.lastCursor = ebiten.CursorPosition()
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

// Present keeps a copy of the frame for the next Draw
func (w *Window) Present(frame *render.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frame.Width != frame.Width || w.frame.Height != frame.Height {
		log.Printf("Warning: frame size changed to %dx%d", frame.Width, frame.Height)
		w.frame = render.NewFrame(frame.Width, frame.Height)
	}
	w.frame.CopyFrom(frame)
	return nil
}

// SetStatus sets the HUD line
func (w *Window) SetStatus(status string) {
	w.mu.Lock()
	w.status = status
	w.mu.Unlock()
}

// Draw implements ebiten.Game
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	w.mu.Lock()
	defer w.mu.Unlock()

	cellHeight := float64(w.cfg.Display.CellHeight)
	for y := 0; y < w.frame.Height; y++ {
		op := &text.DrawOptions{}
		op.GeoM.Translate(0, float64(y)*cellHeight)
		op.ColorScale.ScaleWithColor(foreground)
		text.Draw(screen, w.frame.Row(y), w.face, op)
	}

	face := basicfont.Face7x13
	baseline := w.frame.Height*w.cfg.Display.CellHeight + face.Ascent + 1
	ebitext.Draw(screen, w.status, face, 4, baseline, hudColor)
}

// Layout implements ebiten.Game
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := w.cfg.GetWindowSize()
	return width, height + hudHeight
}
