package game

import (
	"context"
	"sync/atomic"
	"time"

	"glyphray/internal/render"
)

// Controls is what a presenter collected since the last poll
type Controls struct {
	Intent      Intent
	CycleMode   bool
	TogglePause bool
	Quit        bool
}

// Presenter shows frames and turns its input devices into controls
type Presenter interface {
	Poll() Controls
	Present(frame *render.Frame) error
}

// StatusPresenter is a presenter that can show a status line
type StatusPresenter interface {
	Presenter
	SetStatus(status string)
}

// GameLoop drives ticks on a fixed interval
type GameLoop struct {
	game      *Game
	presenter Presenter
	interval  time.Duration
	paused    atomic.Bool
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *Game, presenter Presenter) *GameLoop {
	return &GameLoop{
		game:      game,
		presenter: presenter,
		interval:  time.Duration(game.config.Engine.TickMs) * time.Millisecond,
	}
}

// Pause stops ticking until Resume. Frames are not presented while paused.
func (gl *GameLoop) Pause() {
	gl.paused.Store(true)
}

// Resume restarts ticking after Pause
func (gl *GameLoop) Resume() {
	gl.paused.Store(false)
}

// Paused reports whether the loop is paused
func (gl *GameLoop) Paused() bool {
	return gl.paused.Load()
}

// Run ticks until the context is cancelled or the presenter asks to quit.
// Each tick completes before the next one starts.
func (gl *GameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(gl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			done, err := gl.Update()
			if err != nil || done {
				return err
			}
		}
	}
}

// Update runs one scheduler step: poll, apply controls, tick, present.
// It returns true once the presenter has asked to quit.
func (gl *GameLoop) Update() (bool, error) {
	c := gl.presenter.Poll()
	if c.Quit {
		return true, nil
	}
	if c.TogglePause {
		gl.paused.Store(!gl.paused.Load())
	}
	if c.CycleMode {
		gl.game.CycleRenderMode()
	}
	if gl.paused.Load() {
		return false, nil
	}

	gl.game.SetIntent(c.Intent)
	frame := gl.game.Tick()
	if sp, ok := gl.presenter.(StatusPresenter); ok {
		sp.SetStatus(gl.game.Status())
	}
	return false, gl.presenter.Present(frame)
}
