// Package headless runs the game without a display, for scripted runs and tests
package headless

import (
	"glyphray/internal/game"
	"glyphray/internal/render"
)

// Presenter presents a fixed number of frames and then asks to quit.
// Script supplies the intent for each frame; past its end the player
// stands still.
type Presenter struct {
	Script []game.Intent

	frames    int
	presented int
	last      *render.Frame
	status    string
}

// New creates a presenter that stops after frames ticks
func New(frames int) *Presenter {
	return &Presenter{frames: frames}
}

// Poll returns the scripted intent, or quit once enough frames were shown
func (p *Presenter) Poll() game.Controls {
	if p.presented >= p.frames {
		return game.Controls{Quit: true}
	}
	if p.presented < len(p.Script) {
		return game.Controls{Intent: p.Script[p.presented]}
	}
	return game.Controls{}
}

// Present keeps a copy of the frame
func (p *Presenter) Present(frame *render.Frame) error {
	if p.last == nil || p.last.Width != frame.Width || p.last.Height != frame.Height {
		p.last = render.NewFrame(frame.Width, frame.Height)
	}
	p.last.CopyFrom(frame)
	p.presented++
	return nil
}

// SetStatus records the latest status line
func (p *Presenter) SetStatus(status string) {
	p.status = status
}

// Presented returns how many frames were shown
func (p *Presenter) Presented() int {
	return p.presented
}

// Last returns the last frame shown, or nil
func (p *Presenter) Last() *render.Frame {
	return p.last
}

// Status returns the last status line
func (p *Presenter) Status() string {
	return p.status
}

// String renders the last frame followed by the status line
func (p *Presenter) String() string {
	if p.last == nil {
		return ""
	}
	return p.last.String() + "\n" + p.status
}
