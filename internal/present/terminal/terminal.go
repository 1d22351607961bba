// Package terminal presents frames on a tcell screen
package terminal

import (
	"fmt"
	"sync"

	"glyphray/internal/game"
	"glyphray/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Presenter draws frames with tcell and turns key events into controls.
// Terminals report presses only, so a movement key holds its intent until
// the next poll; key repeat keeps the player walking.
type Presenter struct {
	screen tcell.Screen
	style  tcell.Style

	mu       sync.Mutex
	controls game.Controls
	status   string

	done chan struct{}
	once sync.Once
}

// Open initializes the process terminal
func Open() (*Presenter, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	return New(screen), nil
}

// New wraps an initialized screen and starts reading its events
func New(screen tcell.Screen) *Presenter {
	p := &Presenter{
		screen: screen,
		style:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		done:   make(chan struct{}),
	}
	screen.HideCursor()
	go p.eventLoop()
	return p
}

func (p *Presenter) eventLoop() {
	defer close(p.done)
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			p.handleKey(ev)
		case *tcell.EventResize:
			p.screen.Sync()
		}
	}
}

func (p *Presenter) handleKey(ev *tcell.EventKey) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := &p.controls
	switch ev.Key() {
	case tcell.KeyUp:
		c.Intent.Forward = true
		return
	case tcell.KeyDown:
		c.Intent.Backward = true
		return
	case tcell.KeyLeft:
		c.Intent.TurnLeft = true
		return
	case tcell.KeyRight:
		c.Intent.TurnRight = true
		return
	case tcell.KeyPgUp:
		c.Intent.LookUp = true
		return
	case tcell.KeyPgDn:
		c.Intent.LookDown = true
		return
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.Quit = true
		return
	}

	switch ev.Rune() {
	case 'w', 'W':
		c.Intent.Forward = true
	case 's', 'S':
		c.Intent.Backward = true
	case 'a', 'A':
		c.Intent.StrafeLeft = true
	case 'd', 'D':
		c.Intent.StrafeRight = true
	case 'r', 'R':
		c.Intent.LookUp = true
	case 'f', 'F':
		c.Intent.LookDown = true
	case 'm', 'M':
		c.CycleMode = true
	case 'p', 'P':
		c.TogglePause = !c.TogglePause
	case 'q', 'Q':
		c.Quit = true
	}
}

// Poll returns the controls gathered since the previous poll
func (p *Presenter) Poll() game.Controls {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.controls
	p.controls = game.Controls{}
	return c
}

// SetStatus sets the line drawn under the frame when the terminal has room
func (p *Presenter) SetStatus(status string) {
	p.mu.Lock()
	p.status = status
	p.mu.Unlock()
}

// Present draws the frame at the top left of the screen, clipped to its size
func (p *Presenter) Present(frame *render.Frame) error {
	w, h := p.screen.Size()
	p.screen.Clear()

	for y := 0; y < frame.Height && y < h; y++ {
		for x := 0; x < frame.Width && x < w; x++ {
			p.screen.SetContent(x, y, cellRune(frame.At(x, y)), nil, p.style)
		}
	}

	p.mu.Lock()
	status := p.status
	p.mu.Unlock()
	if status != "" && frame.Height < h {
		line := runewidth.Truncate(status, w, "~")
		x := 0
		for _, r := range line {
			p.screen.SetContent(x, frame.Height, r, nil, p.style)
			x += runewidth.RuneWidth(r)
		}
	}

	p.screen.Show()
	return nil
}

// cellRune keeps the frame grid aligned: glyphs the terminal would draw
// wider than one cell fall back to their ASCII density.
func cellRune(r rune) rune {
	if runewidth.RuneWidth(r) == 1 {
		return r
	}
	switch r {
	case render.Block100:
		return '#'
	case render.Block75:
		return '%'
	case render.Block50:
		return '+'
	case render.Block25:
		return ':'
	}
	return '?'
}

// Close restores the terminal and stops the event reader
func (p *Presenter) Close() {
	p.once.Do(func() {
		p.screen.Fini()
		<-p.done
	})
}
