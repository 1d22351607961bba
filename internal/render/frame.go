package render

import "strings"

// Frame is the glyph buffer and the per-column depth buffer of one tick
type Frame struct {
	Width  int
	Height int
	Glyphs []rune
	Depth  []float64
}

// NewFrame allocates a blank frame
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		Glyphs: make([]rune, width*height),
		Depth:  make([]float64, width),
	}
	f.Reset(0)
	return f
}

// Reset blanks every glyph and sets every depth entry to depth
func (f *Frame) Reset(depth float64) {
	for i := range f.Glyphs {
		f.Glyphs[i] = ' '
	}
	for i := range f.Depth {
		f.Depth[i] = depth
	}
}

// Set writes a glyph, ignoring cells outside the frame
func (f *Frame) Set(x, y int, r rune) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	f.Glyphs[y*f.Width+x] = r
}

// At returns the glyph at a cell, or a space outside the frame
func (f *Frame) At(x, y int) rune {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return ' '
	}
	return f.Glyphs[y*f.Width+x]
}

// Row returns one row as a string
func (f *Frame) Row(y int) string {
	return string(f.Glyphs[y*f.Width : (y+1)*f.Width])
}

// Column returns one column top to bottom
func (f *Frame) Column(x int) []rune {
	col := make([]rune, f.Height)
	for y := 0; y < f.Height; y++ {
		col[y] = f.Glyphs[y*f.Width+x]
	}
	return col
}

// String renders the frame as newline separated rows
func (f *Frame) String() string {
	var b strings.Builder
	b.Grow((f.Width + 1) * f.Height * 3)
	for y := 0; y < f.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Row(y))
	}
	return b.String()
}

// CopyFrom copies another frame of the same size
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.Glyphs, src.Glyphs)
	copy(f.Depth, src.Depth)
}
