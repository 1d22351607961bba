package graphics

import "math"

// Fallback glyphs returned by the sampler instead of failing
const (
	GlyphInvalidTexture = '.' // nil texture
	GlyphMissingPixels  = '*' // texture without pixel data
	GlyphIndexOverflow  = '#' // sample index past the end of the pixel data
	GlyphOutOfRange     = '+' // sample coordinate outside the texture
)

// Default texture geometry when a definition leaves it out
const (
	DefaultTextureWidth  = 16
	DefaultTextureHeight = 16
	DefaultTextureScale  = 2
)

// Texture is a rectangular grid of sample glyphs stored row-major
type Texture struct {
	Width  int
	Height int
	Scale  float64
	Pixels []rune
}

// NewTexture creates a texture, filling in default geometry
func NewTexture(width, height int, scale float64, pixels string) *Texture {
	if width <= 0 {
		width = DefaultTextureWidth
	}
	if height <= 0 {
		height = DefaultTextureHeight
	}
	if scale == 0 {
		scale = DefaultTextureScale
	}
	return &Texture{
		Width:  width,
		Height: height,
		Scale:  scale,
		Pixels: []rune(pixels),
	}
}

// Sample returns the glyph at normalized coordinates (x, y). Coordinates
// are multiplied by the texture scale and wrapped, so a scale of 2 tiles
// the texture twice across one wall face.
func (t *Texture) Sample(x, y float64) rune {
	if t == nil {
		return GlyphInvalidTexture
	}
	if len(t.Pixels) == 0 {
		return GlyphMissingPixels
	}

	x = math.Mod(t.Scale*x, 1)
	y = math.Mod(t.Scale*y, 1)

	sampleX := clampIndex(int(float64(t.Width)*x), t.Width)
	sampleY := clampIndex(int(float64(t.Height)*y), t.Height)

	pos := t.Width*sampleY + sampleX
	if pos >= len(t.Pixels) {
		return GlyphIndexOverflow
	}
	if x < 0 || x > float64(t.Width) || y < 0 || y > float64(t.Height) {
		return GlyphOutOfRange
	}
	return t.Pixels[pos]
}

func clampIndex(i, size int) int {
	if i > size-1 {
		i = size - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// WallTexture is the texture of a wall tile type. Directional walls carry
// separate north and south faces chosen by the viewer's heading.
type WallTexture struct {
	Base  *Texture
	North *Texture
	South *Texture
}

// IsDirectional reports whether the wall swaps faces with the heading
func (w *WallTexture) IsDirectional() bool {
	return w != nil && (w.North != nil || w.South != nil)
}

// Resolve picks the face to sample for a heading in whole degrees:
// south for headings strictly between 0 and 180, north otherwise.
func (w *WallTexture) Resolve(headingDegrees int) *Texture {
	if w == nil {
		return nil
	}
	if !w.IsDirectional() {
		return w.Base
	}
	if headingDegrees > 0 && headingDegrees < 180 {
		return w.South
	}
	return w.North
}
