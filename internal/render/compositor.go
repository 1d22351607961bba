package render

import (
	"glyphray/internal/graphics"
	"glyphray/internal/mathutil"
	"glyphray/internal/world"
)

// openCeilingGlyph fills the ceiling of columns that look through an open object
const openCeilingGlyph = '1'

// Compositor fills screen columns from ray hits
type Compositor struct {
	atlas  *graphics.Atlas
	shader Shader
	sky    *Skybox
	Mode   RenderMode
}

// NewCompositor creates a compositor. A nil sky falls back to the shaded
// ceiling ladder.
func NewCompositor(atlas *graphics.Atlas, shader Shader, sky *Skybox, mode RenderMode) *Compositor {
	return &Compositor{
		atlas:  atlas,
		shader: shader,
		sky:    sky,
		Mode:   mode,
	}
}

// ColumnView is the per-tick view data every column shares
type ColumnView struct {
	Perspective    Perspective
	HeadingDegrees int
}

// Column draws ceiling, wall, floor and translucent objects for one column
// and records the wall distance in the depth buffer.
func (c *Compositor) Column(frame *Frame, col int, rayAngle float64, hit RayHit, view ColumnView) {
	p := view.Perspective
	ceiling := p.Ceiling(hit.WallDistance)
	floor := p.Floor(hit.WallDistance)
	doorFrame := p.Horizon() - p.Height/(hit.WallDistance+2)

	frame.Depth[col] = hit.WallDistance

	var wallTexture *graphics.Texture
	if c.Mode != ModeSolid && hit.WallType != world.TileDoor {
		wallTexture = c.atlas.Wall(hit.WallType).Resolve(view.HeadingDegrees)
	}

	worldAngle := mathutil.WrapAngle(rayAngle)
	skyOffset := p.SkyOffset()

	for row := 0; row < frame.Height; row++ {
		fr := float64(row)
		var glyph rune

		switch {
		case fr < ceiling:
			switch {
			case hit.OpenObject:
				glyph = openCeilingGlyph
			case c.sky != nil:
				glyph = c.sky.Glyph(worldAngle, fr/p.Height+skyOffset)
			default:
				glyph = CeilingGlyph(p, row)
			}

		case fr > ceiling && fr <= floor:
			switch {
			case hit.WallType == world.TileDoor:
				glyph = c.shader.Gate(row, hit.WallDistance, doorFrame)
			default:
				glyph = c.wallGlyph(wallTexture, hit, (fr-ceiling)/(floor-ceiling))
			}

		default:
			glyph = FloorGlyph(p, row)
		}

		frame.Glyphs[row*frame.Width+col] = glyph
	}

	if hit.HitObject && hit.ObjectType == world.TileObject {
		c.objectPass(frame, col, hit, p)
	}
}

func (c *Compositor) wallGlyph(tex *graphics.Texture, hit RayHit, sampleY float64) rune {
	switch c.Mode {
	case ModeTexture:
		return tex.Sample(hit.SampleX, sampleY)
	case ModeShaded:
		return c.shader.Texel(hit.WallDistance, tex.Sample(hit.SampleX, sampleY))
	default:
		return c.shader.Solid(hit.WallDistance, hit.Boundary)
	}
}

// objectPass draws the lower part of a translucent object, from its back
// face down to its front floor line.
func (c *Compositor) objectPass(frame *Frame, col int, hit RayHit, p Perspective) {
	top := p.Ceiling(hit.ObjectDistance)
	bottom := p.Floor(hit.ObjectDistance)
	back := p.Floor(hit.ObjectBackDistance)
	glyph := c.shader.Solid(hit.ObjectDistance, hit.Boundary)

	for row := 0; row < frame.Height; row++ {
		fr := float64(row)
		if fr > top && fr <= bottom && fr >= back {
			frame.Glyphs[row*frame.Width+col] = glyph
		}
	}
}
