package render

import (
	"log"
	"math"
	"sync"

	"glyphray/internal/config"
	"glyphray/internal/entity"
	"glyphray/internal/graphics"
	"glyphray/internal/mathutil"
)

// SpriteRenderer projects entities as billboards into a frame, z-testing
// each pixel against the depth buffer.
type SpriteRenderer struct {
	atlas  *graphics.Atlas
	shader Shader
	Mode   RenderMode

	verticalDown mathutil.Piecewise
	verticalUp   mathutil.Piecewise
	horizStd     mathutil.Piecewise
	horizDown    mathutil.Piecewise
	horizUp      mathutil.Piecewise

	lookThreshold float64
	minDistance   float64
	closeRange    float64
	distCorr      float64

	warnMu sync.Mutex
	warned map[string]bool
}

// NewSpriteRenderer creates a sprite renderer from the sprite tables
func NewSpriteRenderer(atlas *graphics.Atlas, shader Shader, mode RenderMode, cfg config.SpriteConfig) *SpriteRenderer {
	return &SpriteRenderer{
		atlas:         atlas,
		shader:        shader,
		Mode:          mode,
		verticalDown:  cfg.VerticalDown.Curve(),
		verticalUp:    cfg.VerticalUp.Curve(),
		horizStd:      cfg.HorizontalStandard.Curve(),
		horizDown:     cfg.HorizontalDown.Curve(),
		horizUp:       cfg.HorizontalUp.Curve(),
		lookThreshold: cfg.LookThreshold,
		minDistance:   cfg.MinDistance,
		closeRange:    cfg.CloseRange,
		distCorr:      cfg.DistanceCorrection,
		warned:        make(map[string]bool),
	}
}

// Projection is where an entity lands on screen
type Projection struct {
	Visible  bool
	Angle    float64 // relative to the view heading, in (-π, π]
	Distance float64
	Ceiling  float64
	Floor    float64
	Width    float64
	Height   float64
	Middle   float64
}

// Project computes an entity's on-screen placement without drawing it
func (sr *SpriteRenderer) Project(e *entity.Entity, def *graphics.SpriteDef, player *entity.Player, p Perspective, screenWidth int) Projection {
	vx, vy := e.X-player.X, e.Y-player.Y
	dist := math.Hypot(vx, vy)
	angle := mathutil.NormalizeSigned(math.Atan2(vy, vx) - math.Atan2(player.GetForwardY(), player.GetForwardX()))

	proj := Projection{Angle: angle, Distance: dist}
	if math.Abs(angle) >= player.FOV/2 || dist < sr.minDistance {
		return proj
	}
	proj.Visible = true

	floor := p.Floor(dist)
	ceiling := p.Horizon() - p.Height/dist*def.HeightFactor

	shift := sr.VerticalShift(dist, p.LookTimer)
	floor += shift
	ceiling += shift

	proj.Ceiling = math.Round(ceiling)
	proj.Floor = math.Round(floor)
	proj.Height = proj.Floor - proj.Ceiling

	aspect := float64(def.Height) / (float64(def.Width) * def.AspectRatio)
	proj.Width = proj.Height / aspect

	w := float64(screenWidth)
	baseMiddle := (0.5*(angle/(player.FOV/2)) + 0.5) * w
	horizontalShift := dist * (w * sr.HorizontalIntensity(dist, p.LookTimer))
	proj.Middle = baseMiddle*(1+dist*sr.distCorr) + horizontalShift

	return proj
}

// VerticalShift is the row offset applied to both sprite lines. Looking
// down uses the down table scaled by |look|, looking up the up table.
func (sr *SpriteRenderer) VerticalShift(dist, look float64) float64 {
	switch {
	case look < 0:
		return math.Abs(look) * sr.verticalDown.At(dist)
	case look > 0:
		return -look * sr.verticalUp.At(dist)
	}
	return 0
}

// HorizontalIntensity picks the horizontal shift factor for a distance,
// blending from the standard table into the look table between one and
// two times the look threshold.
func (sr *SpriteRenderer) HorizontalIntensity(dist, look float64) float64 {
	t := sr.lookThreshold
	selected := sr.horizStd
	switch {
	case look < -t:
		selected = sr.horizDown
	case look > t:
		selected = sr.horizUp
	}
	intensity := selected.At(dist)

	abs := math.Abs(look)
	if abs > t && abs <= 2*t {
		blend := (abs - t) / t
		intensity = sr.horizStd.At(dist)*(1-blend) + intensity*blend
	}
	return intensity
}

// FacingFor quantizes the angle between the viewer's and the entity's
// headings into the side of the entity the viewer sees.
func FacingFor(playerAngle, entityHeading float64) entity.Facing {
	a := mathutil.WrapAngle(playerAngle - entityHeading + math.Pi/4)
	switch {
	case a < math.Pi/2:
		return entity.FacingBack
	case a < math.Pi:
		return entity.FacingLeft
	case a < 3*math.Pi/2:
		return entity.FacingFront
	default:
		return entity.FacingRight
	}
}

// Draw renders entities in slice order. Directional entities get their
// Facing updated.
func (sr *SpriteRenderer) Draw(frame *Frame, entities []*entity.Entity, player *entity.Player, p Perspective, animationTimer int) {
	for _, e := range entities {
		def, ok := sr.atlas.Sprite(e.Type)
		if !ok {
			sr.warnUnknown(e)
			continue
		}
		sr.drawEntity(frame, e, def, player, p, animationTimer)
	}
}

func (sr *SpriteRenderer) drawEntity(frame *Frame, e *entity.Entity, def *graphics.SpriteDef, player *entity.Player, p Perspective, animationTimer int) {
	proj := sr.Project(e, def, player, p, frame.Width)
	if !proj.Visible || proj.Height <= 0 || proj.Width <= 0 {
		return
	}

	frameKind := graphics.FrameNone
	if e.Moving && def.HasWalk() {
		frameKind = graphics.AnimationFrame(animationTimer)
	}
	if def.HasAngles() {
		e.Facing = FacingFor(player.Angle, e.R)
	}
	tex := def.Texture(e.Facing, frameKind)

	dist := proj.Distance
	closeCollision := dist >= sr.minDistance && dist <= sr.closeRange
	ceiling := int(proj.Ceiling)
	height := int(proj.Height)

	for sx := 0; float64(sx) < proj.Width; sx++ {
		col := int(proj.Middle + float64(sx) - proj.Width/2)
		if col < 0 || col >= frame.Width {
			continue
		}
		sampleX := float64(sx) / proj.Width

		for sy := 0; sy < height; sy++ {
			row := ceiling + sy
			if row < 0 || row >= frame.Height {
				continue
			}

			glyph := tex.Sample(sampleX, float64(sy)/proj.Height)
			if sr.Mode != ModeTexture {
				glyph = sr.shader.Texel(dist, glyph)
			}
			if glyph == '.' || glyph == Blank {
				continue
			}

			// close range bypasses the depth test
			if closeCollision || frame.Depth[col] >= dist {
				frame.Glyphs[row*frame.Width+col] = glyph
				frame.Depth[col] = dist
			}
		}
	}
}

func (sr *SpriteRenderer) warnUnknown(e *entity.Entity) {
	sr.warnMu.Lock()
	defer sr.warnMu.Unlock()
	if sr.warned[e.Type] {
		return
	}
	sr.warned[e.Type] = true
	log.Printf("Warning: unknown sprite type %q for entity %s, skipping", e.Type, e.ID)
}
