package render

import "glyphray/internal/mathutil"

// Density glyphs, densest first
const (
	Block100 = '█'
	Block75  = '▓'
	Block50  = '▒'
	Block25  = '░'
	Blank    = ' '
)

// RenderMode selects how wall faces are drawn
type RenderMode int

const (
	ModeSolid   RenderMode = iota // distance shading only
	ModeTexture                   // raw texture glyphs
	ModeShaded                    // texture glyphs remapped to density
)

func (m RenderMode) String() string {
	switch m {
	case ModeSolid:
		return "solid"
	case ModeTexture:
		return "texture"
	default:
		return "shaded"
	}
}

// Next cycles through the modes
func (m RenderMode) Next() RenderMode {
	return (m + 1) % 3
}

// texel shading per distance tier, columns: '#', '7', '*' or 'o'
var texelShades = [4][3]rune{
	{Block75, Block50, Block25},
	{Block50, Block50, Block25},
	{Block50, Block25, Block25},
	{Block25, Block25, Block25},
}

var solidShades = [4]rune{Block100, Block75, Block50, Block25}

// Shader maps distances onto density glyphs. Tier limits are the render
// depth divided by descending divisors, so nearer surfaces get denser glyphs.
type Shader struct {
	limits []float64
	gate   float64
}

// NewShader builds a shader for a render depth
func NewShader(depth float64, divisors []float64, gateDivisor float64) Shader {
	limits := make([]float64, len(divisors))
	for i, d := range divisors {
		limits[i] = depth / d
	}
	return Shader{limits: limits, gate: depth / gateDivisor}
}

func (s Shader) tier(distance float64) int {
	return mathutil.Step(distance, s.limits)
}

// Texel shades a sampled texture glyph
func (s Shader) Texel(distance float64, texel rune) rune {
	tier := s.tier(distance)
	if tier >= len(texelShades) {
		return Blank
	}
	switch texel {
	case '#':
		return texelShades[tier][0]
	case '7':
		return texelShades[tier][1]
	case '*', 'o':
		return texelShades[tier][2]
	default:
		return Blank
	}
}

// Solid shades a flat surface. Boundary edges are drawn thin up close and
// dropped further out.
func (s Shader) Solid(distance float64, boundary bool) rune {
	tier := s.tier(distance)
	if boundary {
		if tier < 2 {
			return Block25
		}
		return Blank
	}
	if tier >= len(solidShades) {
		return Blank
	}
	return solidShades[tier]
}

// Gate draws a door: a lintel above frameHeight, posts below
func (s Shader) Gate(row int, distance, frameHeight float64) rune {
	near := distance < s.gate
	if float64(row) < frameHeight {
		if near {
			return '═'
		}
		return '='
	}
	if near {
		return '║'
	}
	return '|'
}

var (
	floorLimits       = []float64{0.25, 0.5, 0.75, 0.9}
	floorGlyphs       = []rune{'x', '=', '-', '`', Blank}
	floorDownLimits   = []float64{0.15, 0.3, 0.45, 0.6, 0.75, 0.9}
	floorDownGlyphs   = []rune{'W', 'x', '=', '-', '.', '`', Blank}
	ceilingLimits     = []float64{0.25, 0.5, 0.75, 0.9}
	ceilingGlyphs     = []rune{'`', '-', '=', 'x', '#'}
	ceilingUpLimits   = []float64{0.15, 0.3, 0.5, 0.65, 0.8, 0.9}
	ceilingUpGlyphs   = []rune{Blank, '`', '-', '=', 'x', '#', '@'}
	sharpLookDown     = 0.7
	sharpLookUpFactor = 0.4
)

// FloorGlyph shades a floor row. Looking sharply down switches to a finer
// ladder.
func FloorGlyph(p Perspective, row int) rune {
	b := p.FloorBrightness(row)
	if p.LookDown() > sharpLookDown {
		return floorDownGlyphs[mathutil.Step(b, floorDownLimits)]
	}
	return floorGlyphs[mathutil.Step(b, floorLimits)]
}

// CeilingGlyph shades a ceiling row when the sky is disabled
func CeilingGlyph(p Perspective, row int) rune {
	b := p.CeilingBrightness(row)
	if p.LookTimer > p.LookLimit*sharpLookUpFactor {
		return ceilingUpGlyphs[mathutil.Step(b, ceilingUpLimits)]
	}
	return ceilingGlyphs[mathutil.Step(b, ceilingLimits)]
}
