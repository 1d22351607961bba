package graphics

import "glyphray/internal/entity"

// Kind is the capability set of a sprite definition
type Kind int

const (
	KindBasic Kind = iota
	KindDirectional
	KindAnimated
	KindDirectionalAnimated
)

func (k Kind) String() string {
	switch k {
	case KindDirectional:
		return "directional"
	case KindAnimated:
		return "animated"
	case KindDirectionalAnimated:
		return "directional-animated"
	default:
		return "basic"
	}
}

// Frame is a walk-cycle frame
type Frame int

const (
	FrameNone Frame = iota
	FrameWalk1
	FrameWalk2
)

// AnimationFrame maps the shared animation timer onto the walk cycle:
// first frame for 0-4, second for 5-9, standing pose for the rest.
func AnimationFrame(timer int) Frame {
	switch {
	case timer < 5:
		return FrameWalk1
	case timer < 10:
		return FrameWalk2
	default:
		return FrameNone
	}
}

// Pose is one facing of a directional sprite, optionally animated
type Pose struct {
	Base *Texture
	Walk [2]*Texture
}

func (p *Pose) frame(f Frame) *Texture {
	if p == nil || f == FrameNone {
		return nil
	}
	return p.Walk[f-1]
}

// SpriteDef describes how an entity type is drawn
type SpriteDef struct {
	Name string
	Kind Kind

	// Width and Height are the texture proportions the on-screen size is
	// derived from.
	Width  int
	Height int

	HeightFactor float64
	AspectRatio  float64

	Base   *Texture
	Walk   [2]*Texture
	Angles map[entity.Facing]*Pose
}

// HasAngles reports whether the sprite has per-facing variants
func (s *SpriteDef) HasAngles() bool {
	return s.Kind == KindDirectional || s.Kind == KindDirectionalAnimated
}

// HasWalk reports whether the sprite has a walk cycle
func (s *SpriteDef) HasWalk() bool {
	return s.Kind == KindAnimated || s.Kind == KindDirectionalAnimated
}

// Texture selects the texture for a facing and frame. Missing variants fall
// back towards the base texture.
func (s *SpriteDef) Texture(facing entity.Facing, frame Frame) *Texture {
	switch s.Kind {
	case KindDirectionalAnimated:
		pose := s.Angles[facing]
		if tex := pose.frame(frame); tex != nil {
			return tex
		}
		if pose != nil && pose.Base != nil {
			return pose.Base
		}
	case KindDirectional:
		if pose := s.Angles[facing]; pose != nil && pose.Base != nil {
			return pose.Base
		}
	case KindAnimated:
		if frame != FrameNone && s.Walk[frame-1] != nil {
			return s.Walk[frame-1]
		}
	}
	return s.Base
}
