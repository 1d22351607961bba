package graphics

import (
	"fmt"
	"io/fs"
	"log"
	"strings"
	"unicode/utf8"

	"glyphray/internal/entity"
	"glyphray/internal/world"

	"gopkg.in/yaml.v3"
)

type textureFile struct {
	Width  int          `yaml:"width"`
	Height int          `yaml:"height"`
	Scale  float64      `yaml:"scale"`
	Pixels string       `yaml:"pixels"`
	North  *textureFile `yaml:"north"`
	South  *textureFile `yaml:"south"`
}

type poseFile struct {
	Pixels string        `yaml:"pixels"`
	Walk   []textureFile `yaml:"walk"`
}

type spriteFile struct {
	Width        int                 `yaml:"width"`
	Height       int                 `yaml:"height"`
	Scale        float64             `yaml:"scale"`
	HeightFactor float64             `yaml:"height_factor"`
	AspectRatio  float64             `yaml:"aspect_ratio"`
	Pixels       string              `yaml:"pixels"`
	Walk         []textureFile       `yaml:"walk"`
	Angles       map[string]poseFile `yaml:"angles"`
}

type atlasFile struct {
	Textures map[string]textureFile `yaml:"textures"`
	Sprites  map[string]spriteFile  `yaml:"sprites"`
}

// Atlas holds the wall textures and sprite definitions of a game
type Atlas struct {
	Walls   map[world.Tile]*WallTexture
	Sprites map[string]*SpriteDef
}

// NewAtlas creates an empty atlas
func NewAtlas() *Atlas {
	return &Atlas{
		Walls:   make(map[world.Tile]*WallTexture),
		Sprites: make(map[string]*SpriteDef),
	}
}

// Wall returns the texture for a wall tile, or nil
func (a *Atlas) Wall(t world.Tile) *WallTexture {
	return a.Walls[t]
}

// Sprite looks up a sprite definition by type
func (a *Atlas) Sprite(name string) (*SpriteDef, bool) {
	s, ok := a.Sprites[name]
	return s, ok
}

// LoadAtlas reads an atlas YAML file
func LoadAtlas(fsys fs.FS, name string) (*Atlas, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture file %s: %w", name, err)
	}
	return ParseAtlas(data)
}

// ParseAtlas decodes atlas YAML. Texture keys must be single tile symbols.
func ParseAtlas(data []byte) (*Atlas, error) {
	var file atlasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse texture file: %w", err)
	}

	atlas := NewAtlas()
	for key, tf := range file.Textures {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("texture key %q must be a single tile symbol", key)
		}
		tile, _ := utf8.DecodeRuneInString(key)
		atlas.Walls[world.Tile(tile)] = buildWall(key, tf)
	}

	for name, sf := range file.Sprites {
		def, err := buildSprite(name, sf)
		if err != nil {
			return nil, err
		}
		atlas.Sprites[name] = def
	}
	return atlas, nil
}

func buildWall(key string, tf textureFile) *WallTexture {
	wall := &WallTexture{}
	if tf.North != nil || tf.South != nil {
		wall.North = buildTexture(key+"/north", *orEmpty(tf.North), tf)
		wall.South = buildTexture(key+"/south", *orEmpty(tf.South), tf)
		return wall
	}
	wall.Base = buildTexture(key, tf, textureFile{})
	return wall
}

func orEmpty(tf *textureFile) *textureFile {
	if tf == nil {
		return &textureFile{}
	}
	return tf
}

// buildTexture converts a texture definition, inheriting unset geometry
// from parent.
func buildTexture(label string, tf, parent textureFile) *Texture {
	width, height, scale := tf.Width, tf.Height, tf.Scale
	if width == 0 {
		width = parent.Width
	}
	if height == 0 {
		height = parent.Height
	}
	if scale == 0 {
		scale = parent.Scale
	}

	tex := NewTexture(width, height, scale, stripLayout(tf.Pixels))
	if n := len(tex.Pixels); n != 0 && n != tex.Width*tex.Height {
		log.Printf("Warning: texture %s has %d pixels, expected %dx%d", label, n, tex.Width, tex.Height)
	}
	return tex
}

// stripLayout drops the line breaks used to lay pixel rows out in YAML
func stripLayout(pixels string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(pixels)
}

func buildSprite(name string, sf spriteFile) (*SpriteDef, error) {
	geometry := textureFile{Width: sf.Width, Height: sf.Height, Scale: sf.Scale}
	if geometry.Width == 0 {
		geometry.Width = DefaultTextureWidth
	}
	if geometry.Height == 0 {
		geometry.Height = DefaultTextureHeight
	}
	if geometry.Scale == 0 {
		geometry.Scale = 1
	}

	def := &SpriteDef{
		Name:         name,
		Width:        geometry.Width,
		Height:       geometry.Height,
		HeightFactor: sf.HeightFactor,
		AspectRatio:  sf.AspectRatio,
	}
	if def.HeightFactor == 0 {
		def.HeightFactor = 1
	}
	if def.AspectRatio == 0 {
		def.AspectRatio = 1
	}

	if sf.Pixels != "" {
		base := geometry
		base.Pixels = sf.Pixels
		def.Base = buildTexture(name, base, geometry)
	}

	walk, err := buildWalk(name, sf.Walk, geometry)
	if err != nil {
		return nil, err
	}
	def.Walk = walk
	animated := walk[0] != nil

	if len(sf.Angles) > 0 {
		def.Angles = make(map[entity.Facing]*Pose, len(sf.Angles))
		for key, pf := range sf.Angles {
			facing, ok := entity.ParseFacing(key)
			if !ok {
				return nil, fmt.Errorf("sprite %s: unknown facing %q", name, key)
			}
			pose := &Pose{}
			if pf.Pixels != "" {
				pt := geometry
				pt.Pixels = pf.Pixels
				pose.Base = buildTexture(name+"/"+key, pt, geometry)
			}
			if pose.Walk, err = buildWalk(name+"/"+key, pf.Walk, geometry); err != nil {
				return nil, err
			}
			animated = animated || pose.Walk[0] != nil
			def.Angles[facing] = pose
		}
	}

	switch {
	case def.Angles != nil && animated:
		def.Kind = KindDirectionalAnimated
	case def.Angles != nil:
		def.Kind = KindDirectional
	case animated:
		def.Kind = KindAnimated
	default:
		def.Kind = KindBasic
	}

	if def.Base == nil && def.Angles == nil && !animated {
		return nil, fmt.Errorf("sprite %s has no pixels", name)
	}
	return def, nil
}

func buildWalk(label string, frames []textureFile, geometry textureFile) ([2]*Texture, error) {
	var walk [2]*Texture
	switch len(frames) {
	case 0:
		return walk, nil
	case 2:
		walk[0] = buildTexture(label+"/W1", frames[0], geometry)
		walk[1] = buildTexture(label+"/W2", frames[1], geometry)
		return walk, nil
	default:
		return walk, fmt.Errorf("sprite %s: walk cycle needs 2 frames, got %d", label, len(frames))
	}
}
