package world

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// ErrUnknownLevel is returned when no level file exists for a name
var ErrUnknownLevel = errors.New("unknown level")

// SpriteSpawn is an explicitly placed entity in a level file
type SpriteSpawn struct {
	ID    string  `yaml:"id"`
	Type  string  `yaml:"type"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	R     float64 `yaml:"r"`
	Speed float64 `yaml:"speed"`
	Move  bool    `yaml:"move"`
}

// StartPosition is where the player enters a level
type StartPosition struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// LevelFile is the on-disk level format
type LevelFile struct {
	Name    string        `yaml:"name"`
	ExitTo  string        `yaml:"exit_to"`
	Player  StartPosition `yaml:"player"`
	Autogen bool          `yaml:"autogen"`
	Sprites []SpriteSpawn `yaml:"sprites"`
	Rows    []string      `yaml:"rows"`
}

// Level is a parsed, validated level
type Level struct {
	Name    string
	ExitTo  string
	Start   StartPosition
	Autogen bool
	Spawns  []SpriteSpawn
	Grid    *GridMap
}

// ParseLevel decodes and validates level YAML
func ParseLevel(data []byte) (*Level, error) {
	var file LevelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	grid, err := NewGridMap(file.Rows)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", file.Name, err)
	}

	if !grid.CanMoveTo(file.Player.X, file.Player.Y) {
		return nil, fmt.Errorf("level %q: %w: player start (%.2f, %.2f) is not on a floor tile",
			file.Name, ErrInvalidGrid, file.Player.X, file.Player.Y)
	}

	for i, s := range file.Sprites {
		if s.Type == "" {
			return nil, fmt.Errorf("level %q: sprite %d has no type", file.Name, i)
		}
	}

	return &Level{
		Name:    file.Name,
		ExitTo:  file.ExitTo,
		Start:   file.Player,
		Autogen: file.Autogen,
		Spawns:  file.Sprites,
		Grid:    grid,
	}, nil
}

// LoadLevel reads <name>.yaml from a level directory
func LoadLevel(levels fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(levels, path.Clean(name)+".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, name)
		}
		return nil, fmt.Errorf("failed to read level file %s: %w", name, err)
	}

	level, err := ParseLevel(data)
	if err != nil {
		return nil, err
	}
	if level.Name == "" {
		level.Name = name
	}
	return level, nil
}
