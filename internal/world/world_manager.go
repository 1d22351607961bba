package world

import (
	"fmt"
	"io/fs"
	"log"
)

// WorldManager loads levels on demand and tracks the active one
type WorldManager struct {
	CurrentLevel string
	LoadedLevels map[string]*Level
	levels       fs.FS
}

// NewWorldManager creates a manager reading level files from levels
func NewWorldManager(levels fs.FS) *WorldManager {
	return &WorldManager{
		LoadedLevels: make(map[string]*Level),
		levels:       levels,
	}
}

// Load returns a level, reading it the first time it is asked for
func (wm *WorldManager) Load(name string) (*Level, error) {
	if level, exists := wm.LoadedLevels[name]; exists {
		return level, nil
	}

	level, err := LoadLevel(wm.levels, name)
	if err != nil {
		return nil, err
	}
	wm.LoadedLevels[name] = level
	log.Printf("Loaded level %s (%dx%d)", name, level.Grid.Width, level.Grid.Height)
	return level, nil
}

// SwitchTo makes a level current
func (wm *WorldManager) SwitchTo(name string) (*Level, error) {
	level, err := wm.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to switch to level %s: %w", name, err)
	}
	wm.CurrentLevel = name
	return level, nil
}

// Current returns the active level, or nil before the first SwitchTo
func (wm *WorldManager) Current() *Level {
	return wm.LoadedLevels[wm.CurrentLevel]
}

// Next returns the level the current one exits to
func (wm *WorldManager) Next() (*Level, error) {
	current := wm.Current()
	if current == nil || current.ExitTo == "" {
		return nil, fmt.Errorf("%w: level %q has no exit", ErrUnknownLevel, wm.CurrentLevel)
	}
	return wm.SwitchTo(current.ExitTo)
}
