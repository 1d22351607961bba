// Package assets embeds the default textures and levels
package assets

import (
	"embed"
	"io/fs"
)

// TexturesFile is the atlas file name inside Files
const TexturesFile = "textures.yaml"

// DefaultLevel is the level a new game starts in
const DefaultLevel = "level1"

//go:embed textures.yaml levels/*.yaml
var Files embed.FS

// Levels returns the embedded level directory
func Levels() fs.FS {
	levels, err := fs.Sub(Files, "levels")
	if err != nil {
		panic(err)
	}
	return levels
}
