package main

import (
	"image/color"
	"strings"
	"testing"
	"testing/fstest"

	"glyphray/assets"
	"glyphray/internal/graphics"
	"glyphray/internal/world"
)

func TestLoadLevelsKeepsFailures(t *testing.T) {
	levels := fstest.MapFS{
		"b.yaml":    {Data: []byte("name: b\nplayer: {x: 1.5, y: 1.5}\nrows: [\"###\", \"#.#\", \"###\"]\n")},
		"a.yaml":    {Data: []byte("name: a\nrows: [\"##\", \"#\"]\n")},
		"notes.txt": {Data: []byte("ignored")},
	}

	infos := loadLevels(levels)

	if len(infos) != 2 || infos[0].Key != "a" || infos[1].Key != "b" {
		t.Fatalf("Expected levels a and b in order, got %+v", infos)
	}
	if infos[0].Err == nil {
		t.Error("Expected the ragged level to fail")
	}
	if infos[1].Err != nil || infos[1].Level.Grid.Width != 3 {
		t.Errorf("Expected level b to load, got %v", infos[1].Err)
	}
}

func TestEmbeddedLevelsLoad(t *testing.T) {
	for _, info := range loadLevels(assets.Levels()) {
		if info.Err != nil {
			t.Errorf("Level %s: %v", info.Key, info.Err)
			continue
		}
		stats := levelStats(info.Level)
		t.Logf("%s: %s", info.Key, strings.Join(stats[:5], ", "))
	}
}

func TestTileColor(t *testing.T) {
	testCases := []struct {
		name string
		tile world.Tile
		want color.RGBA
	}{
		{"floor", world.TileFloor, floorColor},
		{"wall", world.TileWall, wallColor},
		{"exit", world.TileDoor, exitColor},
		{"object", world.TileObject, objectColor},
		{"open object", world.TileOpenObject, openObjectColor},
		{"textured wall", world.Tile('7'), texturedColor},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tileColor(tc.tile); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestBuildLegendLines(t *testing.T) {
	atlas, err := graphics.LoadAtlas(assets.Files, assets.TexturesFile)
	if err != nil {
		t.Fatalf("LoadAtlas failed: %v", err)
	}

	legend := strings.Join(buildLegendLines(atlas), "\n")
	for _, want := range []string{"7  textured, directional", "P  directional-animated 8x8", "O  animated"} {
		if !strings.Contains(legend, want) {
			t.Errorf("Expected legend to contain %q\n%s", want, legend)
		}
	}
}

func TestFirstLetter(t *testing.T) {
	if firstLetter("pillar") != "P" || firstLetter("") != "?" {
		t.Error("Unexpected first letters")
	}
}
