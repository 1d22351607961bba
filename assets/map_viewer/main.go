package main

import (
	"flag"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"math"
	"os"
	"sort"
	"strings"

	"glyphray/assets"
	"glyphray/internal/graphics"
	"glyphray/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type levelInfo struct {
	Key   string
	Level *world.Level
	Err   error
}

type viewer struct {
	levels      []levelInfo
	levelIndex  int
	legendLines []string
	sidebarTab  int
	lastErr     string
}

const (
	tabInfo = iota
	tabLegend
)

var (
	floorColor      = color.RGBA{45, 45, 55, 255}
	wallColor       = color.RGBA{120, 110, 95, 255}
	texturedColor   = color.RGBA{150, 120, 80, 255}
	exitColor       = color.RGBA{60, 180, 90, 255}
	objectColor     = color.RGBA{90, 120, 170, 255}
	openObjectColor = color.RGBA{110, 170, 210, 255}
	startColor      = color.RGBA{50, 200, 255, 255}
	spawnColor      = color.RGBA{255, 220, 0, 255}
	movingColor     = color.RGBA{230, 80, 80, 255}
	borderColor     = color.RGBA{70, 70, 90, 255}
)

func main() {
	levelDir := flag.String("levels", "", "level directory (default: embedded levels)")
	textures := flag.String("textures", "", "texture atlas file (default: embedded atlas)")
	flag.Parse()

	levels := assets.Levels()
	if *levelDir != "" {
		levels = os.DirFS(*levelDir)
	}

	var atlas *graphics.Atlas
	var err error
	if *textures != "" {
		atlas, err = graphics.LoadAtlas(os.DirFS("."), *textures)
	} else {
		atlas, err = graphics.LoadAtlas(assets.Files, assets.TexturesFile)
	}
	if err != nil {
		log.Printf("Warning: %v", err)
		atlas = graphics.NewAtlas()
	}

	v := &viewer{
		levels:      loadLevels(levels),
		legendLines: buildLegendLines(atlas),
		sidebarTab:  tabInfo,
	}
	if len(v.levels) == 0 {
		v.lastErr = "no levels loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("glyphray level viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.sidebarTab = 1 - v.sidebarTab
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if len(v.levels) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.levelIndex = (v.levelIndex + 1) % len(v.levels)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.levelIndex = (v.levelIndex + len(v.levels) - 1) % len(v.levels)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.levels) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	l := v.levels[v.levelIndex]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("level %s failed to load: %v", l.Key, l.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapW := screenW - sidebarWidth - padding*3
	mapH := screenH - padding*2
	sidebarX := padding + mapW + padding

	drawLevelPanel(screen, l, padding, padding, mapW, mapH)
	drawSidebar(screen, l, sidebarX, padding, sidebarWidth, mapH, v.sidebarTab, v.legendLines)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawLevelPanel(screen *ebiten.Image, l levelInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, borderColor)

	grid := l.Level.Grid
	tileSize := w / grid.Width
	if alt := h / grid.Height; alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}
	originX := x + (w-grid.Width*tileSize)/2
	originY := y + (h-grid.Height*tileSize)/2

	for ty := 0; ty < grid.Height; ty++ {
		for tx := 0; tx < grid.Width; tx++ {
			tile, _ := grid.At(tx, ty)
			vector.DrawFilledRect(screen, float32(originX+tx*tileSize), float32(originY+ty*tileSize),
				float32(tileSize), float32(tileSize), tileColor(tile), false)
		}
	}

	drawOverlays(screen, l.Level, originX, originY, tileSize)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%s.yaml)", l.Level.Name, l.Key), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch levels, Esc to quit", x+12, y+24)
}

// tileColor maps a tile onto its top-down color
func tileColor(t world.Tile) color.RGBA {
	switch {
	case t.IsFloor():
		return floorColor
	case t.IsExit():
		return exitColor
	case t == world.TileObject:
		return objectColor
	case t == world.TileOpenObject:
		return openObjectColor
	case t == world.TileWall:
		return wallColor
	default:
		return texturedColor
	}
}

func drawOverlays(screen *ebiten.Image, level *world.Level, originX, originY, tileSize int) {
	scale := float32(tileSize)
	sx := float32(originX) + float32(level.Start.X)*scale
	sy := float32(originY) + float32(level.Start.Y)*scale
	vector.DrawFilledCircle(screen, sx, sy, scale*0.35, startColor, true)
	vector.StrokeLine(screen, sx, sy,
		sx+float32(math.Cos(level.Start.Angle))*scale,
		sy+float32(math.Sin(level.Start.Angle))*scale, 2, startColor, true)

	for _, s := range level.Spawns {
		clr := spawnColor
		if s.Move {
			clr = movingColor
		}
		cx := float32(originX) + float32(s.X)*scale
		cy := float32(originY) + float32(s.Y)*scale
		vector.DrawFilledRect(screen, cx-scale*0.3, cy-scale*0.3, scale*0.6, scale*0.6, clr, false)
		if tileSize >= 12 {
			ebitenutil.DebugPrintAt(screen, firstLetter(s.Type), int(cx)-3, int(cy)-8)
		}
	}
}

func drawSidebar(screen *ebiten.Image, l levelInfo, x, y, w, h int, tab int, legendLines []string) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, borderColor)

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	lines := legendLines
	if tab == tabInfo {
		lines = levelStats(l.Level)
	}
	for _, line := range lines {
		if row > y+h-16 {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

// levelStats returns the info tab lines for a level
func levelStats(level *world.Level) []string {
	exit := level.ExitTo
	if exit == "" {
		exit = "(none)"
	}
	moving := 0
	for _, s := range level.Spawns {
		if s.Move {
			moving++
		}
	}
	return []string{
		fmt.Sprintf("Tiles: %dx%d", level.Grid.Width, level.Grid.Height),
		fmt.Sprintf("Floor cells: %d", len(level.Grid.FloorCells())),
		fmt.Sprintf("Sprites: %d (%d moving)", len(level.Spawns), moving),
		fmt.Sprintf("Autogen: %v", level.Autogen),
		fmt.Sprintf("Exit to: %s", exit),
		fmt.Sprintf("Start: %.1f, %.1f facing %.2f", level.Start.X, level.Start.Y, level.Start.Angle),
		"",
		"Markers:",
		"Cyan: start  Yellow: sprites",
		"Red: moving sprites",
	}
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, borderColor)
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

// loadLevels reads every level file in a directory, keeping failures so the
// viewer can show them
func loadLevels(levels fs.FS) []levelInfo {
	names, err := fs.Glob(levels, "*.yaml")
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil
	}
	sort.Strings(names)

	infos := make([]levelInfo, 0, len(names))
	for _, name := range names {
		key := strings.TrimSuffix(name, ".yaml")
		level, err := world.LoadLevel(levels, key)
		if err != nil {
			log.Printf("Warning: %v", err)
		}
		infos = append(infos, levelInfo{Key: key, Level: level, Err: err})
	}
	return infos
}

// buildLegendLines lists the tile symbols and sprite types the atlas knows
func buildLegendLines(atlas *graphics.Atlas) []string {
	lines := []string{
		"Tiles:",
		"  .  floor",
		"  #  wall",
		"  X  exit door",
		"  o  translucent object",
		"  ,  open object",
	}

	walls := make([]string, 0, len(atlas.Walls))
	for tile, tex := range atlas.Walls {
		label := fmt.Sprintf("  %c  textured", tile)
		if tex.IsDirectional() {
			label += ", directional"
		}
		walls = append(walls, label)
	}
	sort.Strings(walls)
	lines = append(lines, walls...)

	lines = append(lines, "", "Sprites:")
	sprites := make([]string, 0, len(atlas.Sprites))
	for name, def := range atlas.Sprites {
		sprites = append(sprites, fmt.Sprintf("  %s  %s %dx%d", name, def.Kind, def.Width, def.Height))
	}
	sort.Strings(sprites)
	return append(lines, sprites...)
}

func firstLetter(s string) string {
	if s == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(s)[0]))
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(thickness), clr, false)
}
