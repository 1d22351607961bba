package world

import (
	"fmt"
	"math"
	"math/rand"

	"glyphray/internal/entity"
	"glyphray/internal/mathutil"
)

// Local sprite types placed by the generator
var generatedTypes = []string{"O", "P"}

const maxPlacementAttempts = 1000

// GenerateEntities scatters wandering entities over the floor cells of a
// grid. The count scales with the square of the grid width.
func GenerateEntities(grid *GridMap, rng *rand.Rand, density float64) []*entity.Entity {
	if density <= 0 {
		return nil
	}
	count := int(math.Round(float64(grid.Width*grid.Width) / density))
	floor := grid.FloorCells()
	if len(floor) == 0 {
		return nil
	}

	entities := make([]*entity.Entity, 0, count)
	for i := 0; i < count; i++ {
		x, y := placeOnFloor(grid, rng, floor)
		entities = append(entities, &entity.Entity{
			ID:     fmt.Sprintf("local-%d", i+1),
			Type:   generatedTypes[rng.Intn(len(generatedTypes))],
			X:      x,
			Y:      y,
			R:      rng.Float64() * mathutil.TwoPi,
			Moving: true,
			Speed:  float64(rng.Intn(5)+1) * 0.01,
		})
	}
	return entities
}

// placeOnFloor rolls random coordinates until one lands on floor. After too
// many misses it falls back to the center of a random floor cell.
func placeOnFloor(grid *GridMap, rng *rand.Rand, floor [][2]int) (float64, float64) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		x := rng.Float64() * float64(grid.Width)
		y := rng.Float64() * float64(grid.Height)
		if grid.CanMoveTo(x, y) {
			return x, y
		}
	}
	cell := floor[rng.Intn(len(floor))]
	return float64(cell[0]) + 0.5, float64(cell[1]) + 0.5
}

// SpawnEntities builds the level's starting roster: explicit spawns first,
// then generated wanderers when the level asks for them.
func (l *Level) SpawnEntities(rng *rand.Rand, density, defaultSpeed float64) []*entity.Entity {
	entities := make([]*entity.Entity, 0, len(l.Spawns))
	for i, s := range l.Spawns {
		id := s.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", l.Name, i+1)
		}
		speed := s.Speed
		if speed <= 0 {
			speed = defaultSpeed
		}
		entities = append(entities, &entity.Entity{
			ID:     id,
			Type:   s.Type,
			X:      s.X,
			Y:      s.Y,
			R:      s.R,
			Moving: s.Move,
			Speed:  speed,
		})
	}
	if l.Autogen {
		entities = append(entities, GenerateEntities(l.Grid, rng, density)...)
	}
	return entities
}
