package entity

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateEntity = errors.New("duplicate entity id")
	ErrEntityNotFound  = errors.New("entity not found")
)

// Roster is the ordered entity collection. Order is the draw order; ids
// stay attached to their entity across re-sorts.
type Roster struct {
	entities []*Entity
	index    map[string]int
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{
		entities: make([]*Entity, 0),
		index:    make(map[string]int),
	}
}

// Add appends an entity to the end of the roster
func (r *Roster) Add(e *Entity) error {
	if e == nil {
		return fmt.Errorf("add entity: nil entity")
	}
	if _, exists := r.index[e.ID]; exists {
		return fmt.Errorf("add entity %q: %w", e.ID, ErrDuplicateEntity)
	}
	r.index[e.ID] = len(r.entities)
	r.entities = append(r.entities, e)
	return nil
}

// Remove deletes an entity, keeping the order of the rest
func (r *Roster) Remove(id string) error {
	i, exists := r.index[id]
	if !exists {
		return fmt.Errorf("remove entity %q: %w", id, ErrEntityNotFound)
	}
	r.entities = append(r.entities[:i], r.entities[i+1:]...)
	delete(r.index, id)
	r.reindex(i)
	return nil
}

// Replace swaps the whole roster, e.g. on a level change
func (r *Roster) Replace(entities []*Entity) error {
	next := NewRoster()
	for _, e := range entities {
		if err := next.Add(e); err != nil {
			return err
		}
	}
	*r = *next
	return nil
}

// Get looks up an entity by id
func (r *Roster) Get(id string) (*Entity, bool) {
	i, exists := r.index[id]
	if !exists {
		return nil, false
	}
	return r.entities[i], true
}

// Len returns the number of entities
func (r *Roster) Len() int {
	return len(r.entities)
}

// Entities returns the roster in draw order. The slice is owned by the roster.
func (r *Roster) Entities() []*Entity {
	return r.entities
}

// Snapshot returns a copy of the ordered entity list. Entities are shared,
// the slice is not, so the caller may re-sort it freely.
func (r *Roster) Snapshot() []*Entity {
	out := make([]*Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// SortByDistance stamps every entity's Z and re-sorts farthest-first
func (r *Roster) SortByDistance(x, y float64) {
	SortFarthestFirst(r.entities, x, y)
	r.reindex(0)
}

func (r *Roster) reindex(from int) {
	for i := from; i < len(r.entities); i++ {
		r.index[r.entities[i].ID] = i
	}
}

// SortFarthestFirst stamps Z on each entity and stable-sorts the slice by
// descending Z. Equal distances keep their previous relative order.
func SortFarthestFirst(entities []*Entity, x, y float64) {
	for _, e := range entities {
		e.Z = e.DistanceTo(x, y)
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Z > entities[j].Z
	})
}
