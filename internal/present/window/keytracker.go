package window

import "github.com/hajimehoshi/ebiten/v2"

// KeyTracker remembers key states between polls so toggles fire once per
// press rather than once per tick while held.
type KeyTracker struct {
	pressed func(ebiten.Key) bool
	prev    map[ebiten.Key]bool
}

// NewKeyTracker creates a tracker reading the live keyboard
func NewKeyTracker() *KeyTracker {
	return newKeyTracker(ebiten.IsKeyPressed)
}

func newKeyTracker(pressed func(ebiten.Key) bool) *KeyTracker {
	return &KeyTracker{pressed: pressed, prev: make(map[ebiten.Key]bool)}
}

// IsKeyJustPressed returns true if the key was up on the previous call for
// that key and is down now.
func (k *KeyTracker) IsKeyJustPressed(key ebiten.Key) bool {
	pressed := k.pressed(key)
	justPressed := pressed && !k.prev[key]
	k.prev[key] = pressed
	return justPressed
}

// AnyJustPressed checks every key and reports whether one of them went down
func (k *KeyTracker) AnyJustPressed(keys ...ebiten.Key) bool {
	hit := false
	for _, key := range keys {
		if k.IsKeyJustPressed(key) {
			hit = true
		}
	}
	return hit
}
