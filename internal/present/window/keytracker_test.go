package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestKeyTracker(t *testing.T) {
	down := map[ebiten.Key]bool{}
	kt := newKeyTracker(func(k ebiten.Key) bool { return down[k] })

	testCases := []struct {
		name     string
		pressed  bool
		expected bool
	}{
		{"up", false, false},
		{"pressed", true, true},
		{"held", true, false},
		{"still held", true, false},
		{"released", false, false},
		{"pressed again", true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			down[ebiten.KeyM] = tc.pressed
			if got := kt.IsKeyJustPressed(ebiten.KeyM); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestKeyTrackerTracksKeysSeparately(t *testing.T) {
	down := map[ebiten.Key]bool{ebiten.KeyM: true}
	kt := newKeyTracker(func(k ebiten.Key) bool { return down[k] })

	if !kt.IsKeyJustPressed(ebiten.KeyM) {
		t.Fatal("Expected M to register")
	}
	down[ebiten.KeyP] = true
	if !kt.IsKeyJustPressed(ebiten.KeyP) {
		t.Error("Expected P to register while M is held")
	}
	if kt.IsKeyJustPressed(ebiten.KeyM) {
		t.Error("Expected held M not to fire again")
	}
}

func TestAnyJustPressed(t *testing.T) {
	down := map[ebiten.Key]bool{}
	kt := newKeyTracker(func(k ebiten.Key) bool { return down[k] })

	if kt.AnyJustPressed(ebiten.KeyEscape, ebiten.KeyQ) {
		t.Error("Expected nothing pressed")
	}
	down[ebiten.KeyQ] = true
	down[ebiten.KeyEscape] = true
	if !kt.AnyJustPressed(ebiten.KeyEscape, ebiten.KeyQ) {
		t.Error("Expected a press")
	}
	// both keys were recorded, so neither fires again
	if kt.AnyJustPressed(ebiten.KeyEscape, ebiten.KeyQ) {
		t.Error("Expected held keys not to fire again")
	}
}

func TestFontSize(t *testing.T) {
	testCases := []struct {
		cellWidth int
		expected  float64
	}{
		{6, 10},
		{9, 15},
		{12, 20},
	}
	for _, tc := range testCases {
		if got := FontSize(tc.cellWidth); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Cell width %d: expected %v, got %v", tc.cellWidth, tc.expected, got)
		}
	}
}
