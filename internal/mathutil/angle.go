package mathutil

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// WrapAngle maps a to [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// NormalizeSigned maps a to (-π, π].
func NormalizeSigned(a float64) float64 {
	for a < -math.Pi {
		a += TwoPi
	}
	for a > math.Pi {
		a -= TwoPi
	}
	if a == -math.Pi {
		a = math.Pi
	}
	return a
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Degrees converts radians to whole degrees, truncating toward zero.
func Degrees(a float64) int {
	return int(a * 180 / math.Pi)
}
