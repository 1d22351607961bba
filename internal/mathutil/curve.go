package mathutil

// Breakpoint is one (threshold, value) pair of a lookup table.
type Breakpoint struct {
	At    float64
	Value float64
}

// Piecewise is a distance-keyed table interpolated linearly between
// consecutive breakpoints. Breakpoints must be sorted by At. The last
// breakpoint is usually open-ended (At = +Inf) and its value applies to
// everything at or beyond the second-to-last threshold.
type Piecewise []Breakpoint

// At evaluates the table at x.
func (p Piecewise) At(x float64) float64 {
	switch len(p) {
	case 0:
		return 0
	case 1:
		return p[0].Value
	}

	if x >= p[len(p)-2].At {
		return p[len(p)-1].Value
	}
	if x <= p[0].At {
		return p[0].Value
	}

	for i := 0; i < len(p)-1; i++ {
		lo, hi := p[i], p[i+1]
		if x >= lo.At && x <= hi.At {
			t := (x - lo.At) / (hi.At - lo.At)
			return lo.Value + t*(hi.Value-lo.Value)
		}
	}
	return p[len(p)-1].Value
}

// Step returns the index of the first limit that v is strictly below, or
// len(limits) when v reaches or exceeds every limit. Limits must ascend.
func Step(v float64, limits []float64) int {
	for i, limit := range limits {
		if v < limit {
			return i
		}
	}
	return len(limits)
}
