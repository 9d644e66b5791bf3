package pullup

// SnapPoints are the three named target heights a drag gesture can settle
// into. They are derived from the configured bounds, never stored.
type SnapPoints struct {
	Collapsed int
	Half      int
	Full      int
}

// values returns the snap heights in canonical order: collapsed, half, full.
func (p SnapPoints) values() [3]int {
	return [3]int{p.Collapsed, p.Half, p.Full}
}

// Resolve maps a continuous height onto the nearest snap point. Exact ties
// resolve to the earlier point in canonical order, so the result is
// deterministic for any input.
func Resolve(height int, points SnapPoints) int {
	values := points.values()
	nearest := values[0]
	best := abs(height - values[0])
	for _, value := range values[1:] {
		if d := abs(height - value); d < best {
			best = d
			nearest = value
		}
	}
	return nearest
}

// next returns the snap point following the one nearest to height, wrapping
// from full back to collapsed.
func (p SnapPoints) next(height int) int {
	switch Resolve(height, p) {
	case p.Collapsed:
		return p.Half
	case p.Half:
		return p.Full
	default:
		return p.Collapsed
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
