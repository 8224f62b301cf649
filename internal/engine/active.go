package engine

import "time"

// UpdateActive marks the single word eligible for input: the non-removed entry
// closest to the miss boundary among those that have visibly begun falling.
// Running it redundantly is safe; it always converges on the same entry for a
// given falling set and time.
func (s *Session) UpdateActive(now time.Time) *FallingWord {
	var best *FallingWord
	for _, w := range s.Falling {
		w.Active = false
		if w.Removed {
			continue
		}
		if best == nil {
			best = w
			continue
		}
		// Brand-new spawns have not entered the field yet; skipping them
		// avoids active-flicker right after a spawn tick.
		if w.FallProgress(now) <= 0 {
			continue
		}
		if w.FallProgress(now) > best.FallProgress(now) {
			best = w
		}
	}
	if best != nil {
		best.Active = true
	}
	return best
}

// ActiveWord returns the currently active entry, if any.
func (s *Session) ActiveWord() *FallingWord {
	for _, w := range s.Falling {
		if w.Active && !w.Removed {
			return w
		}
	}
	return nil
}
