package engine

import (
	"math"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/thumbfall/internal/thumb"
)

// Spawn introduces one word into play. It is a no-op (returns nil) unless the
// session is running, the lesson pool is non-empty, and fewer than MaxFalling
// words are in flight. The first word in an empty field becomes active
// immediately.
func (s *Session) Spawn(now time.Time) *FallingWord {
	if s.Phase != PhaseRunning || len(s.Pools.Active) == 0 {
		return nil
	}
	if len(s.Falling) >= MaxFalling {
		return nil
	}

	word := s.pickWord()
	width := estimateWidth(word)
	entry := &FallingWord{
		Word:      word,
		X:         s.safeSpawnX(width),
		Width:     width,
		SpawnedAt: now,
		FallFor:   s.FallDuration(),
	}
	s.Falling = append(s.Falling, entry)
	if len(s.Falling) == 1 {
		entry.Active = true
	}
	return entry
}

// pickWord selects the next word, honoring strict left/right turn order in
// alternating lessons. An empty side pool falls back to the full pool without
// flipping the turn.
func (s *Session) pickWord() string {
	if s.Lesson.Config.EnforceAlternate {
		target := s.NextThumb
		if target == thumb.SideUnknown {
			target = thumb.SideLeft
		}
		pool := s.Pools.Left
		if target == thumb.SideRight {
			pool = s.Pools.Right
		}
		if len(pool) > 0 {
			word := s.pickByLevel(pool)
			if target == thumb.SideLeft {
				s.NextThumb = thumb.SideRight
			} else {
				s.NextThumb = thumb.SideLeft
			}
			return word
		}
	}
	return s.pickByLevel(s.Pools.Active)
}

// pickByLevel draws uniformly from the pool, capped to level-appropriate word
// lengths (min(10, 2+level)) so early levels stay easy. If the cap filters
// everything out, the unfiltered pool is used instead.
func (s *Session) pickByLevel(pool []string) string {
	maxLength := 2 + s.Level
	if maxLength > 10 {
		maxLength = 10
	}
	var suitable []string
	for _, w := range pool {
		if len(w) <= maxLength {
			suitable = append(suitable, w)
		}
	}
	if len(suitable) == 0 {
		suitable = pool
	}
	idx := int(s.Rand() * float64(len(suitable)))
	if idx >= len(suitable) {
		idx = len(suitable) - 1
	}
	return suitable[idx]
}

// safeSpawnX picks a horizontal offset at least minSpacing away from every
// non-removed falling word. After spawnAttempts failed draws the last attempted
// position is accepted rather than stalling the spawn.
func (s *Session) safeSpawnX(width float64) float64 {
	maxLeft := s.PlayWidth - width - edgeMargin
	if maxLeft <= 0 {
		return math.Max(0, (s.PlayWidth-width)/2)
	}

	var x float64
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		x = s.Rand() * maxLeft
		safe := true
		for _, other := range s.Falling {
			if other.Removed {
				continue
			}
			if math.Abs(x-other.X) < minSpacing {
				safe = false
				break
			}
		}
		if safe {
			return x
		}
	}
	return x
}

func estimateWidth(word string) float64 {
	return float64(runewidth.StringWidth(word))*charUnit + wordPadding
}
