package engine

import (
	"errors"
	"time"

	"github.com/verte-zerg/thumbfall/internal/lesson"
	"github.com/verte-zerg/thumbfall/internal/model"
	"github.com/verte-zerg/thumbfall/internal/rng"
	"github.com/verte-zerg/thumbfall/internal/thumb"
)

// ErrEmptyLessonPool is the configuration error surfaced when a lesson's word
// filter matches nothing. It aborts the start attempt; the session stays idle.
var ErrEmptyLessonPool = errors.New("no words match this lesson configuration")

// Start transitions Idle -> Running: per-session counters reset, RNG seeded,
// pools installed, leftover falling words cleared, and the first word spawned.
func (s *Session) Start(l model.Lesson, lessonIndex int, pools lesson.Pools, daily bool, now time.Time) error {
	if len(pools.Active) == 0 {
		return ErrEmptyLessonPool
	}

	s.resetCounters()
	s.Lesson = l
	s.LessonIndex = lessonIndex
	s.Pools = pools
	s.Daily = daily
	s.Rand = rng.New(daily)
	s.StartedAt = now
	if l.Config.Level > 0 {
		s.Level = l.Config.Level
	}
	if l.Config.EnforceAlternate {
		s.NextThumb = thumb.SideLeft
	}

	s.Phase = PhaseRunning
	s.Spawn(now)
	return nil
}

// Pause freezes the session: Running -> Paused. Falling words keep their
// positions; no scoring changes. A no-op outside Running.
func (s *Session) Pause(now time.Time) {
	if s.Phase != PhaseRunning {
		return
	}
	s.Phase = PhasePaused
	s.pausedAt = now
}

// Resume unfreezes a user pause, shifting every in-flight deadline by the
// paused duration so words continue from where they stopped.
func (s *Session) Resume(now time.Time) {
	if s.Phase != PhasePaused {
		return
	}
	frozen := now.Sub(s.pausedAt)
	for _, w := range s.Falling {
		w.SpawnedAt = w.SpawnedAt.Add(frozen)
		if w.Removed {
			w.PopAt = w.PopAt.Add(frozen)
		}
	}
	s.Phase = PhaseRunning
}

// LevelUp handles the ramp timer firing: the level increments and the field is
// cleared without penalty while the player catches a breath.
func (s *Session) LevelUp() {
	if s.Phase != PhaseRunning {
		return
	}
	s.Level++
	s.Falling = nil
	s.ClearBuffer()
	s.Phase = PhaseLevelPause
}

// ResumeFromLevelUp restarts play after the level-up breather, spawning one
// word immediately so there is no dead air.
func (s *Session) ResumeFromLevelUp(now time.Time) {
	if s.Phase != PhaseLevelPause {
		return
	}
	s.Phase = PhaseRunning
	s.Spawn(now)
}

// End finishes the session (life exhaustion or explicit end) and clears the
// field. Safe to call from multiple transition paths; only the first takes
// effect.
func (s *Session) End() {
	switch s.Phase {
	case PhaseRunning, PhasePaused, PhaseLevelPause:
		s.Phase = PhaseEnded
		s.Falling = nil
		s.ClearBuffer()
	}
}

// Reset returns to Idle with all per-session counters zeroed.
func (s *Session) Reset() {
	s.resetCounters()
	s.Level = 1
	s.Phase = PhaseIdle
}

// SweepEvent reports a word leaving the field during a sweep.
type SweepEvent struct {
	Word     *FallingWord
	Missed   bool
	GameOver bool
}

// Sweep advances the word lifecycle to now: completed words past their flash
// deadline are dropped, and words that reached the bottom unhandled become
// misses (one life each). The removed flag guarantees a word already completed
// in this tick cannot also miss. The active word is reselected whenever the
// falling set changes.
func (s *Session) Sweep(now time.Time) []SweepEvent {
	if s.Phase != PhaseRunning {
		return nil
	}

	var events []SweepEvent
	changed := false
	kept := s.Falling[:0]
	for _, w := range s.Falling {
		switch {
		case w.Removed:
			if now.Before(w.PopAt) {
				kept = append(kept, w)
				continue
			}
			changed = true
		case w.FallProgress(now) >= 1:
			w.Removed = true
			w.Active = false
			s.LoseLife()
			changed = true
			events = append(events, SweepEvent{Word: w, Missed: true, GameOver: s.Lives <= 0})
		default:
			kept = append(kept, w)
		}
	}
	s.Falling = kept

	if changed {
		s.UpdateActive(now)
	}
	if len(events) > 0 {
		// The missed word was the one being typed; drop the stale prefix.
		s.ClearBuffer()
	}
	return events
}
