package engine

import (
	"testing"
	"time"

	"github.com/verte-zerg/thumbfall/internal/lesson"
	"github.com/verte-zerg/thumbfall/internal/model"
	"github.com/verte-zerg/thumbfall/internal/thumb"
)

const thumbLeft = thumb.SideLeft

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// startSession starts a running session over the given corpus, then replaces
// the random source with one that always draws 0 and respawns the first word
// so tests see a deterministic field: pool index 0 at offset 0.
func startSession(t *testing.T, l model.Lesson, corpus []string) *Session {
	t.Helper()
	s := New(0, 800)
	if err := s.Start(l, 0, lesson.BuildPools(l, corpus), false, t0); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	s.Rand = func() float64 { return 0 }
	s.Falling = nil
	if l.Config.EnforceAlternate {
		s.NextThumb = thumbLeft
	}
	s.Spawn(t0)
	return s
}

// typeWord feeds every rune of word through TypeRune and returns the last event.
func typeWord(s *Session, word string, now time.Time) InputEvent {
	var ev InputEvent
	for _, r := range word {
		ev = s.TypeRune(r, now)
	}
	return ev
}
