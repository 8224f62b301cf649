package engine

import (
	"testing"
	"time"

	"github.com/verte-zerg/thumbfall/internal/model"
)

func TestUpdateActiveExactlyOne(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast", "thumb", "type"})
	s.Spawn(t0.Add(2 * time.Second))
	s.Spawn(t0.Add(4 * time.Second))

	s.UpdateActive(t0.Add(5 * time.Second))
	active := 0
	for _, w := range s.Falling {
		if w.Active {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("active words = %d, want exactly 1", active)
	}
}

func TestUpdateActivePicksLowestWord(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast", "thumb"})
	s.Spawn(t0.Add(3 * time.Second))

	// The earlier spawn has fallen further and sits closer to the bottom.
	got := s.UpdateActive(t0.Add(4 * time.Second))
	if got != s.Falling[0] {
		t.Fatalf("active word = %q, want the lowest word %q", got.Word, s.Falling[0].Word)
	}
}

func TestUpdateActiveSkipsRemoved(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast", "thumb"})
	s.Spawn(t0.Add(time.Second))
	s.Falling[0].Removed = true

	got := s.UpdateActive(t0.Add(2 * time.Second))
	if got == nil || got != s.Falling[1] {
		t.Fatalf("active selection must skip removed words")
	}
	if s.Falling[0].Active {
		t.Fatalf("removed word must not stay active")
	}
}

func TestUpdateActiveEmptyField(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Falling = nil
	if got := s.UpdateActive(t0); got != nil {
		t.Fatalf("empty field active = %v, want nil", got)
	}
}

func TestUpdateActiveIgnoresUnstartedSpawnsForOvertake(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast", "thumb"})
	// Second word spawned at the query instant has not visibly begun falling.
	s.Spawn(t0.Add(time.Second))
	got := s.UpdateActive(t0.Add(time.Second))
	if got != s.Falling[0] {
		t.Fatalf("brand-new spawn must not steal the active slot")
	}
}
