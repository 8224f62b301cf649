package engine

import (
	"strings"
	"testing"

	"github.com/verte-zerg/thumbfall/internal/model"
	"github.com/verte-zerg/thumbfall/internal/thumb"
)

func TestTypeRuneProgressAndCompletion(t *testing.T) {
	l := model.Lesson{Config: model.LessonConfig{AllowedSet: model.AllowedLeft}}
	s := startSession(t, l, []string{"fast", "tap"})
	w := s.Falling[0]
	if w.Word != "fast" {
		t.Fatalf("expected deterministic first word fast, got %q", w.Word)
	}

	if ev := s.TypeRune('f', t0); ev.Kind != InputProgress || w.Progress != 1 {
		t.Fatalf("first keystroke: kind=%v progress=%d", ev.Kind, w.Progress)
	}
	s.TypeRune('a', t0)
	s.TypeRune('s', t0)
	ev := s.TypeRune('t', t0)
	if ev.Kind != InputCompleted {
		t.Fatalf("completion kind = %v, want InputCompleted", ev.Kind)
	}
	if ev.Outcome != OutcomeCorrect {
		t.Fatalf("left word typed with left letters: outcome = %v, want correct", ev.Outcome)
	}
	if s.Combo != 1 {
		t.Fatalf("combo = %d, want 1", s.Combo)
	}
	if s.Score != 5 {
		t.Fatalf("score = %d, want 5 (base max(5,4), multiplier 1)", s.Score)
	}
	if s.CorrectThumbs != 1 || s.TotalThumbs != 1 {
		t.Fatalf("accuracy counters = %d/%d, want 1/1", s.CorrectThumbs, s.TotalThumbs)
	}
	if !w.Removed {
		t.Fatalf("completed word must be marked removed immediately")
	}
	if s.Buffer() != "" {
		t.Fatalf("buffer must clear after completion")
	}
}

func TestCompletionWithWrongThumbKeepsScore(t *testing.T) {
	l := model.Lesson{Config: model.LessonConfig{AllowedSet: model.AllowedLeft}}
	s := startSession(t, l, []string{"fast"})
	w := s.Falling[0]
	s.Combo = 0

	ev := s.completeWord(w, thumb.SideRight, t0)
	if ev.Outcome != OutcomeWrong {
		t.Fatalf("outcome = %v, want wrong", ev.Outcome)
	}
	if s.Combo != 0 {
		t.Fatalf("combo = %d, want 0 after wrong thumb", s.Combo)
	}
	if s.Score != 5 {
		t.Fatalf("score = %d, want 5 (typing the right word still scores)", s.Score)
	}
	if s.TotalThumbs != 1 || s.CorrectThumbs != 0 {
		t.Fatalf("accuracy counters = %d/%d, want 0/1", s.CorrectThumbs, s.TotalThumbs)
	}
	if w.PopAt.Sub(t0) != flashWrongFor {
		t.Fatalf("wrong completion must flash for %v", flashWrongFor)
	}
}

func TestCompletionWithoutThumbSignalIsValid(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	w := s.Falling[0]

	ev := s.completeWord(w, thumb.SideUnknown, t0)
	if ev.Outcome != OutcomeNeutral {
		t.Fatalf("outcome = %v, want neutral", ev.Outcome)
	}
	if s.Combo != 1 {
		t.Fatalf("combo = %d, want 1 (no penalty without a signal)", s.Combo)
	}
	if s.CorrectThumbs != 1 || s.TotalThumbs != 1 {
		t.Fatalf("no-signal completion must record an accuracy success")
	}
}

func TestCompletionIsIdempotent(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	w := s.Falling[0]
	s.completeWord(w, thumb.SideLeft, t0)
	score, combo := s.Score, s.Combo

	ev := s.completeWord(w, thumb.SideLeft, t0)
	if ev.Kind != InputNone {
		t.Fatalf("second completion kind = %v, want no-op", ev.Kind)
	}
	if s.Score != score || s.Combo != combo {
		t.Fatalf("second completion must not change the ledger")
	}
}

func TestMismatchForgivesWithoutBreakingCombo(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Combo = 3
	s.TypeRune('f', t0)
	ev := s.TypeRune('o', t0)
	if ev.Kind != InputMismatch {
		t.Fatalf("divergent keystroke kind = %v, want mismatch", ev.Kind)
	}
	if s.Buffer() != "" {
		t.Fatalf("mismatch must clear the buffer")
	}
	if s.Combo != 3 {
		t.Fatalf("mismatch must not break the combo")
	}
	if s.Falling[0].Removed {
		t.Fatalf("mismatch must not end the word")
	}

	// The player may retry immediately.
	typeWord(s, "fast", t0)
	if !s.Falling[0].Removed {
		t.Fatalf("retry after mismatch must complete the word")
	}
}

func TestBufferSanityCap(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Falling = nil // nothing active; garbage accumulates

	var ev InputEvent
	for _, r := range strings.Repeat("z", maxBufferLen+1) {
		ev = s.TypeRune(r, t0)
	}
	if ev.Kind != InputBufferReset {
		t.Fatalf("oversized buffer kind = %v, want reset", ev.Kind)
	}
	if s.Buffer() != "" {
		t.Fatalf("oversized buffer must be cleared")
	}
}

func TestNonLetterInputIgnored(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	for _, r := range []rune{'1', '!', ' '} {
		if ev := s.TypeRune(r, t0); ev.Kind != InputNone {
			t.Fatalf("non-letter %q kind = %v, want none", r, ev.Kind)
		}
	}
	if s.Buffer() != "" {
		t.Fatalf("non-letters must not enter the buffer")
	}
}

func TestUppercaseInputNormalized(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	ev := typeWord(s, "FAST", t0)
	if ev.Kind != InputCompleted {
		t.Fatalf("uppercase input must normalize and complete, got %v", ev.Kind)
	}
}
