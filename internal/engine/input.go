package engine

import (
	"strings"
	"time"

	"github.com/verte-zerg/thumbfall/internal/thumb"
)

// InputKind classifies the result of one keystroke.
type InputKind int

const (
	// InputNone means the keystroke had no effect (no active word, or no
	// letter survived normalization).
	InputNone InputKind = iota
	// InputProgress extends the typed prefix of the active word.
	InputProgress
	// InputMismatch means the buffer diverged from the active word. The
	// buffer is cleared and the player may retry; combo is untouched.
	InputMismatch
	// InputCompleted means the active word was fully typed.
	InputCompleted
	// InputBufferReset is the defensive clear after oversized input.
	InputBufferReset
)

// InputEvent reports what a keystroke did, so the UI can drive feedback.
type InputEvent struct {
	Kind         InputKind
	Word         *FallingWord
	Outcome      Outcome
	NewHighScore bool
}

// TypeRune consumes one raw keystroke. Non-letters are dropped from the buffer
// but the thumb signal of the most recent letter is remembered for completion
// classification. The buffer is cleared outright when it exceeds the sanity cap.
func (s *Session) TypeRune(r rune, now time.Time) InputEvent {
	if s.Phase != PhaseRunning {
		return InputEvent{Kind: InputNone}
	}

	side := thumb.InferFromRune(r)
	if side == thumb.SideUnknown {
		return InputEvent{Kind: InputNone}
	}
	s.lastSide = side
	s.buffer = append(s.buffer, toLower(r))

	if len(s.buffer) > maxBufferLen {
		s.ClearBuffer()
		return InputEvent{Kind: InputBufferReset}
	}

	active := s.ActiveWord()
	if active == nil {
		return InputEvent{Kind: InputNone}
	}

	typed := string(s.buffer)
	if !strings.HasPrefix(active.Word, typed) {
		s.ClearBuffer()
		active.Progress = 0
		return InputEvent{Kind: InputMismatch, Word: active}
	}

	active.Progress = len(typed)
	if typed != active.Word {
		return InputEvent{Kind: InputProgress, Word: active}
	}
	return s.completeWord(active, side, now)
}

// completeWord classifies a finished word against the expected thumb and
// settles the ledger. The word is marked removed immediately so a fall-timeout
// firing in the same tick cannot double-score or double-penalize it.
func (s *Session) completeWord(w *FallingWord, typedSide thumb.Side, now time.Time) InputEvent {
	if w.Removed {
		return InputEvent{Kind: InputNone}
	}
	w.Removed = true
	w.Active = false

	actual := typedSide
	if actual == thumb.SideUnknown {
		actual = s.lastSide
	}
	expected := thumb.Expected(w.Word)

	breakCombo := false
	switch {
	case actual == thumb.SideUnknown:
		// No thumb signal at all: never penalize what cannot be measured.
		w.Outcome = OutcomeNeutral
		s.TrackThumbAccuracy(true)
		s.IncrementCombo()
		w.PopAt = now.Add(popDelay)
	case actual == expected:
		w.Outcome = OutcomeCorrect
		s.TrackThumbAccuracy(true)
		s.IncrementCombo()
		w.PopAt = now.Add(flashCorrectFor)
	default:
		// Typing the right word always scores; only combo and accuracy
		// pay for the wrong thumb.
		w.Outcome = OutcomeWrong
		s.TrackThumbAccuracy(false)
		s.BreakCombo()
		breakCombo = true
		w.PopAt = now.Add(flashWrongFor)
	}

	newHigh := s.AwardScore(len(w.Word), breakCombo)
	s.TrackWordTyped(now, len(w.Word))
	s.ClearBuffer()

	return InputEvent{
		Kind:         InputCompleted,
		Word:         w,
		Outcome:      w.Outcome,
		NewHighScore: newHigh,
	}
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
