// Package engine implements the game session core: the spawn/fall/miss word
// lifecycle, keystroke matching with thumb validation, the score/combo/accuracy
// ledger, and the session state machine that ties the timers together.
package engine

import (
	"time"

	"github.com/verte-zerg/thumbfall/internal/lesson"
	"github.com/verte-zerg/thumbfall/internal/model"
	"github.com/verte-zerg/thumbfall/internal/rng"
	"github.com/verte-zerg/thumbfall/internal/thumb"
)

// Phase is the session lifecycle state.
type Phase int

const (
	// PhaseIdle means no session is in progress.
	PhaseIdle Phase = iota
	// PhaseRunning means words spawn, fall, and accept input.
	PhaseRunning
	// PhasePaused is a user pause: timers stopped, falling words frozen.
	PhasePaused
	// PhaseLevelPause is the breather after a level-up; the field is cleared.
	PhaseLevelPause
	// PhaseEnded means the session finished (life exhaustion or explicit end).
	PhaseEnded
)

// Outcome classifies a completed word.
type Outcome int

const (
	// OutcomeNone marks a word still in play.
	OutcomeNone Outcome = iota
	// OutcomeCorrect is a completion with the expected thumb.
	OutcomeCorrect
	// OutcomeWrong is a completion with the opposite thumb.
	OutcomeWrong
	// OutcomeNeutral is a completion with no thumb signal available.
	OutcomeNeutral
)

// FallingWord is one word in flight. It transitions Removed false->true exactly
// once; any later completion or miss for the same word is a no-op.
type FallingWord struct {
	Word     string
	X        float64
	Width    float64
	SpawnedAt time.Time
	FallFor  time.Duration
	Removed  bool
	Active   bool
	Progress int
	Outcome  Outcome
	PopAt    time.Time
}

// FallProgress returns how far the word has fallen, 0 at spawn, 1 at the miss
// boundary. Values above 1 mean the word overshot the bottom.
func (w *FallingWord) FallProgress(now time.Time) float64 {
	if w.FallFor <= 0 {
		return 1
	}
	return float64(now.Sub(w.SpawnedAt)) / float64(w.FallFor)
}

// Completion is one entry of the rolling completion window used for WPM.
type Completion struct {
	At    time.Time
	Chars int
}

// Session is the mutable aggregate for one play session. All components operate
// on it by reference; nothing in this package touches ambient globals.
type Session struct {
	Phase       Phase
	Lesson      model.Lesson
	LessonIndex int
	Daily       bool
	StartedAt   time.Time

	Level     int
	Score     int
	HighScore int
	Lives     int
	Combo     int
	MaxCombo  int

	CorrectThumbs int
	TotalThumbs   int
	WordsTyped    int
	Recent        []Completion

	Pools     lesson.Pools
	NextThumb thumb.Side

	Falling []*FallingWord

	Rand      rng.Source
	PlayWidth float64

	buffer   []rune
	lastSide thumb.Side
	pausedAt time.Time
}

// New returns an idle session. highScore is the persisted best carried across
// sessions; playWidth is the playfield width in units.
func New(highScore int, playWidth float64) *Session {
	return &Session{
		Phase:     PhaseIdle,
		HighScore: highScore,
		Lives:     StartingLives,
		Level:     1,
		PlayWidth: playWidth,
	}
}

// SetPlayWidth resizes the playfield. Already-falling words keep their offsets.
func (s *Session) SetPlayWidth(width float64) {
	if width > 0 {
		s.PlayWidth = width
	}
}

// SpawnInterval is the current period of the spawn timer.
func (s *Session) SpawnInterval() time.Duration {
	d := BaseSpawn - time.Duration(s.Level-1)*spawnStep
	if d < MinSpawn {
		return MinSpawn
	}
	return d
}

// FallDuration is how long a word spawned now takes to reach the bottom.
func (s *Session) FallDuration() time.Duration {
	d := BaseFall - time.Duration(s.Level-1)*fallStep
	if d < MinFall {
		return MinFall
	}
	return d
}

// Buffer returns the current normalized input buffer.
func (s *Session) Buffer() string {
	return string(s.buffer)
}

// ClearBuffer drops any partially typed input.
func (s *Session) ClearBuffer() {
	s.buffer = s.buffer[:0]
}

// SetPointerSide records the screen half that initiated input. It is the thumb
// signal of last resort when the typed character itself is not a letter.
func (s *Session) SetPointerSide(side thumb.Side) {
	if side != thumb.SideUnknown {
		s.lastSide = side
	}
}

func (s *Session) resetCounters() {
	s.Score = 0
	s.Lives = StartingLives
	s.Level = 1
	s.Combo = 0
	s.MaxCombo = 0
	s.CorrectThumbs = 0
	s.TotalThumbs = 0
	s.WordsTyped = 0
	s.Recent = nil
	s.NextThumb = thumb.SideUnknown
	s.Falling = nil
	s.buffer = nil
	s.lastSide = thumb.SideUnknown
}
