package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/thumbfall/internal/lesson"
	"github.com/verte-zerg/thumbfall/internal/model"
)

func TestStartEmptyPoolFails(t *testing.T) {
	s := New(0, 800)
	err := s.Start(model.Lesson{}, 0, lesson.Pools{}, false, t0)
	if !errors.Is(err, ErrEmptyLessonPool) {
		t.Fatalf("err = %v, want ErrEmptyLessonPool", err)
	}
	if s.Phase != PhaseIdle {
		t.Fatalf("failed start must leave the session idle, got %v", s.Phase)
	}
}

func TestStartSpawnsImmediately(t *testing.T) {
	s := New(0, 800)
	pools := lesson.BuildPools(model.Lesson{}, []string{"fast"})
	if err := s.Start(model.Lesson{}, 0, pools, false, t0); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if s.Phase != PhaseRunning {
		t.Fatalf("phase = %v, want running", s.Phase)
	}
	if len(s.Falling) != 1 {
		t.Fatalf("start must spawn the first word")
	}
	if s.Lives != StartingLives || s.Score != 0 || s.Level != 1 {
		t.Fatalf("counters not reset: lives=%d score=%d level=%d", s.Lives, s.Score, s.Level)
	}
}

func TestStartHonorsLessonLevelOverride(t *testing.T) {
	l := model.Lesson{Config: model.LessonConfig{Level: 2}}
	s := New(0, 800)
	if err := s.Start(l, 0, lesson.BuildPools(l, []string{"fast"}), false, t0); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if s.Level != 2 {
		t.Fatalf("level = %d, want lesson override 2", s.Level)
	}
}

func TestSweepMissCostsLife(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Combo = 3
	s.TypeRune('f', t0)

	events := s.Sweep(t0.Add(s.FallDuration() + time.Second))
	if len(events) != 1 || !events[0].Missed {
		t.Fatalf("events = %+v, want one miss", events)
	}
	if events[0].GameOver {
		t.Fatalf("four lives remain; not game over")
	}
	if s.Lives != StartingLives-1 {
		t.Fatalf("lives = %d, want %d", s.Lives, StartingLives-1)
	}
	if s.Combo != 0 {
		t.Fatalf("a miss must break the combo")
	}
	if s.Buffer() != "" {
		t.Fatalf("the missed word was being typed; the buffer must clear")
	}
	if len(s.Falling) != 0 {
		t.Fatalf("missed word must leave the field")
	}
}

func TestSweepGameOverOnLastLife(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Lives = 1
	events := s.Sweep(t0.Add(s.FallDuration() + time.Second))
	if len(events) != 1 || !events[0].GameOver {
		t.Fatalf("last miss must report game over, got %+v", events)
	}
}

func TestSweepCompletedWordCannotMiss(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	w := s.Falling[0]
	// Completed at the last instant, then swept well past the bottom.
	s.completeWord(w, thumbLeft, t0.Add(s.FallDuration()-time.Millisecond))
	lives := s.Lives

	events := s.Sweep(t0.Add(s.FallDuration() + time.Second))
	for _, ev := range events {
		if ev.Missed {
			t.Fatalf("completed word must never double as a miss")
		}
	}
	if s.Lives != lives {
		t.Fatalf("lives changed on a completed word: %d -> %d", lives, s.Lives)
	}
}

func TestSweepDropsPoppedWordsKeepsBuffer(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast", "thumb"})
	w := s.Falling[0]
	s.completeWord(w, thumbLeft, t0)
	s.Spawn(t0.Add(time.Second))
	s.TypeRune('t', t0.Add(2*time.Second))
	buf := s.Buffer()

	// Before the flash deadline the popping word is still rendered.
	s.Sweep(t0.Add(100 * time.Millisecond))
	if len(s.Falling) != 2 {
		t.Fatalf("word must linger through its flash window")
	}

	s.Sweep(t0.Add(2 * time.Second))
	if len(s.Falling) != 1 {
		t.Fatalf("popped word must be dropped after its flash window")
	}
	if s.Buffer() != buf {
		t.Fatalf("a routine pop must not wipe the typing buffer")
	}
}

func TestSweepOnlyWhileRunning(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Pause(t0)
	if ev := s.Sweep(t0.Add(time.Minute)); ev != nil {
		t.Fatalf("sweep while paused = %+v, want nil", ev)
	}
	if s.Lives != StartingLives {
		t.Fatalf("paused words must not miss")
	}
}

func TestPauseResumeShiftsDeadlines(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	w := s.Falling[0]
	before := w.FallProgress(t0.Add(2 * time.Second))

	s.Pause(t0.Add(2 * time.Second))
	s.Resume(t0.Add(12 * time.Second))

	after := w.FallProgress(t0.Add(12 * time.Second))
	if before != after {
		t.Fatalf("fall progress changed across pause: %v -> %v", before, after)
	}
	// The word still completes its full journey after the shift.
	if ev := s.Sweep(t0.Add(12*time.Second + s.FallDuration())); len(ev) != 1 || !ev[0].Missed {
		t.Fatalf("shifted word must still reach the bottom on schedule")
	}
}

func TestPauseResumeShiftsPopDeadline(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	w := s.Falling[0]
	s.completeWord(w, thumbLeft, t0)
	popAt := w.PopAt

	s.Pause(t0.Add(50 * time.Millisecond))
	s.Resume(t0.Add(10 * time.Second))
	if got := w.PopAt.Sub(popAt); got != 10*time.Second-50*time.Millisecond {
		t.Fatalf("pop deadline shifted by %v, want the frozen duration", got)
	}
}

func TestPauseOnlyFromRunning(t *testing.T) {
	s := New(0, 800)
	s.Pause(t0)
	if s.Phase != PhaseIdle {
		t.Fatalf("pausing an idle session must be a no-op")
	}
	s.Resume(t0)
	if s.Phase != PhaseIdle {
		t.Fatalf("resuming an idle session must be a no-op")
	}
}

func TestLevelUpClearsFieldWithoutPenalty(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast", "thumb", "type"})
	s.Spawn(t0.Add(time.Second))
	s.TypeRune('f', t0.Add(2*time.Second))
	lives, score := s.Lives, s.Score

	s.LevelUp()
	if s.Phase != PhaseLevelPause {
		t.Fatalf("phase = %v, want level pause", s.Phase)
	}
	if s.Level != 2 {
		t.Fatalf("level = %d, want 2", s.Level)
	}
	if len(s.Falling) != 0 || s.Buffer() != "" {
		t.Fatalf("level up must clear the field and buffer")
	}
	if s.Lives != lives || s.Score != score {
		t.Fatalf("level up must not touch lives or score")
	}

	s.ResumeFromLevelUp(t0.Add(3 * time.Second))
	if s.Phase != PhaseRunning || len(s.Falling) != 1 {
		t.Fatalf("resume from level pause must spawn immediately")
	}
}

func TestLevelUpOnlyWhileRunning(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Pause(t0)
	s.LevelUp()
	if s.Level != 1 || s.Phase != PhasePaused {
		t.Fatalf("level up while paused must be a no-op")
	}
}

func TestEndIsIdempotent(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	words := s.WordsTyped
	s.End()
	if s.Phase != PhaseEnded || len(s.Falling) != 0 {
		t.Fatalf("end must clear the field, phase=%v", s.Phase)
	}
	s.End()
	if s.Phase != PhaseEnded || s.WordsTyped != words {
		t.Fatalf("second end must change nothing")
	}
}

func TestEndFromPausedAndLevelPause(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	s.Pause(t0)
	s.End()
	if s.Phase != PhaseEnded {
		t.Fatalf("end from paused: phase = %v", s.Phase)
	}

	s = startSession(t, model.Lesson{}, []string{"fast"})
	s.LevelUp()
	s.End()
	if s.Phase != PhaseEnded {
		t.Fatalf("end from level pause: phase = %v", s.Phase)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	s := startSession(t, model.Lesson{}, []string{"fast"})
	typeWord(s, "fast", t0)
	s.End()
	s.Reset()
	if s.Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", s.Phase)
	}
	if s.Score != 0 || s.Combo != 0 || s.WordsTyped != 0 || s.Level != 1 {
		t.Fatalf("reset must zero per-session counters")
	}
	if s.Lives != StartingLives {
		t.Fatalf("lives = %d, want %d", s.Lives, StartingLives)
	}
}
