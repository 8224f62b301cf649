package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/thumbfall/internal/feedback"
	"github.com/verte-zerg/thumbfall/internal/lesson"
	"github.com/verte-zerg/thumbfall/internal/store"
)

func openTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	lessons := lesson.Defaults()
	unlocked := map[int]bool{}
	for i := range lessons {
		unlocked[i] = true
	}
	return NewModel(st, zerolog.Nop(), feedback.Noop{}, lessons, unlocked, []string{"tap"}, 0, false, "default", "")
}

func TestHighScoreSavedWhenBeaten(t *testing.T) {
	m := openTestModel(t)

	idx := len(m.lessons) - 1
	l := m.lessons[idx]
	now := time.Now()
	if err := m.session.Start(l, idx, lesson.BuildPools(l, m.corpus), false, now); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if got := m.session.Falling[0].Word; got != "tap" {
		t.Fatalf("spawned word = %q, want tap", got)
	}

	for _, r := range "tap" {
		m.handleTypedRune(r, now)
	}
	if m.session.Score == 0 {
		t.Fatal("completing the word must score")
	}

	// The best score must already be on disk even though the session never
	// ended, so quitting mid-session keeps it.
	got, err := m.store.HighScore(context.Background())
	if err != nil {
		t.Fatalf("failed to read high score: %v", err)
	}
	if got != m.session.Score {
		t.Fatalf("persisted high score = %d, want %d", got, m.session.Score)
	}
}

func TestHighScoreNotSavedBelowBest(t *testing.T) {
	m := openTestModel(t)
	m.session.HighScore = 1000

	idx := len(m.lessons) - 1
	l := m.lessons[idx]
	now := time.Now()
	if err := m.session.Start(l, idx, lesson.BuildPools(l, m.corpus), false, now); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	for _, r := range "tap" {
		m.handleTypedRune(r, now)
	}

	got, err := m.store.HighScore(context.Background())
	if err != nil {
		t.Fatalf("failed to read high score: %v", err)
	}
	if got != 0 {
		t.Fatalf("a score below the best must not be persisted, got %d", got)
	}
}
