package stats

import (
	"testing"
)

func TestAggregateByLesson(t *testing.T) {
	aggs := AggregateByLesson(sampleSessions())
	if len(aggs) != 2 {
		t.Fatalf("aggregates = %d, want 2", len(aggs))
	}
	left := aggs[0]
	if left.LessonID != "left-hand" {
		t.Fatalf("aggregates must be ordered by lesson id, got %q first", left.LessonID)
	}
	if left.Sessions != 2 || left.BestScore != 200 {
		t.Fatalf("left-hand rollup = %+v", left)
	}
	if left.AvgWPM != 21 || left.AvgAccuracy != 80 {
		t.Fatalf("left-hand averages = %.1f WPM %.1f%%, want 21/80", left.AvgWPM, left.AvgAccuracy)
	}
}

func TestWeakestLessons(t *testing.T) {
	aggs := AggregateByLesson(sampleSessions())
	weak := WeakestLessons(aggs, 1)
	if len(weak) != 1 || weak[0].LessonID != "left-hand" {
		t.Fatalf("weakest lesson = %+v, want left-hand (80%% < 100%%)", weak)
	}
	if WeakestLessons(aggs, 0) != nil {
		t.Fatalf("n=0 must return nil")
	}
	if got := WeakestLessons(aggs, 10); len(got) != len(aggs) {
		t.Fatalf("oversized n must cap at the aggregate count")
	}
}

func TestTopSessions(t *testing.T) {
	top := TopSessions(sampleSessions(), 2)
	if len(top) != 2 {
		t.Fatalf("top sessions = %d, want 2", len(top))
	}
	if top[0].Score != 200 || top[1].Score != 120 {
		t.Fatalf("top sessions out of order: %d, %d", top[0].Score, top[1].Score)
	}
}
