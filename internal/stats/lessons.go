package stats

import (
	"sort"

	"github.com/verte-zerg/thumbfall/internal/model"
)

// LessonAggregate is the per-lesson rollup of the session history.
type LessonAggregate struct {
	LessonID    string
	Sessions    int
	BestScore   int
	AvgWPM      float64
	AvgAccuracy float64
}

// AggregateByLesson rolls the session history up per lesson, ordered by
// lesson id for stable output.
func AggregateByLesson(sessions []model.SessionRecord) []LessonAggregate {
	byLesson := map[string]*LessonAggregate{}
	for _, s := range sessions {
		agg, ok := byLesson[s.LessonID]
		if !ok {
			agg = &LessonAggregate{LessonID: s.LessonID}
			byLesson[s.LessonID] = agg
		}
		agg.Sessions++
		agg.AvgWPM += float64(s.WPM)
		agg.AvgAccuracy += float64(s.Accuracy)
		if s.Score > agg.BestScore {
			agg.BestScore = s.Score
		}
	}

	out := make([]LessonAggregate, 0, len(byLesson))
	for _, agg := range byLesson {
		agg.AvgWPM /= float64(agg.Sessions)
		agg.AvgAccuracy /= float64(agg.Sessions)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LessonID < out[j].LessonID
	})
	return out
}

// WeakestLessons returns up to n lessons sorted by lowest average thumb
// accuracy, the ones most worth another run.
func WeakestLessons(aggs []LessonAggregate, n int) []LessonAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	candidates := make([]LessonAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].AvgAccuracy == candidates[j].AvgAccuracy {
			return candidates[i].LessonID < candidates[j].LessonID
		}
		return candidates[i].AvgAccuracy < candidates[j].AvgAccuracy
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

// TopSessions returns up to n sessions sorted by highest score.
func TopSessions(sessions []model.SessionRecord, n int) []model.SessionRecord {
	if n <= 0 || len(sessions) == 0 {
		return nil
	}
	candidates := make([]model.SessionRecord, len(sessions))
	copy(candidates, sessions)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].EndedAt.After(candidates[j].EndedAt)
		}
		return candidates[i].Score > candidates[j].Score
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}
