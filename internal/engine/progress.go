package engine

import "fmt"

// Unlock reports a newly unlocked lesson index with a user-facing message.
type Unlock struct {
	Index   int
	Message string
}

// CheckUnlock decides lesson-unlock eligibility from the session's metrics.
// The rule is a deliberately lenient OR across heterogeneous signals: 80%
// accuracy, or 20 WPM, or 10 completed words. It mutates unlocked in place and
// returns nil when the next lesson is already unlocked or out of range, so
// calling it twice for the same session is a no-op.
func (s *Session) CheckUnlock(lessonCount int, unlocked map[int]bool) *Unlock {
	next := s.LessonIndex + 1
	if next >= lessonCount || unlocked[next] {
		return nil
	}

	acc := Accuracy(s.CorrectThumbs, s.TotalThumbs)
	wpm := WPM(s.Recent)
	if acc < 80 && wpm < 20 && s.WordsTyped < 10 {
		return nil
	}

	unlocked[next] = true
	return &Unlock{
		Index:   next,
		Message: fmt.Sprintf("Next lesson unlocked! (WPM: %d, Acc: %d%%)", wpm, acc),
	}
}
