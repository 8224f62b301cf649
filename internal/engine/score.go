package engine

import "time"

// AwardScore adds base * multiplier for a typed word, where base is
// max(5, wordLength) and the multiplier grows by one for every 5 combo. With
// breakCombo set the combo is zeroed before the multiplier is computed. The
// return value reports a new high score.
func (s *Session) AwardScore(wordLength int, breakCombo bool) bool {
	if breakCombo {
		s.Combo = 0
	}
	base := wordLength
	if base < 5 {
		base = 5
	}
	mult := 1 + s.Combo/5
	s.Score += base * mult

	if s.Score > s.HighScore {
		s.HighScore = s.Score
		return true
	}
	return false
}

// IncrementCombo extends the streak and tracks its high-water mark.
func (s *Session) IncrementCombo() {
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
}

// BreakCombo zeroes the streak.
func (s *Session) BreakCombo() {
	s.Combo = 0
}

// LoseLife decrements lives and breaks the combo.
func (s *Session) LoseLife() {
	s.Lives--
	s.BreakCombo()
}

// TrackWordTyped appends a completion sample to the rolling WPM window,
// evicting the oldest entry past 10.
func (s *Session) TrackWordTyped(now time.Time, chars int) {
	s.WordsTyped++
	s.Recent = append(s.Recent, Completion{At: now, Chars: chars})
	if len(s.Recent) > 10 {
		s.Recent = s.Recent[1:]
	}
}

// TrackThumbAccuracy records one thumb-accuracy sample.
func (s *Session) TrackThumbAccuracy(correct bool) {
	s.TotalThumbs++
	if correct {
		s.CorrectThumbs++
	}
}
