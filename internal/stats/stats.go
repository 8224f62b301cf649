// Package stats contains statistics calculations and reporting over the
// session history.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/thumbfall/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the aggregate summary for the selected sessions.
func RenderSummary(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}

	var totalWPM, totalAcc float64
	bestScore, bestWPM, bestCombo, totalWords := 0, 0, 0, 0
	for _, s := range sessions {
		totalWPM += float64(s.WPM)
		totalAcc += float64(s.Accuracy)
		totalWords += s.WordsTyped
		if s.Score > bestScore {
			bestScore = s.Score
		}
		if s.WPM > bestWPM {
			bestWPM = s.WPM
		}
		if s.MaxCombo > bestCombo {
			bestCombo = s.MaxCombo
		}
	}
	count := float64(len(sessions))

	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Words typed: %d", totalWords),
		fmt.Sprintf("Best score: %d", bestScore),
		fmt.Sprintf("Best combo: %d", bestCombo),
		fmt.Sprintf("Avg WPM: %.1f", totalWPM/count),
		fmt.Sprintf("Best WPM: %d", bestWPM),
		fmt.Sprintf("Avg thumb accuracy: %.1f%%", totalAcc/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints the per-session history table, newest last.
func RenderHistory(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "History"); err != nil {
		return err
	}

	headers := []string{"Date", "Lesson", "Score", "Combo", "Level", "Words", "WPM", "Acc", "Duration"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		lessonLabel := s.LessonID
		if s.Daily {
			lessonLabel += " (daily)"
		}
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			lessonLabel,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.MaxCombo),
			fmt.Sprintf("%d", s.LevelReached),
			fmt.Sprintf("%d", s.WordsTyped),
			fmt.Sprintf("%d", s.WPM),
			fmt.Sprintf("%d%%", s.Accuracy),
			(time.Duration(s.DurationMs) * time.Millisecond).Round(time.Second).String(),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTopSessions prints the n best sessions by score.
func RenderTopSessions(w io.Writer, sessions []model.SessionRecord, n int) error {
	top := TopSessions(sessions, n)
	if len(top) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Top sessions"); err != nil {
		return err
	}

	headers := []string{"Date", "Lesson", "Score", "Combo", "WPM", "Acc"}
	rows := make([][]string, 0, len(top))
	for _, s := range top {
		lessonLabel := s.LessonID
		if s.Daily {
			lessonLabel += " (daily)"
		}
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			lessonLabel,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.MaxCombo),
			fmt.Sprintf("%d", s.WPM),
			fmt.Sprintf("%d%%", s.Accuracy),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints learning curves for score, WPM, and thumb accuracy.
func RenderCurves(w io.Writer, sessions []model.SessionRecord, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, 10)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionRecord, window, totalWidth, height int) error {
	if len(sessions) == 0 {
		return nil
	}
	scores := make([]float64, len(sessions))
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		scores[i] = float64(s.Score)
		wpms[i] = float64(s.WPM)
		accs[i] = float64(s.Accuracy)
	}

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Learning Curves", []Series{
		{Name: "Score", Values: MovingAverage(scores, window)},
		{Name: "WPM", Values: MovingAverage(wpms, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}, width, height)
}
