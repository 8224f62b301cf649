package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/thumbfall/internal/engine"
	"github.com/verte-zerg/thumbfall/internal/thumb"
)

// fallRow maps a word's fall progress onto a field row, top row at spawn and
// bottom row at the miss boundary.
func fallRow(w *engine.FallingWord, rows int, now time.Time) int {
	if rows <= 1 {
		return 0
	}
	p := w.FallProgress(now)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return int(p * float64(rows-1))
}

// fieldCol converts a playfield unit offset to a terminal column.
func fieldCol(x float64) int {
	return int(x / engine.UnitsPerCell)
}

// renderField draws all falling words into a cols x rows cell grid.
func renderField(s *engine.Session, t Theme, cols, rows int, now time.Time) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
	}

	for _, w := range s.Falling {
		row := fallRow(w, rows, now)
		col := fieldCol(w.X)
		placeWord(grid[row], col, w, t)
	}

	lines := make([]string, rows)
	for y, cells := range grid {
		var b strings.Builder
		for _, cell := range cells {
			if cell == "" {
				b.WriteByte(' ')
			} else {
				b.WriteString(cell)
			}
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// placeWord writes one word into a row of cells, styled by its state: flash
// colors for settled words, highlighted prefix for the active word, and the
// first letter tinted by the thumb expected to start it.
func placeWord(cells []string, col int, w *engine.FallingWord, t Theme) {
	for i, r := range []rune(w.Word) {
		x := col + i
		if x < 0 || x >= len(cells) {
			continue
		}
		var style lipgloss.Style
		switch {
		case w.Removed:
			switch w.Outcome {
			case engine.OutcomeCorrect:
				style = t.correct
			case engine.OutcomeWrong:
				style = t.wrong
			default:
				style = t.neutral
			}
		case w.Active && i < w.Progress:
			style = t.typedPrefix
		case w.Active:
			style = t.activeWord
		case i == 0:
			switch thumb.Expected(w.Word) {
			case thumb.SideLeft:
				style = t.thumbLeft
			case thumb.SideRight:
				style = t.thumbRight
			default:
				style = t.word
			}
		default:
			style = t.word
		}
		cells[x] = style.Render(string(r))
	}
}

// hearts renders the life counter, filled hearts first.
func hearts(lives, total int) string {
	if lives < 0 {
		lives = 0
	}
	if lives > total {
		lives = total
	}
	return strings.Repeat("♥", lives) + strings.Repeat("♡", total-lives)
}

func renderHUD(s *engine.Session, t Theme, daily bool) string {
	segments := []string{
		t.hudLabel.Render("Score ") + t.hudValue.Render(fmt.Sprintf("%d", s.Score)),
		t.hudLabel.Render("High ") + t.hudValue.Render(fmt.Sprintf("%d", s.HighScore)),
	}
	comboText := fmt.Sprintf("x%d", s.Combo)
	if s.Combo > 0 {
		segments = append(segments, t.hudLabel.Render("Combo ")+t.combo.Render(comboText))
	} else {
		segments = append(segments, t.hudLabel.Render("Combo ")+t.hudValue.Render(comboText))
	}
	segments = append(segments,
		t.hudLabel.Render("Level ")+t.hudValue.Render(fmt.Sprintf("%d", s.Level)),
		t.lives.Render(hearts(s.Lives, engine.StartingLives)),
		t.hudLabel.Render("WPM ")+t.hudValue.Render(fmt.Sprintf("%d", engine.WPM(s.Recent))),
		t.hudLabel.Render("Acc ")+t.hudValue.Render(fmt.Sprintf("%d%%", engine.Accuracy(s.CorrectThumbs, s.TotalThumbs))),
	)
	if daily {
		segments = append(segments, t.flash.Render("daily"))
	}
	return strings.Join(segments, "  ")
}

func renderPlayFooter(s *engine.Session, t Theme) string {
	segments := []string{}
	if buf := s.Buffer(); buf != "" {
		segments = append(segments, t.hudValue.Render("> "+buf))
	}
	if s.Lesson.Config.EnforceAlternate && s.NextThumb != thumb.SideUnknown {
		segments = append(segments, t.hudLabel.Render("next: ")+t.hudValue.Render(s.NextThumb.String()))
	}
	segments = append(segments, t.footer.Render("esc: pause"))
	return strings.Join(segments, "  ")
}
