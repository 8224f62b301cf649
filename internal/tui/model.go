package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/thumbfall/internal/engine"
	"github.com/verte-zerg/thumbfall/internal/feedback"
	"github.com/verte-zerg/thumbfall/internal/lesson"
	"github.com/verte-zerg/thumbfall/internal/model"
	"github.com/verte-zerg/thumbfall/internal/store"
	"github.com/verte-zerg/thumbfall/internal/thumb"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenGameOver
)

// levelPauseFor is the breather shown between levels.
const levelPauseFor = 1200 * time.Millisecond

// Timer messages carry the generation they were scheduled under. Pausing or
// ending a session bumps the generation, so stale ticks are dropped instead of
// mutating a session they no longer belong to.
type (
	spawnTickMsg   struct{ gen int }
	frameTickMsg   struct{ gen int }
	rampTickMsg    struct{ gen int }
	levelResumeMsg struct{ gen int }
)

// Model implements the Bubble Tea game UI.
type Model struct {
	store *store.Store
	log   zerolog.Logger
	sound feedback.Sink

	lessons  []model.Lesson
	unlocked map[int]bool
	corpus   []string
	daily    bool
	theme    Theme

	session *engine.Session

	lessonTable table.Model

	screen screen
	width  int
	height int

	timerGen int

	highScoreCued bool
	unlockMsg     string
	finalRecord   model.SessionRecord
	errMsg        string
}

// NewModel constructs the game model around an idle session. startLesson, when
// it names a known lesson id, preselects that lesson in the menu.
func NewModel(st *store.Store, log zerolog.Logger, sound feedback.Sink, lessons []model.Lesson, unlocked map[int]bool, corpus []string, highScore int, daily bool, themeName, startLesson string) *Model {
	m := &Model{
		store:    st,
		log:      log,
		sound:    sound,
		lessons:  lessons,
		unlocked: unlocked,
		corpus:   corpus,
		daily:    daily,
		theme:    ThemeByName(themeName),
		session:  engine.New(highScore, 80*engine.UnitsPerCell),
		screen:   screenMenu,
	}
	cursor := 0
	if idx := lesson.IndexByID(lessons, startLesson); idx >= 0 {
		cursor = idx
	}
	m.lessonTable = buildLessonTable(lessons, unlocked, cursor, 10)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.SetPlayWidth(float64(msg.Width) * engine.UnitsPerCell)
		m.resizeLessonTable()
		return m, nil

	case tea.MouseMsg:
		if m.width > 0 {
			side := thumb.SideLeft
			if msg.X >= m.width/2 {
				side = thumb.SideRight
			}
			m.session.SetPointerSide(side)
		}
		return m, nil

	case spawnTickMsg:
		return m.onSpawnTick(msg.gen)
	case frameTickMsg:
		return m.onFrameTick(msg.gen)
	case rampTickMsg:
		return m.onRampTick(msg.gen)
	case levelResumeMsg:
		return m.onLevelResume(msg.gen)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenPlay:
			return m.updatePlay(msg)
		case screenGameOver:
			return m.updateGameOver(msg)
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "d":
		m.daily = !m.daily
		return m, nil
	case "enter":
		return m.startLesson(m.lessonTable.Cursor())
	default:
		var cmd tea.Cmd
		m.lessonTable, cmd = m.lessonTable.Update(msg)
		return m, cmd
	}
}

func (m *Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch msg.Type {
	case tea.KeyEsc:
		switch m.session.Phase {
		case engine.PhaseRunning:
			m.session.Pause(now)
			m.timerGen++
		case engine.PhasePaused:
			m.session.Resume(now)
			return m, m.startTimers()
		}
		return m, nil
	case tea.KeyRunes:
		if msg.String() == "q" && m.session.Phase == engine.PhasePaused {
			m.endSession(now)
			m.refreshMenu()
			m.screen = screenMenu
			return m, nil
		}
		for _, r := range msg.Runes {
			m.handleTypedRune(r, now)
		}
		if m.session.Phase == engine.PhaseEnded {
			m.screen = screenGameOver
			m.timerGen++
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.refreshMenu()
		m.screen = screenMenu
		return m, nil
	case "r":
		return m.startLesson(m.session.LessonIndex)
	case "q":
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m *Model) handleTypedRune(r rune, now time.Time) {
	ev := m.session.TypeRune(r, now)
	switch ev.Kind {
	case engine.InputProgress:
		m.sound.KeyTick()
	case engine.InputCompleted:
		switch ev.Outcome {
		case engine.OutcomeCorrect:
			m.sound.WordCorrect()
		case engine.OutcomeWrong:
			m.sound.WordError()
		default:
			m.sound.KeyTick()
		}
		if ev.NewHighScore {
			// The best score is written the moment it is beaten, so quitting
			// mid-session (or a crash) cannot lose it.
			if err := m.store.SaveHighScore(context.Background(), m.session.HighScore); err != nil {
				m.log.Error().Err(err).Msg("failed to save high score")
			}
			if !m.highScoreCued {
				m.highScoreCued = true
				m.sound.HighScore()
			}
		}
	}
}

func (m *Model) startLesson(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.lessons) {
		return m, nil
	}
	if !m.unlocked[idx] {
		m.errMsg = "Locked. " + lesson.UnlockRequirement
		return m, nil
	}
	l := m.lessons[idx]
	pools := lesson.BuildPools(l, m.corpus)
	now := time.Now()
	if err := m.session.Start(l, idx, pools, m.daily, now); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.unlockMsg = ""
	m.highScoreCued = false
	m.screen = screenPlay
	m.log.Info().Str("lesson", l.ID).Bool("daily", m.daily).Msg("session started")
	return m, m.startTimers()
}

// startTimers begins a fresh timer generation for the running session.
func (m *Model) startTimers() tea.Cmd {
	m.timerGen++
	return tea.Batch(m.spawnCmd(), m.frameCmd(), m.rampCmd())
}

func (m *Model) spawnCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(m.session.SpawnInterval(), func(time.Time) tea.Msg {
		return spawnTickMsg{gen: gen}
	})
}

func (m *Model) frameCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(engine.RefreshInterval, func(time.Time) tea.Msg {
		return frameTickMsg{gen: gen}
	})
}

func (m *Model) rampCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(engine.RampInterval, func(time.Time) tea.Msg {
		return rampTickMsg{gen: gen}
	})
}

func (m *Model) levelResumeCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(levelPauseFor, func(time.Time) tea.Msg {
		return levelResumeMsg{gen: gen}
	})
}

func (m *Model) onSpawnTick(gen int) (tea.Model, tea.Cmd) {
	if gen != m.timerGen || m.screen != screenPlay {
		return m, nil
	}
	now := time.Now()
	if m.session.Phase == engine.PhaseRunning {
		if w := m.session.Spawn(now); w != nil {
			m.session.UpdateActive(now)
		}
	}
	return m, m.spawnCmd()
}

func (m *Model) onFrameTick(gen int) (tea.Model, tea.Cmd) {
	if gen != m.timerGen || m.screen != screenPlay {
		return m, nil
	}
	now := time.Now()
	events := m.session.Sweep(now)
	for _, ev := range events {
		if !ev.Missed {
			continue
		}
		m.sound.WordError()
		if ev.GameOver {
			m.endSession(now)
			m.screen = screenGameOver
			m.timerGen++
			return m, nil
		}
	}
	m.session.UpdateActive(now)
	return m, m.frameCmd()
}

func (m *Model) onRampTick(gen int) (tea.Model, tea.Cmd) {
	if gen != m.timerGen || m.session.Phase != engine.PhaseRunning {
		return m, nil
	}
	m.session.LevelUp()
	m.sound.LevelUp()
	return m, m.levelResumeCmd()
}

func (m *Model) onLevelResume(gen int) (tea.Model, tea.Cmd) {
	if gen != m.timerGen || m.session.Phase != engine.PhaseLevelPause {
		return m, nil
	}
	m.session.ResumeFromLevelUp(time.Now())
	return m, m.rampCmd()
}

// endSession finishes the session, persists the record and progress, and
// checks lesson unlocks. Safe to call once per session.
func (m *Model) endSession(now time.Time) {
	s := m.session
	s.End()
	m.timerGen++

	rec := model.SessionRecord{
		StartedAt:    s.StartedAt,
		EndedAt:      now,
		LessonID:     s.Lesson.ID,
		Daily:        s.Daily,
		Score:        s.Score,
		MaxCombo:     s.MaxCombo,
		LevelReached: s.Level,
		WordsTyped:   s.WordsTyped,
		WPM:          engine.WPM(s.Recent),
		Accuracy:     engine.Accuracy(s.CorrectThumbs, s.TotalThumbs),
		DurationMs:   now.Sub(s.StartedAt).Milliseconds(),
	}
	m.finalRecord = rec

	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, rec); err != nil {
		m.log.Error().Err(err).Msg("failed to save session")
	}
	if err := m.store.SaveHighScore(ctx, s.HighScore); err != nil {
		m.log.Error().Err(err).Msg("failed to save high score")
	}

	m.unlockMsg = ""
	if unlock := s.CheckUnlock(len(m.lessons), m.unlocked); unlock != nil {
		m.unlockMsg = unlock.Message
		indexes := make([]int, 0, len(m.unlocked))
		for i, ok := range m.unlocked {
			if ok {
				indexes = append(indexes, i)
			}
		}
		if err := m.store.SaveUnlockedLessons(ctx, indexes); err != nil {
			m.log.Error().Err(err).Msg("failed to save unlocked lessons")
		}
	}

	m.log.Info().
		Str("lesson", rec.LessonID).
		Int("score", rec.Score).
		Int("wpm", rec.WPM).
		Int("accuracy", rec.Accuracy).
		Msg("session finished")
}

func (m *Model) refreshMenu() {
	cursor := m.lessonTable.Cursor()
	m.lessonTable = buildLessonTable(m.lessons, m.unlocked, cursor, m.lessonTableHeight())
	m.resizeLessonTable()
}

func (m *Model) lessonTableHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	if h > len(m.lessons)+1 {
		h = len(m.lessons) + 1
	}
	return h
}

func (m *Model) resizeLessonTable() {
	if m.width <= 0 {
		return
	}
	m.lessonTable.SetWidth(m.width)
	m.lessonTable.SetHeight(m.lessonTableHeight())
}

func buildLessonTable(lessons []model.Lesson, unlocked map[int]bool, cursor, height int) table.Model {
	columns := []table.Column{
		{Title: "Lesson", Width: 22},
		{Title: "Description", Width: 42},
		{Title: "Status", Width: 8},
	}
	rows := make([]table.Row, 0, len(lessons))
	for i, l := range lessons {
		status := "locked"
		if unlocked[i] {
			status = "open"
		}
		rows = append(rows, table.Row{l.Title, l.Description, status})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	if cursor > 0 && cursor < len(lessons) {
		t.SetCursor(cursor)
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#C89A3A")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.screen {
	case screenPlay:
		return m.viewPlay()
	case screenGameOver:
		return m.viewGameOver()
	default:
		return m.viewMenu()
	}
}

func (m *Model) viewMenu() string {
	t := m.theme
	title := t.hudValue.Render("thumbfall") + t.hudLabel.Render("  two-thumb typing practice")
	mode := "off"
	if m.daily {
		mode = "on"
	}
	status := t.hudLabel.Render(fmt.Sprintf("High score %d  ·  Daily challenge %s", m.session.HighScore, mode))

	lines := []string{title, status, "", m.lessonTable.View(), ""}
	if m.errMsg != "" {
		lines = append(lines, t.danger.Render(m.errMsg))
	}
	lines = append(lines, t.footer.Render("enter: play  d: daily  up/down: select  q: quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPlay() string {
	now := time.Now()
	fieldRows := m.height - 3
	if fieldRows < 1 {
		fieldRows = 1
	}

	hud := renderHUD(m.session, m.theme, m.daily)
	field := renderField(m.session, m.theme, m.width, fieldRows, now)

	switch m.session.Phase {
	case engine.PhasePaused:
		field = m.overlayOnField(fieldRows, "Paused", "esc: resume  q: end session")
	case engine.PhaseLevelPause:
		field = m.overlayOnField(fieldRows, fmt.Sprintf("Level %d", m.session.Level), "get ready")
	}

	footer := renderPlayFooter(m.session, m.theme)
	return hud + "\n" + field + "\n" + footer
}

func (m *Model) overlayOnField(fieldRows int, title, hint string) string {
	t := m.theme
	content := t.hudValue.Render(title) + "\n" + t.overlayText.Render(hint)
	box := t.overlay.Render(content)
	return lipgloss.Place(m.width, fieldRows, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewGameOver() string {
	t := m.theme
	rec := m.finalRecord
	lines := []string{
		t.danger.Render("Game Over"),
		"",
		fmt.Sprintf("%s %s", t.hudLabel.Render("Lesson"), t.hudValue.Render(rec.LessonID)),
		fmt.Sprintf("%s %s", t.hudLabel.Render("Score"), t.hudValue.Render(fmt.Sprintf("%d", rec.Score))),
		fmt.Sprintf("%s %s", t.hudLabel.Render("Max combo"), t.hudValue.Render(fmt.Sprintf("x%d", rec.MaxCombo))),
		fmt.Sprintf("%s %s", t.hudLabel.Render("Level"), t.hudValue.Render(fmt.Sprintf("%d", rec.LevelReached))),
		fmt.Sprintf("%s %s", t.hudLabel.Render("Words"), t.hudValue.Render(fmt.Sprintf("%d", rec.WordsTyped))),
		fmt.Sprintf("%s %s", t.hudLabel.Render("WPM"), t.hudValue.Render(fmt.Sprintf("%d", rec.WPM))),
		fmt.Sprintf("%s %s", t.hudLabel.Render("Thumb accuracy"), t.hudValue.Render(fmt.Sprintf("%d%%", rec.Accuracy))),
	}
	if m.highScoreCued {
		lines = append(lines, "", t.flash.Render(fmt.Sprintf("New high score: %d!", m.session.HighScore)))
	}
	if m.unlockMsg != "" {
		lines = append(lines, "", t.flash.Render(m.unlockMsg))
	}
	lines = append(lines, "", m.theme.footer.Render("r: retry  enter: menu  q: quit"))

	box := m.theme.overlay.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
