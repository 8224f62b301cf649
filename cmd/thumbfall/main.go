// Package main provides the CLI entrypoint for thumbfall.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/thumbfall/internal/config"
	"github.com/verte-zerg/thumbfall/internal/feedback"
	"github.com/verte-zerg/thumbfall/internal/lesson"
	"github.com/verte-zerg/thumbfall/internal/logging"
	"github.com/verte-zerg/thumbfall/internal/model"
	"github.com/verte-zerg/thumbfall/internal/stats"
	"github.com/verte-zerg/thumbfall/internal/store"
	"github.com/verte-zerg/thumbfall/internal/tui"
	"github.com/verte-zerg/thumbfall/internal/words"
)

const defaultCurveWindow = 10

var (
	playLesson string
	playWords  string
	playDaily  bool
	playTheme  string
	playMute   bool

	statsLesson      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsTop         int
	statsWeakest     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "thumbfall",
		Short:         "Falling-word two-thumb typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playLesson, "lesson", "", "lesson id to preselect")
	rootCmd.Flags().StringVar(&playWords, "words", "", "path to a word list (one word per line)")
	rootCmd.Flags().BoolVar(&playDaily, "daily", false, "play the daily challenge (same word order for everyone today)")
	rootCmd.Flags().StringVar(&playTheme, "theme", "", "color theme: "+strings.Join(tui.ThemeNames(), ", "))
	rootCmd.Flags().BoolVar(&playMute, "mute", false, "disable sound for this run")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lesson", &playLesson, fileCfg.Play.Lesson)
	applyStringConfig(cmd, "words", &playWords, fileCfg.Play.Words)
	applyBoolConfig(cmd, "daily", &playDaily, fileCfg.Play.Daily)
	applyStringConfig(cmd, "theme", &playTheme, fileCfg.Play.Theme)

	log, closeLog := logging.Open(config.DefaultLogPath())
	// Best-effort close, the log file is advisory.
	defer func() { _ = closeLog() }()

	wordsPath := playWords
	if wordsPath == "" {
		wordsPath = config.DefaultWordListPath()
	}
	corpus, err := words.Load(wordsPath)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}

	lessons, err := lesson.Load(config.DefaultLessonsPath())
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	ctx := context.Background()
	highScore, err := st.HighScore(ctx)
	if err != nil {
		return fmt.Errorf("failed to load high score: %w", err)
	}
	unlocked, err := st.UnlockedLessons(ctx)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	if playTheme, err = resolveTheme(ctx, st, playTheme); err != nil {
		return err
	}

	sound := openSound(ctx, st, fileCfg, playMute, log)
	defer sound.Close()

	m := tui.NewModel(st, log, sound, lessons, unlocked, corpus, highScore, playDaily, playTheme, playLesson)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveTheme returns the effective theme: an explicit choice (flag or config)
// is persisted as the new default, otherwise the stored choice is used.
func resolveTheme(ctx context.Context, st *store.Store, chosen string) (string, error) {
	if chosen == "" {
		theme, err := st.Theme(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to load theme: %w", err)
		}
		return theme, nil
	}
	if err := st.SaveTheme(ctx, chosen); err != nil {
		return "", fmt.Errorf("failed to save theme: %w", err)
	}
	return chosen, nil
}

// openSound resolves the audio settings (persisted, then config file, then the
// --mute flag), persists the effective settings, and initializes the speaker.
// Audio failures degrade to silence. Mute applies to this run only and is never
// written back.
func openSound(ctx context.Context, st *store.Store, fileCfg config.FileConfig, mute bool, log zerolog.Logger) feedback.Sink {
	settings, err := st.AudioSettings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load audio settings")
		settings = model.DefaultAudioSettings()
	}
	if fileCfg.Audio.Enabled != nil {
		settings.Enabled = *fileCfg.Audio.Enabled
	}
	if fileCfg.Audio.Volume != nil {
		settings.Volume = *fileCfg.Audio.Volume
	}
	if err := st.SaveAudioSettings(ctx, settings); err != nil {
		log.Warn().Err(err).Msg("failed to save audio settings")
	}
	if mute || !settings.Enabled {
		return feedback.Noop{}
	}

	sound, err := feedback.NewAudio(settings)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, playing silent")
		return feedback.Noop{}
	}
	return sound
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List lessons and unlock status",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	log, closeLog := logging.Open(config.DefaultLogPath())
	defer func() { _ = closeLog() }()

	lessons, err := lesson.Load(config.DefaultLessonsPath())
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	unlocked, err := st.UnlockedLessons(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, l := range lessons {
		status := "locked"
		if unlocked[i] {
			status = "open"
		}
		if _, err := fmt.Fprintf(out, "%-14s %-8s %s\n", l.ID, status, l.Description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "\nUnlock rule: %s\n", lesson.UnlockRequirement); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history and learning curves",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLesson, "lesson", "", "lesson id filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", 3, "number of best sessions to show")
	cmd.Flags().IntVar(&statsWeakest, "weakest", 3, "number of weakest lessons to suggest")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Lesson:      statsLesson,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	log, closeLog := logging.Open(config.DefaultLogPath())
	defer func() { _ = closeLog() }()

	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return err
	}
	if err := stats.RenderHistory(out, report.Sessions); err != nil {
		return err
	}
	if err := stats.RenderTopSessions(out, report.Sessions, statsTop); err != nil {
		return err
	}
	if err := stats.RenderCurves(out, report.Sessions, cfg.CurveWindow); err != nil {
		return err
	}
	return renderWeakest(out, report, statsWeakest)
}

func renderWeakest(out io.Writer, report stats.Report, n int) error {
	weakest := stats.WeakestLessons(report.Lessons, n)
	if len(weakest) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, "Worth another run"); err != nil {
		return err
	}
	for _, agg := range weakest {
		if _, err := fmt.Fprintf(out, "%-14s %d sessions, avg %.0f%% thumb accuracy, avg %.0f WPM\n",
			agg.LessonID, agg.Sessions, agg.AvgAccuracy, agg.AvgWPM); err != nil {
			return err
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# thumbfall configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# lesson = "left-hand"    # Lesson id to preselect
# words = ""              # Path to a custom word list (one word per line)
# daily = false           # Always play the daily challenge
# theme = "default"       # Color theme: ` + strings.Join(tui.ThemeNames(), ", ") + `

[audio]
# enabled = true          # Sound cues on typing events
# volume = 0.7            # Cue loudness (0-1)
`
}
