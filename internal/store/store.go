// Package store handles SQLite persistence: the meta key/value table for
// progress (high score, unlocked lessons, settings) and the session history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/thumbfall/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Meta keys.
const (
	keyHighScore       = "high_score"
	keyUnlockedLessons = "unlocked_lessons"
	keyTheme           = "theme"
	keyAudioSettings   = "audio_settings"
)

// defaultUnlocked is the set of lesson indexes available before any progress.
var defaultUnlocked = []int{0, 1, 2}

// Store wraps SQLite access for progress and session history.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			daily INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			level_reached INTEGER NOT NULL,
			words_typed INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_lesson_id ON sessions(lesson_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	// Seed the starter lessons so a fresh database has something playable.
	var have string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, keyUnlockedLessons).Scan(&have)
	if errors.Is(err, sql.ErrNoRows) {
		return s.SaveUnlockedLessons(context.Background(), defaultUnlocked)
	}
	return err
}

func (s *Store) getMeta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) setMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// HighScore returns the persisted best score, 0 when none is recorded.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	value, ok, err := s.getMeta(ctx, keyHighScore)
	if err != nil || !ok {
		return 0, err
	}
	var score int
	if _, err := fmt.Sscanf(value, "%d", &score); err != nil {
		s.log.Warn().Str("value", value).Msg("corrupt high score, resetting")
		return 0, nil
	}
	return score, nil
}

// SaveHighScore persists a new best score.
func (s *Store) SaveHighScore(ctx context.Context, score int) error {
	return s.setMeta(ctx, keyHighScore, fmt.Sprintf("%d", score))
}

// UnlockedLessons returns the set of unlocked lesson indexes. Corrupt stored
// data falls back to the starter set rather than locking the player out.
func (s *Store) UnlockedLessons(ctx context.Context) (map[int]bool, error) {
	value, ok, err := s.getMeta(ctx, keyUnlockedLessons)
	if err != nil {
		return nil, err
	}
	indexes := defaultUnlocked
	if ok {
		if err := json.Unmarshal([]byte(value), &indexes); err != nil {
			s.log.Warn().Err(err).Msg("corrupt unlocked lessons, using defaults")
			indexes = defaultUnlocked
		}
	}
	unlocked := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		unlocked[i] = true
	}
	// Index 0 is always playable no matter what was stored.
	unlocked[0] = true
	return unlocked, nil
}

// SaveUnlockedLessons persists the unlocked lesson indexes.
func (s *Store) SaveUnlockedLessons(ctx context.Context, indexes []int) error {
	data, err := json.Marshal(indexes)
	if err != nil {
		return fmt.Errorf("failed to encode unlocked lessons: %w", err)
	}
	return s.setMeta(ctx, keyUnlockedLessons, string(data))
}

// Theme returns the persisted theme name, empty when unset.
func (s *Store) Theme(ctx context.Context) (string, error) {
	value, _, err := s.getMeta(ctx, keyTheme)
	return value, err
}

// SaveTheme persists the theme name.
func (s *Store) SaveTheme(ctx context.Context, name string) error {
	return s.setMeta(ctx, keyTheme, name)
}

// AudioSettings returns the persisted audio settings, falling back to defaults
// when unset or corrupt.
func (s *Store) AudioSettings(ctx context.Context) (model.AudioSettings, error) {
	settings := model.DefaultAudioSettings()
	value, ok, err := s.getMeta(ctx, keyAudioSettings)
	if err != nil || !ok {
		return settings, err
	}
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		s.log.Warn().Err(err).Msg("corrupt audio settings, using defaults")
		return model.DefaultAudioSettings(), nil
	}
	return settings, nil
}

// SaveAudioSettings persists the audio settings.
func (s *Store) SaveAudioSettings(ctx context.Context, settings model.AudioSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode audio settings: %w", err)
	}
	return s.setMeta(ctx, keyAudioSettings, string(data))
}

// InsertSession stores a finished session.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error) {
	daily := 0
	if rec.Daily {
		daily = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, lesson_id, daily, score, max_combo, level_reached, words_typed, wpm, accuracy, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.LessonID,
		daily,
		rec.Score,
		rec.MaxCombo,
		rec.LevelReached,
		rec.WordsTyped,
		rec.WPM,
		rec.Accuracy,
		rec.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns session history filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lesson != "" {
		clauses = append(clauses, "lesson_id = ?")
		args = append(args, cfg.Lesson)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, lesson_id, daily, score, max_combo, level_reached, words_typed, wpm, accuracy, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var startedAt, endedAt string
		var daily int
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &rec.LessonID, &daily, &rec.Score, &rec.MaxCombo, &rec.LevelReached, &rec.WordsTyped, &rec.WPM, &rec.Accuracy, &rec.DurationMs); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Daily = daily != 0
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}
