// Package model defines shared data structures.
package model

import "time"

// AllowedSet restricts a lesson corpus to a single thumb's letters.
type AllowedSet string

const (
	// AllowedAny places no single-side restriction on the corpus.
	AllowedAny AllowedSet = ""
	// AllowedLeft keeps only words typed entirely with the left thumb.
	AllowedLeft AllowedSet = "left"
	// AllowedRight keeps only words typed entirely with the right thumb.
	AllowedRight AllowedSet = "right"
)

// LessonConfig holds the recognized lesson options.
type LessonConfig struct {
	AllowedSet       AllowedSet `toml:"allowed-set"`
	EnforceAlternate bool       `toml:"enforce-alternate"`
	MaxLength        int        `toml:"max-length"`
	Level            int        `toml:"level"`
}

// Lesson is a named word-subset-and-rule configuration gating progression.
type Lesson struct {
	ID          string       `toml:"id"`
	Title       string       `toml:"title"`
	Description string       `toml:"description"`
	Config      LessonConfig `toml:"config"`
}

// AudioSettings holds persisted audio preferences.
type AudioSettings struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// DefaultAudioSettings returns the audio defaults used before any data is stored.
func DefaultAudioSettings() AudioSettings {
	return AudioSettings{Enabled: true, Volume: 0.7}
}

// SessionRecord captures a finished play session for history and reporting.
type SessionRecord struct {
	ID           int64
	StartedAt    time.Time
	EndedAt      time.Time
	LessonID     string
	Daily        bool
	Score        int
	MaxCombo     int
	LevelReached int
	WordsTyped   int
	WPM          int
	Accuracy     int
	DurationMs   int64
}

// StatsConfig defines filters for the stats report.
type StatsConfig struct {
	Lesson      string
	Since       *time.Time
	Last        int
	CurveWindow int
}
