// Package lesson defines lessons and their word pools.
package lesson

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/thumbfall/internal/model"
)

// Defaults returns the built-in lesson chain, ordered by unlock sequence.
func Defaults() []model.Lesson {
	return []model.Lesson{
		{
			ID:          "left-hand",
			Title:       "Left Hand Practice",
			Description: "Words typed only with your left thumb.",
			Config:      model.LessonConfig{AllowedSet: model.AllowedLeft},
		},
		{
			ID:          "right-hand",
			Title:       "Right Hand Practice",
			Description: "Words typed only with your right thumb.",
			Config:      model.LessonConfig{AllowedSet: model.AllowedRight},
		},
		{
			ID:          "alternating",
			Title:       "Alternating Thumbs",
			Description: "Words that alternate between thumbs.",
			Config:      model.LessonConfig{EnforceAlternate: true},
		},
		{
			ID:          "mixed-short",
			Title:       "Mixed Short Words",
			Description: "A mix of short words from both thumbs.",
			Config:      model.LessonConfig{MaxLength: 4},
		},
		{
			ID:          "mixed-fast",
			Title:       "Mixed Fast",
			Description: "Full word set, faster pace.",
			Config:      model.LessonConfig{Level: 2},
		},
		{
			ID:          "full-set",
			Title:       "Full Set Challenge",
			Description: "The complete word list.",
		},
	}
}

type lessonsFile struct {
	Lessons []model.Lesson `toml:"lessons"`
}

// Load reads lesson definitions from a TOML file. A missing file or a file with
// no lessons falls back to Defaults; a malformed file is an error.
func Load(path string) ([]model.Lesson, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to stat lessons file: %w", err)
	}
	var file lessonsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode lessons file: %w", err)
	}
	if len(file.Lessons) == 0 {
		return Defaults(), nil
	}
	return file.Lessons, nil
}

// IndexByID returns the position of a lesson id, or -1 when absent.
func IndexByID(lessons []model.Lesson, id string) int {
	for i, l := range lessons {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// UnlockRequirement is the human-readable gate shown for locked lessons. It must
// stay in sync with the unlock rule in the engine's progress ledger.
const UnlockRequirement = "Finish the previous lesson with 80% accuracy OR 20 WPM OR 10 words."
