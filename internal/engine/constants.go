package engine

import "time"

// Timing for the spawn/fall/ramp loop. Spawn and fall both speed up with the
// level but are clamped so the game stays playable.
const (
	BaseSpawn = 2500 * time.Millisecond
	MinSpawn  = 1400 * time.Millisecond
	spawnStep = 180 * time.Millisecond

	BaseFall = 13 * time.Second
	MinFall  = 5 * time.Second
	fallStep = 900 * time.Millisecond

	// RampInterval is the fixed period between automatic level-ups.
	RampInterval = 50 * time.Second
	// RefreshInterval drives position updates and active-word reselection.
	RefreshInterval = 100 * time.Millisecond
)

// Playfield geometry, in abstract units. The TUI maps units to terminal cells.
const (
	// UnitsPerCell is the unit width of one terminal cell; a typed character
	// occupies exactly one cell.
	UnitsPerCell = charUnit

	charUnit    = 12.0
	wordPadding = 28.0
	edgeMargin  = 20.0
	minSpacing  = 120.0

	spawnAttempts = 10
)

// Word lifecycle.
const (
	// MaxFalling caps how many words fall concurrently.
	MaxFalling = 3
	// StartingLives is the life count at session start.
	StartingLives = 5

	maxBufferLen = 20

	flashCorrectFor = 420 * time.Millisecond
	flashWrongFor   = 480 * time.Millisecond
	popDelay        = 120 * time.Millisecond
)
