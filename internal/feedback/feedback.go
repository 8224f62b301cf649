// Package feedback abstracts the short audio cues the game emits on typing
// events, so the TUI never talks to an audio device directly.
package feedback

// Sink receives game events worth an audio cue. Implementations must be safe
// for concurrent use and must never block the caller on playback.
type Sink interface {
	// KeyTick fires on every accepted keystroke.
	KeyTick()
	// WordCorrect fires when a word completes with the expected thumb.
	WordCorrect()
	// WordError fires on a wrong-thumb completion or a missed word.
	WordError()
	// LevelUp fires when the difficulty ramps.
	LevelUp()
	// HighScore fires the first time the session beats the stored best.
	HighScore()
	// Close releases any audio resources.
	Close()
}

// Noop is the silent sink used when audio is disabled or unavailable.
type Noop struct{}

func (Noop) KeyTick()     {}
func (Noop) WordCorrect() {}
func (Noop) WordError()   {}
func (Noop) LevelUp()     {}
func (Noop) HighScore()   {}
func (Noop) Close()       {}
