package feedback

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/verte-zerg/thumbfall/internal/model"
)

const sampleRate = beep.SampleRate(48000)

// Audio plays short synthesized cues through the system speaker.
type Audio struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
}

// NewAudio initializes the speaker and returns a playing sink. On machines
// without an audio device the error is returned so the caller can fall back
// to the Noop sink; the game itself never requires sound.
func NewAudio(settings model.AudioSettings) (*Audio, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	a := &Audio{
		mixer:  &beep.Mixer{},
		volume: settings.Volume,
	}
	speaker.Play(a.mixer)
	return a, nil
}

// Close silences the mixer. The speaker stays open; beep has no teardown.
func (a *Audio) Close() {
	speaker.Lock()
	a.mixer.Clear()
	speaker.Unlock()
}

func (a *Audio) play(tones ...tone) {
	a.mu.Lock()
	volume := a.volume
	a.mu.Unlock()
	if volume <= 0 {
		return
	}

	var streamers []beep.Streamer
	for _, t := range tones {
		streamers = append(streamers, beep.Take(sampleRate.N(t.dur), newToneStreamer(t, volume)))
	}
	speaker.Lock()
	a.mixer.Add(beep.Seq(streamers...))
	speaker.Unlock()
}

func (a *Audio) KeyTick() {
	a.play(tone{freq: 880, dur: 25 * time.Millisecond, amp: 0.06})
}

func (a *Audio) WordCorrect() {
	a.play(
		tone{freq: 660, dur: 60 * time.Millisecond, amp: 0.15},
		tone{freq: 880, dur: 90 * time.Millisecond, amp: 0.15},
	)
}

func (a *Audio) WordError() {
	a.play(tone{freq: 120, dur: 150 * time.Millisecond, amp: 0.2, buzz: true})
}

func (a *Audio) LevelUp() {
	a.play(
		tone{freq: 523, dur: 70 * time.Millisecond, amp: 0.15},
		tone{freq: 659, dur: 70 * time.Millisecond, amp: 0.15},
		tone{freq: 784, dur: 120 * time.Millisecond, amp: 0.15},
	)
}

func (a *Audio) HighScore() {
	a.play(
		tone{freq: 784, dur: 80 * time.Millisecond, amp: 0.18},
		tone{freq: 988, dur: 80 * time.Millisecond, amp: 0.18},
		tone{freq: 1175, dur: 160 * time.Millisecond, amp: 0.18},
	)
}

type tone struct {
	freq float64
	dur  time.Duration
	amp  float64
	buzz bool
}

// toneStreamer synthesizes a single enveloped tone. Buzz tones stack low
// harmonics for a harsher timbre.
type toneStreamer struct {
	tone
	volume  float64
	pos     int
	samples int
}

func newToneStreamer(t tone, volume float64) *toneStreamer {
	return &toneStreamer{
		tone:    t,
		volume:  volume,
		samples: sampleRate.N(t.dur),
	}
}

func (g *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		sample := math.Sin(2 * math.Pi * g.freq * t)
		if g.buzz {
			sample += 0.5 * math.Sin(2*math.Pi*g.freq*2*t)
			sample += 0.25 * math.Sin(2*math.Pi*g.freq*3*t)
		}

		// Attack then exponential release keeps the cue click-free.
		progress := float64(g.pos) / float64(g.samples)
		envelope := math.Min(progress/0.05, 1.0) * math.Exp(-3*progress)

		out := sample * envelope * g.amp * g.volume
		samples[i][0] = out
		samples[i][1] = out
		g.pos++
	}
	return len(samples), true
}

func (g *toneStreamer) Err() error {
	return nil
}
