package engine

import "math"

// WPM computes words-per-minute over the rolling completion window: total
// characters divided by 5, over the span between the first and last sample.
// Fewer than two samples, or a non-positive span, yields 0.
func WPM(recent []Completion) int {
	if len(recent) < 2 {
		return 0
	}
	span := recent[len(recent)-1].At.Sub(recent[0].At)
	minutes := span.Minutes()
	if minutes <= 0 {
		return 0
	}
	chars := 0
	for _, c := range recent {
		chars += c.Chars
	}
	return int(math.Round(float64(chars) / 5.0 / minutes))
}

// Accuracy returns the rounded thumb-accuracy percentage. With no samples yet
// it reports the optimistic default of 100.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ComboMultiplier converts a streak length into the score multiplier.
func ComboMultiplier(combo int) int {
	mult := 1 + combo/5
	if mult < 1 {
		return 1
	}
	return mult
}
