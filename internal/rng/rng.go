// Package rng provides the random stream behind word selection and placement.
package rng

import (
	"math/rand"
	"time"
)

// Source produces uniform floats in [0, 1).
type Source func() float64

// New returns a random source. With daily enabled the source is seeded from the
// current UTC calendar date, so every player sees the same draw sequence that day.
func New(daily bool) Source {
	if !daily {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		return rnd.Float64
	}
	return NewForDate(time.Now())
}

// NewForDate returns the deterministic daily source for the given moment's UTC date.
func NewForDate(t time.Time) Source {
	return mulberry32(hashDate(t.UTC().Format("2006-01-02")))
}

// hashDate mixes an ISO date string into a 32-bit seed. The rotate-and-multiply
// scheme keeps the seed stable across platforms for the same date.
func hashDate(s string) uint32 {
	h := uint32(1779033703) ^ uint32(len(s))
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 3432918353
		h = h<<13 | h>>19
	}
	return h
}

// mulberry32 is a small fast PRNG with 32-bit state, one multiply-mix per draw.
func mulberry32(state uint32) Source {
	return func() float64 {
		state += 0x6d2b79f5
		t := state
		t = (t ^ t>>15) * (t | 1)
		t ^= t + (t^t>>7)*(t|61)
		t ^= t >> 14
		return float64(t) / 4294967296.0
	}
}
