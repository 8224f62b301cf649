package lesson

import (
	"github.com/verte-zerg/thumbfall/internal/model"
	"github.com/verte-zerg/thumbfall/internal/thumb"
)

// Pools holds the eligible word subset for a lesson and its per-thumb partitions.
type Pools struct {
	Active []string
	Left   []string
	Right  []string
}

// FilterWords applies the lesson config to the corpus: the allowed-set
// restriction first, then the max-length cap. No match yields an empty slice,
// which the caller must treat as a fatal precondition for starting.
func FilterWords(l model.Lesson, corpus []string) []string {
	var out []string
	for _, w := range corpus {
		switch l.Config.AllowedSet {
		case model.AllowedLeft:
			if !thumb.AllLeft(w) {
				continue
			}
		case model.AllowedRight:
			if !thumb.AllRight(w) {
				continue
			}
		}
		if l.Config.MaxLength > 0 && len(w) > l.Config.MaxLength {
			continue
		}
		out = append(out, w)
	}
	return out
}

// BuildPools filters the corpus for the lesson and partitions the result into
// left and right pools by each word's expected thumb.
func BuildPools(l model.Lesson, corpus []string) Pools {
	active := FilterWords(l, corpus)
	pools := Pools{Active: active}
	for _, w := range active {
		if thumb.Expected(w) == thumb.SideLeft {
			pools.Left = append(pools.Left, w)
		} else {
			pools.Right = append(pools.Right, w)
		}
	}
	return pools
}
