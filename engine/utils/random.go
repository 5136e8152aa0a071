package utils

import (
	"math/rand"
	"time"
)

// Rand is a per-agent random source, not safe for concurrent use
type Rand struct {
	r *rand.Rand
}

// NewRand seeded with seed; seed 0 picks a time based seed
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Value uniform in [0, 1)
func (r *Rand) Value() float64 {
	return r.r.Float64()
}

// Range uniform in [min, max)
func (r *Rand) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.r.Float64()*(max-min)
}

// IntRange uniform in [min, max]
func (r *Rand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.Intn(max-min+1)
}

// Int63 lets a Rand seed other sources
func (r *Rand) Int63() int64 {
	return r.r.Int63()
}
