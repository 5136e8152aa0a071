package utils

import (
	"sort"
	"testing"

	. "github.com/go-playground/assert/v2"
)

func TestRandRange(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 1000; i++ {
		v := r.Value()
		Equal(t, v >= 0 && v < 1, true)

		x := r.Range(-2, 3)
		Equal(t, x >= -2 && x < 3, true)

		n := r.IntRange(-1, 1)
		Equal(t, n >= -1 && n <= 1, true)
	}
	Equal(t, r.Range(5, 5), 5.0)
}

func TestFrameClock(t *testing.T) {
	c := NewFrameClock(0)
	Equal(t, c.Delta(), 0.0)

	c.Advance(0.5)
	c.Advance(0.25)
	Equal(t, c.Now(), 0.75)
	Equal(t, c.Delta(), 0.25)
	Equal(t, c.Frame(), uint64(2))

	c.Advance(-1)
	Equal(t, c.Now(), 0.75)
	Equal(t, c.Delta(), 0.0)
}

func TestWashShuffleArrayKeepsElements(t *testing.T) {
	lanes := Lanes(3)
	Equal(t, len(lanes), 7)

	shuffled := WashShuffleArray(NewRand(7), append([]int(nil), lanes...))
	sort.Ints(shuffled)
	Equal(t, shuffled, lanes)
}

func TestRunPanicless(t *testing.T) {
	Equal(t, RunPanicless(func() {}), true)
	Equal(t, RunPanicless(func() { panic("boom") }), false)
	Equal(t, CatchPanic(func() { panic("boom") }), "boom")
}
