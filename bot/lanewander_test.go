package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaneWanderBounds(t *testing.T) {
	p := DefaultParams()
	p.MaxLaneOffset = 2
	p.Aggression = 0

	lw := NewLaneWander(p, 0, &seqRandom{values: []float64{0, 0}})
	assert.InDelta(t, -0.8, lw.Offset(), 1e-9)
	assert.InDelta(t, 2.0, lw.NextRepick(), 1e-9)

	p.Aggression = 1
	lw = NewLaneWander(p, 10, &seqRandom{values: []float64{0.999, 0.5}})
	assert.True(t, lw.Offset() <= 2 && lw.Offset() > 1.9)
	assert.InDelta(t, 13.5, lw.NextRepick(), 1e-9)
}

func TestLaneWanderRepick(t *testing.T) {
	p := DefaultParams()
	rnd := &seqRandom{values: []float64{0.5}}
	lw := NewLaneWander(p, 0, rnd)
	assert.InDelta(t, 3.5, lw.NextRepick(), 1e-9)

	lw.ForceRepickEarly(1, 0.01)
	assert.InDelta(t, 1.1, lw.NextRepick(), 1e-9)

	// never pushed later
	lw.ForceRepickEarly(1, 5)
	assert.InDelta(t, 1.1, lw.NextRepick(), 1e-9)

	lw.Tick(p, 1, rnd)
	assert.InDelta(t, 1.1, lw.NextRepick(), 1e-9)
	lw.Tick(p, 1.2, rnd)
	assert.InDelta(t, 4.7, lw.NextRepick(), 1e-9)
}
