package bot

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/go-playground/assert/v2"
	"github.com/stretchr/testify/assert"

	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/track"
)

func TestPickNextEmpty(t *testing.T) {
	var c WaypointChooser
	rnd := &seqRandom{}
	Equal(t, c.PickNext(nil, 0, geom.Zero, rnd) == nil, true)
	Equal(t, c.PickNext(wp("a", 0, 0, 1), 0, geom.Zero, rnd) == nil, true)
}

func TestPickNextBranchAndBacktrack(t *testing.T) {
	a := wp("a", 0, 0, 1)
	b := wp("b", 5, 5, 1)
	cw := wp("c", -5, 5, 1)
	link(a, b, cw)
	link(b, a)

	var c WaypointChooser
	rnd := &seqRandom{values: []float64{0.3, 0.9, 0.1}}
	first := c.PickNext(a, 0, geom.Zero, rnd)
	assert.Contains(t, []*track.Waypoint{b, cw}, first)

	c.RememberVisited(a)
	// the only successor of b points back at the agent, so it is filtered
	// out and then restored
	back := c.PickNext(b, 0, mgl64.Vec3{-1, 0, -1}, rnd)
	assert.Equal(t, a, back)
	assert.Equal(t, a, c.LastChosen())
}

func TestPickNextFiltersBackward(t *testing.T) {
	from := wp("from", 0, 0, 1)
	ahead := wp("ahead", 0, 10, 1)
	behind := wp("behind", 0, -10, 1)
	link(from, behind, ahead, from)

	var c WaypointChooser
	// behind would win on the dice but lies toward the agent
	rnd := &seqRandom{values: []float64{0.1}}
	got := c.PickNext(from, 0, mgl64.Vec3{0, 0, -1}, rnd)
	assert.Equal(t, ahead, got)
}

func TestPickNextScoring(t *testing.T) {
	from := wp("from", 0, 0, 1)
	x := wp("x", -1, 5, 1)
	y := wp("y", 1, 5, 1)
	link(from, x, y)

	var c WaypointChooser
	assert.Equal(t, x, c.PickNext(from, 0, geom.Zero, &seqRandom{values: []float64{0.5, 0.4}}))

	// ties keep the first option, but x is now the last choice
	c = WaypointChooser{}
	assert.Equal(t, x, c.PickNext(from, 0, geom.Zero, &seqRandom{values: []float64{0.5, 0.5}}))
	assert.Equal(t, y, c.PickNext(from, 0, geom.Zero, &seqRandom{values: []float64{0.5, 0.5}}))

	c = WaypointChooser{}
	y.RequiresJump = true
	assert.Equal(t, y, c.PickNext(from, 1, geom.Zero, &seqRandom{values: []float64{0.5, 0.4}}))
	y.RequiresJump = false

	c = WaypointChooser{}
	c.RememberVisited(x)
	assert.Equal(t, y, c.PickNext(from, 0, geom.Zero, &seqRandom{values: []float64{0.5, 0.4}}))
}

func TestRecencyMemory(t *testing.T) {
	var c WaypointChooser
	c.RememberVisited(nil)
	Equal(t, c.RecentLen(), 0)

	visited := make([]*track.Waypoint, 0, recentCap)
	for i := 0; i < recentCap; i++ {
		w := wp("w", float64(i), 0, 1)
		visited = append(visited, w)
		c.RememberVisited(w)
	}
	Equal(t, c.RecentLen(), recentCap)

	// revisiting a remembered waypoint does not overflow
	c.RememberVisited(visited[0])
	Equal(t, c.RecentLen(), recentCap)

	sixth := wp("sixth", 0, 0, 1)
	c.RememberVisited(sixth)
	Equal(t, c.RecentLen(), 1)
	Equal(t, c.Recent(sixth), true)
	Equal(t, c.Recent(visited[0]), false)
}

func TestForceRepathFromKeepsCap(t *testing.T) {
	var c WaypointChooser
	for i := 0; i < recentCap; i++ {
		c.RememberVisited(wp("w", float64(i), 0, 1))
	}

	stuck := wp("stuck", 0, 0, 1)
	c.ForceRepathFrom(stuck)
	assert.LessOrEqual(t, c.RecentLen(), recentCap)
	assert.Equal(t, 1, c.RecentLen())
	assert.True(t, c.Recent(stuck))
}

func TestPickNextFallbackSkipsSelf(t *testing.T) {
	from := wp("from", 0, 0, 1)
	back := wp("back", 0, -10, 1)
	link(from, from, back)

	var c WaypointChooser
	// back lies toward the agent, from would win on the dice
	got := c.PickNext(from, 0, mgl64.Vec3{0, 0, -1}, &seqRandom{values: []float64{0.9, 0.1}})
	assert.Equal(t, back, got)
}

func TestPickNextFallbackSkipsNil(t *testing.T) {
	from := wp("from", 0, 0, 1)
	back := wp("back", 0, -10, 1)
	link(from, nil, back)

	var c WaypointChooser
	got := c.PickNext(from, 0, mgl64.Vec3{0, 0, -1}, &seqRandom{values: []float64{0.9, 0.1}})
	assert.Equal(t, back, got)

	// nothing but a nil link
	lone := wp("lone", 0, 0, 1)
	link(lone, nil)
	assert.Nil(t, c.PickNext(lone, 0, geom.Zero, &seqRandom{}))
}

func TestForceRepathFrom(t *testing.T) {
	from := wp("from", 0, 0, 1)
	x := wp("x", 0, 5, 1)
	link(from, x)

	var c WaypointChooser
	c.PickNext(from, 0, geom.Zero, &seqRandom{})
	assert.Equal(t, x, c.LastChosen())

	c.ForceRepathFrom(from)
	assert.Nil(t, c.LastChosen())
	assert.True(t, c.Recent(from))

	c.ForceRepathFrom(nil)
	assert.Equal(t, 1, c.RecentLen())
}
