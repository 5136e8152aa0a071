package bot

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/track"
)

type seqRandom struct {
	values []float64
	i      int
}

func (r *seqRandom) Value() float64 {
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func (r *seqRandom) Range(min, max float64) float64 {
	return min + (max-min)*r.Value()
}

type testClock struct {
	now, dt float64
}

func (c *testClock) Now() float64   { return c.now }
func (c *testClock) Delta() float64 { return c.dt }
func (c *testClock) step()          { c.now += c.dt }

type testBody struct {
	id       string
	pos, fwd mgl64.Vec3
	explode  bool
}

func (b *testBody) ID() string { return b.id }
func (b *testBody) Position() mgl64.Vec3 {
	if b.explode {
		panic("body lost")
	}
	return b.pos
}
func (b *testBody) Forward() mgl64.Vec3 { return b.fwd }

type testGate struct {
	open        bool
	stop        float64
	jump        bool
	ignoreGrace bool
	waiting     []bool
}

func (g *testGate) StopRadius() float64                            { return g.stop }
func (g *testGate) RequireJumpOnPass() bool                        { return g.jump }
func (g *testGate) IsSatisfied(current, next *track.Waypoint) bool { return g.open }
func (g *testGate) SetWaiting(waiting bool)                        { g.waiting = append(g.waiting, waiting) }
func (g *testGate) lastWaiting() bool                              { return g.waiting[len(g.waiting)-1] }

type strictGate struct {
	testGate
}

func (g *strictGate) IgnoreSpawnGrace() bool { return g.ignoreGrace }

func wp(id string, x, z, radius float64) *track.Waypoint {
	return &track.Waypoint{ID: id, Position: mgl64.Vec3{x, 0, z}, Forward: mgl64.Vec3{0, 0, 1}, ActivationRadius: radius}
}

func link(from *track.Waypoint, to ...*track.Waypoint) {
	from.Next = append(from.Next, to...)
}
