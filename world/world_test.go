package world

import (
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutumagi/racenav/bot"
)

const dt = 0.05

func flatWorld() *World {
	w := New(DefaultSettings())
	w.AddPad("floor", mgl64.Vec3{0, 0, 0}, 20, 20)
	return w
}

func settle(w *World, r *Racer, intent bot.MoveIntent, steps int) (respawned bool) {
	for i := 0; i < steps; i++ {
		in := intent
		if w.Move(r, &in, float64(i)*dt, dt) {
			respawned = true
		}
	}
	return
}

func TestRacerRunsOnPad(t *testing.T) {
	w := flatWorld()
	r := w.Spawn("a", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1})
	require.NotEmpty(t, r.ID())
	assert.Equal(t, r, w.Racer(r.ID()))

	settle(w, r, bot.NewMoveIntent(mgl64.Vec2{1, 0}), 40)
	assert.True(t, r.Grounded())
	assert.InDelta(t, 0, r.Position()[1], 1e-9)
	assert.InDelta(t, w.Settings().MaxSpeed, r.Velocity()[0], 1e-6)
	assert.InDelta(t, 1, r.Forward()[0], 1e-6)
}

func TestRacerJumps(t *testing.T) {
	w := flatWorld()
	r := w.Spawn("a", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	settle(w, r, bot.MoveIntent{}, 2)
	require.True(t, r.Grounded())

	jump := bot.NewMoveIntent(mgl64.Vec2{})
	jump.RequestJump()
	w.Move(r, &jump, 1, dt)
	assert.False(t, r.Grounded())
	assert.True(t, r.Position()[1] > 0)
	assert.False(t, jump.ConsumeJumpRequest())

	settle(w, r, bot.MoveIntent{}, 40)
	assert.True(t, r.Grounded())
}

func TestRacerFallsAndRespawns(t *testing.T) {
	w := New(DefaultSettings())
	w.AddPad("island", mgl64.Vec3{}, 1, 1)
	r := w.Spawn("a", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	r.SetCheckpoint(mgl64.Vec3{0, 0, 0.5})

	respawned := settle(w, r, bot.NewMoveIntent(mgl64.Vec2{0, 1}), 80)
	assert.True(t, respawned)
	assert.True(t, r.Respawns() >= 1)
}

func TestApplyPush(t *testing.T) {
	w := flatWorld()
	a := w.Spawn("a", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	b := w.Spawn("b", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1})

	ok := w.ApplyPush(a, &bot.Push{TargetID: b.ID(), Impulse: mgl64.Vec3{6, 0, 0}, Duration: 0.35, Recoil: mgl64.Vec3{-0.6, 0, 0}}, 1)
	require.True(t, ok)
	assert.False(t, b.Controllable(1.2))
	assert.True(t, b.Controllable(1.35))
	assert.InDelta(t, -0.6, a.Velocity()[0], 1e-9)

	// the intent is ignored while pushed, velocity only decays
	intent := bot.NewMoveIntent(mgl64.Vec2{-1, 0})
	w.Move(b, &intent, 1.1, dt)
	assert.True(t, b.Velocity()[0] > 5)

	assert.False(t, w.ApplyPush(a, &bot.Push{TargetID: "nobody"}, 1))
	assert.False(t, w.ApplyPush(a, &bot.Push{TargetID: a.ID()}, 1))
}

func TestOverlapSphere(t *testing.T) {
	w := flatWorld()
	a := w.Spawn("a", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	b := w.Spawn("b", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1})
	w.Spawn("c", mgl64.Vec3{5, 0, 0}, mgl64.Vec3{0, 0, 1})
	w.AddBox(NewBox("crate", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 1, 2}, LayerObstacles))

	buf := make([]bot.Collider, 8)
	n := w.OverlapSphere(mgl64.Vec3{}, 1.2, LayerAgents, buf)
	ids := []string{}
	for _, c := range buf[:n] {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	want := []string{a.ID(), b.ID()}
	sort.Strings(want)
	assert.Equal(t, want, ids)

	n = w.OverlapSphere(mgl64.Vec3{}, 1.2, LayerAgents|LayerObstacles, buf)
	assert.Equal(t, 3, n)

	n = w.OverlapSphere(mgl64.Vec3{}, 1.2, LayerAgents|LayerObstacles, buf[:1])
	assert.Equal(t, 1, n)
}

func TestRaycast(t *testing.T) {
	w := flatWorld()
	a := w.Spawn("a", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	b := w.Spawn("b", mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 0, 1})
	w.AddBox(NewBox("wall", mgl64.Vec3{-1, 0, 4}, mgl64.Vec3{1, 2, 4.5}, LayerObstacles))

	origin := a.Position().Add(mgl64.Vec3{0, 0.2, 0})
	fwd := mgl64.Vec3{0, 0, 1}
	assert.True(t, w.Raycast(origin, fwd, 2, LayerAgents), "own sphere is skipped, b is hit")
	assert.False(t, w.Raycast(origin, fwd, 1, LayerAgents))
	assert.False(t, w.Raycast(origin, mgl64.Vec3{1, 0, 0}, 3, LayerAgents))
	assert.True(t, w.Raycast(origin, mgl64.Vec3{0, -1, 0}, 1, LayerGround))

	ids := w.RaycastAll(origin, fwd, 10, uint32(LayerAgents|LayerObstacles))
	assert.Equal(t, []string{b.ID(), "wall"}, ids)

	inside := mgl64.Vec3{0, 1, 4.2}
	assert.False(t, w.Raycast(inside, fwd, 1, LayerObstacles))
}

type slider struct {
	pos mgl64.Vec3
}

func (s *slider) Position() mgl64.Vec3 { return s.pos }

func TestAnchoredBox(t *testing.T) {
	w := flatWorld()
	anchor := &slider{pos: mgl64.Vec3{0, 1, 5}}
	box := w.AddBox(NewBox("rot/arm", mgl64.Vec3{-0.5, 0.5, 4.5}, mgl64.Vec3{0.5, 1.5, 5.5}, LayerObstacles))
	box.Follow(anchor, mgl64.Vec3{})

	origin := mgl64.Vec3{0, 1, 0}
	assert.Equal(t, []string{"rot/arm"}, w.RaycastAll(origin, mgl64.Vec3{0, 0, 1}, 10, uint32(LayerObstacles)))

	anchor.pos = mgl64.Vec3{3, 1, 5}
	w.Sync()
	assert.Empty(t, w.RaycastAll(origin, mgl64.Vec3{0, 0, 1}, 10, uint32(LayerObstacles)))
	assert.InDelta(t, 2.5, box.Min[0], 1e-9)
}

func TestResolveContacts(t *testing.T) {
	w := flatWorld()
	a := w.Spawn("a", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	b := w.Spawn("b", mgl64.Vec3{0.5, 0, 0}, mgl64.Vec3{0, 0, 1})

	w.ResolveContacts()
	gap := b.Position().Sub(a.Position()).Len()
	assert.InDelta(t, 2*w.Settings().RacerRadius, gap, 1e-9)

	w.Remove(a)
	assert.Len(t, w.Racers(), 1)
	assert.Nil(t, w.Racer(a.ID()))
}
