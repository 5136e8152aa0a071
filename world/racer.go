package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/tutumagi/racenav/aoi"
	"github.com/tutumagi/racenav/bot"
	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/engine/utils"
)

// Racer is a sphere moved by MoveIntents. It implements bot.Body.
type Racer struct {
	id   string
	Name string

	pos         mgl64.Vec3
	vel         mgl64.Vec3
	fwd         mgl64.Vec3
	grounded    bool
	lockedUntil float64
	checkpoint  mgl64.Vec3
	respawns    int

	item *aoi.Item
}

func (r *Racer) String() string {
	if r == nil {
		return "nil"
	}
	return fmt.Sprintf("<Racer>(%s %s)", r.Name, r.id)
}

// ID of the racer
func (r *Racer) ID() string { return r.id }

// Position of the racer's center
func (r *Racer) Position() mgl64.Vec3 { return r.pos }

// Forward facing on the ground plane
func (r *Racer) Forward() mgl64.Vec3 { return r.fwd }

// Velocity in units per second
func (r *Racer) Velocity() mgl64.Vec3 { return r.vel }

// Grounded after the last move
func (r *Racer) Grounded() bool { return r.grounded }

// Respawns so far
func (r *Racer) Respawns() int { return r.respawns }

// Checkpoint is where the racer respawns after a fall
func (r *Racer) Checkpoint() mgl64.Vec3 { return r.checkpoint }

// SetCheckpoint for the next respawn
func (r *Racer) SetCheckpoint(pos mgl64.Vec3) { r.checkpoint = pos }

// Controllable is false while a push has taken the controls away
func (r *Racer) Controllable(now float64) bool {
	return now >= r.lockedUntil
}

// Move integrates one step of r from intent. It returns true when the
// racer fell below KillBelowY and was put back on its checkpoint.
func (w *World) Move(r *Racer, intent *bot.MoveIntent, now, dt float64) bool {
	s := w.settings

	if r.Controllable(now) {
		want := intent.World().Mul(s.MaxSpeed)
		flat := approach(geom.Flat(r.vel), want, s.Acceleration*dt)
		r.vel[0], r.vel[2] = flat[0], flat[2]
	} else {
		damp := math.Max(0, 1-s.PushDamping*dt)
		r.vel[0] *= damp
		r.vel[2] *= damp
	}

	if intent.ConsumeJumpRequest() && r.grounded {
		r.vel[1] = s.JumpSpeed
		r.grounded = false
	}
	r.vel[1] -= s.Gravity * dt

	next := r.pos.Add(r.vel.Mul(dt))
	r.grounded = false
	if ground, ok := w.GroundHeight(mgl64.Vec3{next[0], math.Max(r.pos[1], next[1]), next[2]}); ok && next[1] <= ground && r.vel[1] <= 0 {
		next[1] = ground
		r.vel[1] = 0
		r.grounded = true
	}

	if flat := geom.Flat(r.vel); !utils.FloatEqualLow(flat.Len(), 0) {
		r.fwd = geom.Normalize(flat)
	}

	if next[1] < s.KillBelowY {
		w.respawn(r)
		return true
	}
	w.place(r, next)
	return false
}

func (w *World) respawn(r *Racer) {
	r.respawns++
	r.vel = mgl64.Vec3{}
	r.grounded = false
	r.lockedUntil = 0
	w.place(r, r.checkpoint)
	w.log.Info("racer fell, respawned", zap.String("racer", r.String()), zap.Int("respawns", r.respawns))
}

// Teleport r to pos, keeping its velocity
func (w *World) Teleport(r *Racer, pos mgl64.Vec3) {
	w.place(r, pos)
}

func (w *World) place(r *Racer, pos mgl64.Vec3) {
	r.pos = pos
	w.aoiMgr.Moved(r.item, pos)
}

// ApplyPush shoves the push target and recoils the pusher. Control of the
// target is suspended for the push duration.
func (w *World) ApplyPush(from *Racer, p *bot.Push, now float64) bool {
	target := w.racers[p.TargetID]
	if target == nil || target == from {
		return false
	}
	target.vel = target.vel.Add(p.Impulse)
	target.lockedUntil = math.Max(target.lockedUntil, now+p.Duration)
	from.vel = from.vel.Add(p.Recoil)
	return true
}

// ResolveContacts separates overlapping racers on the ground plane. Only
// aoi neighbors are checked.
func (w *World) ResolveContacts() {
	minDist := 2 * w.settings.RacerRadius
	for _, r := range w.order {
		for _, it := range r.item.Neighbors() {
			other, ok := it.Data.(*Racer)
			if !ok || other.id < r.id {
				continue
			}
			d := geom.Flat(other.pos.Sub(r.pos))
			dist := d.Len()
			if dist >= minDist {
				continue
			}
			dir := geom.NormalizeOr(d, geom.Side(r.fwd))
			shift := dir.Mul((minDist - dist) / 2)
			w.place(r, r.pos.Sub(shift))
			w.place(other, other.pos.Add(shift))
		}
	}
}

// approach moves cur toward target by at most step
func approach(cur, target mgl64.Vec3, step float64) mgl64.Vec3 {
	d := target.Sub(cur)
	l := d.Len()
	if l <= step || l < geom.Epsilon {
		return target
	}
	return cur.Add(d.Mul(step / l))
}
