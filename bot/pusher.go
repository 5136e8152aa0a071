package bot

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
)

// recoilShare of a push that comes back to the pusher
const recoilShare = 0.1

// Push is a shove one agent gives another
type Push struct {
	TargetID string
	// Impulse is the velocity change for the target
	Impulse mgl64.Vec3
	// Duration the target loses control for
	Duration float64
	// Recoil is the velocity change for the pusher
	Recoil mgl64.Vec3
}

// PushAI periodically tries to shove the nearest racer in reach
type PushAI struct {
	params PushParams
	next   float64
	buf    []Collider
}

// NewPushAI first attempt between 0.2s and 0.6s after now
func NewPushAI(p PushParams, now float64, rnd Random) *PushAI {
	return &PushAI{
		params: p,
		next:   now + rnd.Range(0.2, 0.6),
		buf:    make([]Collider, 8),
	}
}

// Tick returns a push when one is due, someone is in reach and the dice
// agree. Every due attempt restarts the cooldown.
func (a *PushAI) Tick(now float64, self Body, space SpatialQuery, mask LayerMask, rnd Random) (*Push, bool) {
	if space == nil || now < a.next {
		return nil, false
	}
	a.next = now + a.params.Cooldown

	pos := self.Position()
	count := space.OverlapSphere(pos, a.params.Radius, mask, a.buf)
	if count > len(a.buf) {
		count = len(a.buf)
	}

	var target *Collider
	best := a.params.Radius * a.params.Radius
	for i := 0; i < count; i++ {
		c := &a.buf[i]
		if c.ID == self.ID() {
			continue
		}
		d := geom.LenSqr(geom.Flat(c.Position.Sub(pos)))
		if d < geom.Epsilon || d > best {
			continue
		}
		best = d
		target = c
	}
	if target == nil {
		return nil, false
	}
	if rnd.Value() > a.params.Chance {
		return nil, false
	}

	dir := geom.Normalize(geom.Flat(target.Position.Sub(pos)))
	return &Push{
		TargetID: target.ID,
		Impulse:  dir.Mul(a.params.Force),
		Duration: a.params.Duration,
		Recoil:   dir.Mul(-a.params.Force * recoilShare),
	}, true
}
