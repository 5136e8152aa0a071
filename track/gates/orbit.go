package gates

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
)

// Orbit spins an obstacle around a center. With UseTrigger set it only
// spins up while active, otherwise it always runs at Speed.
type Orbit struct {
	mu sync.Mutex

	center  mgl64.Vec3
	axis    mgl64.Vec3
	arm     mgl64.Vec3
	forward mgl64.Vec3

	speed        float64
	deceleration float64
	useTrigger   bool

	active       bool
	angle        float64
	currentSpeed float64
}

// NewOrbit spins a body sitting at center+arm facing forward, speed and
// deceleration in degrees per second
func NewOrbit(center, axis, arm, forward mgl64.Vec3, speed, deceleration float64, useTrigger bool) *Orbit {
	return &Orbit{
		center:       center,
		axis:         geom.NormalizeOr(axis, geom.Up),
		arm:          arm,
		forward:      geom.NormalizeOr(forward, geom.Forward),
		speed:        speed,
		deceleration: deceleration,
		useTrigger:   useTrigger,
	}
}

// Update advances the rotation by dt seconds
func (o *Orbit) Update(dt float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.useTrigger {
		target := 0.0
		if o.active {
			target = o.speed
		}
		o.currentSpeed = moveTowards(o.currentSpeed, target, o.deceleration*dt)
	} else {
		o.currentSpeed = o.speed
	}

	if math.Abs(o.currentSpeed) > 0.01 {
		o.angle = math.Mod(o.angle+o.currentSpeed*dt, 360)
	}
}

// SetActive implements Activator
func (o *Orbit) SetActive(active bool) {
	o.mu.Lock()
	o.active = active
	o.mu.Unlock()
}

// IsActive implements Activator
func (o *Orbit) IsActive() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Angle current rotation in degrees
func (o *Orbit) Angle() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.angle
}

func (o *Orbit) rotate(v mgl64.Vec3, offsetDeg float64) mgl64.Vec3 {
	o.mu.Lock()
	angle := o.angle
	o.mu.Unlock()
	return mgl64.QuatRotate(mgl64.DegToRad(angle+offsetDeg), o.axis).Rotate(v)
}

// Position implements Pose
func (o *Orbit) Position() mgl64.Vec3 {
	return o.center.Add(o.rotate(o.arm, 0))
}

// Forward implements Pose
func (o *Orbit) Forward() mgl64.Vec3 {
	return o.rotate(o.forward, 0)
}

// Face is a pose attached to the rotator, turned offsetDeg from its forward
func (o *Orbit) Face(offsetDeg float64) Pose {
	return &orbitFace{orbit: o, offset: offsetDeg}
}

type orbitFace struct {
	orbit  *Orbit
	offset float64
}

func (f *orbitFace) Position() mgl64.Vec3 { return f.orbit.Position() }
func (f *orbitFace) Forward() mgl64.Vec3  { return f.orbit.rotate(f.orbit.forward, f.offset) }

func moveTowards(cur, target, maxDelta float64) float64 {
	if math.Abs(target-cur) <= maxDelta {
		return target
	}
	if target > cur {
		return cur + maxDelta
	}
	return cur - maxDelta
}

// Shuttle is a platform swinging between From and To once per Period
type Shuttle struct {
	From   mgl64.Vec3
	To     mgl64.Vec3
	Period float64
	Clock  Clock
}

// Position implements Pose
func (s *Shuttle) Position() mgl64.Vec3 {
	if s.Period <= 0 || s.Clock == nil {
		return s.From
	}
	phase := 2 * math.Pi * s.Clock.Now() / s.Period
	t := (1 - math.Cos(phase)) * 0.5
	return geom.LerpVec(s.From, s.To, t)
}

// Forward implements Pose
func (s *Shuttle) Forward() mgl64.Vec3 {
	return geom.NormalizeOr(geom.Flat(s.To.Sub(s.From)), geom.Forward)
}
