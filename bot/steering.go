package bot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/track"
)

// preAimSwitch caps the distance at which the look point moves to the next
// waypoint
const preAimSwitch = 0.6

// LookAhead places the point the agent steers toward
type LookAhead struct {
	params *Params
}

// Compute returns the heading and the look point for an agent at position.
// toTarget is the vector to current, steer the current steering used when
// toTarget is degenerate.
func (l LookAhead) Compute(position mgl64.Vec3, current, projectedNext *track.Waypoint, distance float64, toTarget, steer mgl64.Vec3) (forward, look mgl64.Vec3) {
	forward = geom.NormalizeOr(toTarget, steer)
	look = current.Position

	if distance <= math.Min(current.ActivationRadius, preAimSwitch) && current.HasNext() {
		next := projectedNext
		if next == nil {
			next = current.FirstNext()
		}
		if next != nil {
			forward = geom.Flat(next.Position.Sub(position))
			if geom.LenSqr(forward) > geom.DirEpsilon {
				forward = geom.Normalize(forward)
			}
			look = position.Add(forward.Mul(math.Max(0.5, l.params.LookAhead*0.7)))
		}
	}

	if distance > 0.001 {
		look = position.Add(forward.Mul(math.Min(l.params.LookAhead, distance)))
	}
	return
}

// SteeringBlend mixes look point, lane offset and avoidance into a smoothed
// steering direction
type SteeringBlend struct {
	params *Params
}

// ComputeLaneBlend fades the lane offset out close to the waypoint
func (s SteeringBlend) ComputeLaneBlend(wp *track.Waypoint, distance float64) float64 {
	fadeStart := wp.ActivationRadius * 1.3
	fadeEnd := wp.ActivationRadius * 0.6
	return geom.Clamp01(geom.InverseLerp(fadeEnd, fadeStart, distance))
}

// ComposeDesired is the unsmoothed direction the agent wants to go
func (s SteeringBlend) ComposeDesired(body Body, position, forward, look mgl64.Vec3, laneOffset, laneBlend float64, avoid *AvoidanceField) mgl64.Vec3 {
	side := geom.Side(forward)
	if geom.LenSqr(side) < geom.DirEpsilon {
		side = geom.Side(body.Forward())
	}

	bias := side.Mul(laneOffset * laneBlend)
	desired := look.Add(bias).Sub(position)
	return desired.Add(avoid.Compute(position, forward, body.ID()))
}

// UpdateSteering turns cur toward desired at TurnResponsiveness per second
func (s SteeringBlend) UpdateSteering(cur, desired mgl64.Vec3, dt float64) mgl64.Vec3 {
	if geom.LenSqr(desired) <= geom.DirEpsilon {
		return cur
	}
	return geom.Slerp(cur, geom.Normalize(desired), s.params.TurnResponsiveness*dt)
}

// SpeedTuning scales speed down for sharp turns and gate approaches
type SpeedTuning struct {
	params *Params
}

// sharpTurnAngle is where the turn slowdown reaches its minimum
const sharpTurnAngle = 120.0

// TurnMultiplier from the angle between the agent's leg to current and the
// leg from current to the next waypoint
func (s SpeedTuning) TurnMultiplier(current, projectedNext *track.Waypoint, position mgl64.Vec3) float64 {
	if !current.HasNext() {
		return 1
	}
	next := projectedNext
	if next == nil {
		next = current.FirstNext()
	}

	seg1 := geom.Normalize(current.Position.Sub(position))
	seg2 := geom.Normalize(next.Position.Sub(current.Position))
	angle := geom.AngleDeg(seg1, seg2)
	if angle < s.params.TurnSlowdownAngle {
		return 1
	}

	k := geom.InverseLerp(s.params.TurnSlowdownAngle, sharpTurnAngle, angle)
	return geom.Lerp(1, s.params.MinSpeedMulOnSharpTurn, k)
}

// approachBand is the distance inside which a gated approach slows down
func approachBand(stop float64) float64 {
	return math.Max(stop+0.5, stop*1.8)
}

// ApplyApproachSlowdown scales move down to zero at the stop radius
func (s SpeedTuning) ApplyApproachSlowdown(move mgl64.Vec3, distance, stop float64) mgl64.Vec3 {
	band := approachBand(stop)
	if distance <= band {
		move = move.Mul(geom.Clamp01(geom.InverseLerp(stop, band, distance)))
	}
	return move
}
