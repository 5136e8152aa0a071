package bot

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
)

// probeLift raises ray origins off the ground
const probeLift = 0.2

// AvoidanceField turns nearby agents, blocked rays and missing ground into a
// corrective steering vector
type AvoidanceField struct {
	params *Params
	space  SpatialQuery
	buf    []Collider
}

// NewAvoidanceField space may be nil, then Compute never corrects
func NewAvoidanceField(p *Params, space SpatialQuery) *AvoidanceField {
	return &AvoidanceField{
		params: p,
		space:  space,
		buf:    make([]Collider, 16),
	}
}

// Compute the correction for an agent at position heading forward. The zero
// vector means no correction.
func (a *AvoidanceField) Compute(position, forward mgl64.Vec3, selfID string) mgl64.Vec3 {
	if a == nil || a.space == nil {
		return geom.Zero
	}
	p := a.params
	result := geom.Zero

	count := a.space.OverlapSphere(position, p.SeparationRadius, p.AgentsMask, a.buf)
	if count > len(a.buf) {
		count = len(a.buf)
	}
	for i := 0; i < count; i++ {
		if a.buf[i].ID == selfID {
			continue
		}
		toMe := position.Sub(a.buf[i].Position)
		d := toMe.Len() + 1e-3
		result = result.Add(toMe.Mul(1 / (d * d)))
	}
	if count > 0 {
		result = result.Mul(p.SeparationStrength)
	}

	if geom.LenSqr(forward) > geom.Epsilon &&
		a.space.Raycast(position.Add(geom.Up.Mul(probeLift)), forward, p.AvoidRayLength, p.AgentsMask) {
		side := geom.Side(forward)
		left := a.space.Raycast(position, side.Mul(-1), p.AvoidRayLength*0.5, p.AgentsMask)
		right := a.space.Raycast(position, side, p.AvoidRayLength*0.5, p.AgentsMask)
		steer := side
		if right && !left {
			steer = side.Mul(-1)
		}
		result = result.Add(steer.Mul(p.AvoidStrength))
	}

	return result.Add(a.edgeGuard(position, forward))
}

func (a *AvoidanceField) edgeGuard(position, forward mgl64.Vec3) mgl64.Vec3 {
	p := a.params
	fwd := geom.Normalize(geom.Flat(forward))
	if geom.LenSqr(fwd) < geom.Epsilon {
		fwd = geom.Forward
	}
	side := geom.Side(fwd)
	if geom.LenSqr(side) < geom.Epsilon {
		side = geom.Right
	}

	mask := p.groundMask()
	lift := geom.Up.Mul(probeLift)
	ahead := position.Add(fwd.Mul(p.EdgeProbeAhead))
	sideOffset := side.Mul(p.EdgeProbeSide)

	leftGround := a.space.Raycast(ahead.Sub(sideOffset).Add(lift), geom.Down, p.EdgeProbeDown, mask)
	rightGround := a.space.Raycast(ahead.Add(sideOffset).Add(lift), geom.Down, p.EdgeProbeDown, mask)
	aheadGround := a.space.Raycast(ahead.Add(lift), geom.Down, p.EdgeProbeDown, mask)

	result := geom.Zero
	var lateral mgl64.Vec3
	if leftGround != rightGround {
		if leftGround {
			lateral = side.Mul(-1)
		} else {
			lateral = side
		}
		result = result.Add(lateral.Mul(p.EdgeAvoidStrength))
	}
	if !aheadGround {
		result = result.Add(lateral.Sub(fwd).Mul(p.EdgeAvoidStrength * 0.6))
	}
	return result
}
