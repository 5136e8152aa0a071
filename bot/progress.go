package bot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
)

const speedSmoothing = 0.25

// PathProgress detects an agent that stopped closing in on its target
type PathProgress struct {
	params *Params

	lastPosition mgl64.Vec3
	lastDistance float64
	stuckTimer   float64
	speed        float64
}

// NewPathProgress tracking an agent starting at position
func NewPathProgress(p *Params, position mgl64.Vec3) PathProgress {
	return PathProgress{
		params:       p,
		lastPosition: position,
		lastDistance: math.Inf(1),
	}
}

// Update samples the distance from position to target. It returns true
// once each time the agent has made no progress for longer than
// RepathIfStuckTime; waiting at a gate never counts.
func (pp *PathProgress) Update(position, target mgl64.Vec3, waiting bool, dt float64) bool {
	distance := geom.Distance(position, target)
	defer pp.smoothSpeed(position, dt)

	if waiting {
		pp.stuckTimer = 0
		pp.lastDistance = distance
		return false
	}

	if distance > pp.lastDistance-pp.params.StuckDistanceEps {
		pp.stuckTimer += dt
	} else {
		pp.stuckTimer = 0
	}
	pp.lastDistance = distance

	if pp.stuckTimer > pp.params.RepathIfStuckTime {
		pp.stuckTimer = 0
		return true
	}
	return false
}

// Reset forgets the stuck timer and the last distance
func (pp *PathProgress) Reset() {
	pp.stuckTimer = 0
	pp.lastDistance = math.Inf(1)
}

// StuckTimer seconds without progress so far
func (pp *PathProgress) StuckTimer() float64 {
	return pp.stuckTimer
}

// Speed smoothed estimate in units per second
func (pp *PathProgress) Speed() float64 {
	return pp.speed
}

func (pp *PathProgress) smoothSpeed(position mgl64.Vec3, dt float64) {
	inst := geom.Distance(position, pp.lastPosition) / math.Max(dt, 1e-6)
	pp.speed = pp.speed + (inst-pp.speed)*speedSmoothing
	pp.lastPosition = position
}
