// Package gates implements the track.Gate kinds used by racing levels and
// the small kinematic drivers that move their obstacles in a headless run.
package gates

import (
	"github.com/go-gl/mathgl/mgl64"
)

// noOK is the lastOK stamp of a gate that was never satisfied
const noOK = -999.0

// Clock gives the current simulation time in seconds
type Clock interface {
	Now() float64
}

// Pose is anything with a world position and a facing
type Pose interface {
	Position() mgl64.Vec3
	Forward() mgl64.Vec3
}

// StaticPose never moves
type StaticPose struct {
	Pos mgl64.Vec3
	Fwd mgl64.Vec3
}

// Position of the pose
func (p StaticPose) Position() mgl64.Vec3 { return p.Pos }

// Forward of the pose
func (p StaticPose) Forward() mgl64.Vec3 { return p.Fwd }

// LineOfSight returns the ids of every collider hit along a ray. A child
// collider's id is its parent's id followed by "/".
type LineOfSight interface {
	RaycastAll(origin, dir mgl64.Vec3, length float64, mask uint32) []string
}

// Activator is the obstacle a hub switches on and off
type Activator interface {
	SetActive(active bool)
	IsActive() bool
}

func graceOK(now, lastOK, grace float64) bool {
	return now-lastOK <= grace
}
