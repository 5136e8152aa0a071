// Package track holds the static racing graph: waypoints, their successor
// lists and the gates attached to them. Everything here is built once per
// level and only read while bots race.
package track

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Gate is an obstacle-synchronized passage condition attached to a waypoint.
// One gate is shared by every agent approaching its waypoint.
type Gate interface {
	// StopRadius is how close to the waypoint an agent may come while the
	// gate is closed
	StopRadius() float64
	// RequireJumpOnPass asks agents to jump when they pass the gate
	RequireJumpOnPass() bool
	// IsSatisfied reports whether passage from current toward projectedNext
	// is allowed right now. projectedNext may be nil.
	IsSatisfied(current, projectedNext *Waypoint) bool
	// SetWaiting tells the gate an agent is (or stopped) queuing at it
	SetWaiting(waiting bool)
}

// SpawnGraceOverrider is implemented by gates that refuse the spawn grace
// normally granted to an agent's start waypoint.
type SpawnGraceOverrider interface {
	IgnoreSpawnGrace() bool
}

// Waypoint is an author-placed node of the racing graph
type Waypoint struct {
	ID               string
	Position         mgl64.Vec3
	Forward          mgl64.Vec3
	ActivationRadius float64
	Next             []*Waypoint
	RequiresJump     bool
	Gate             Gate
}

// HasNext reports whether the waypoint has at least one successor
func (w *Waypoint) HasNext() bool {
	return w != nil && len(w.Next) > 0
}

// FirstNext is the default successor, nil when there is none
func (w *Waypoint) FirstNext() *Waypoint {
	if !w.HasNext() {
		return nil
	}
	return w.Next[0]
}

// RequiresJumpOnLeave is true when either the waypoint or its gate asks
// for a jump
func (w *Waypoint) RequiresJumpOnLeave() bool {
	if w == nil {
		return false
	}
	return w.RequiresJump || (w.Gate != nil && w.Gate.RequireJumpOnPass())
}

func (w *Waypoint) String() string {
	if w == nil {
		return "<Waypoint nil>"
	}
	return fmt.Sprintf("<Waypoint %s (%.2f, %.2f, %.2f) next:%d>", w.ID, w.Position[0], w.Position[1], w.Position[2], len(w.Next))
}
