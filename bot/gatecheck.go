package bot

import (
	"math"

	"github.com/tutumagi/racenav/track"
)

// minStopRadius keeps a gated waypoint from ever having a zero stop radius
const minStopRadius = 0.05

// StopRadius of gate, 0 without a gate
func StopRadius(gate track.Gate) float64 {
	if gate == nil {
		return 0
	}
	return math.Max(minStopRadius, gate.StopRadius())
}

// CollectRadius is the distance at which wp counts as reached
func CollectRadius(wp *track.Waypoint, gate track.Gate) float64 {
	if gate == nil {
		return wp.ActivationRadius
	}
	return math.Max(wp.ActivationRadius, StopRadius(gate))
}

// GateCheck asks gates for passage on behalf of one agent
type GateCheck struct {
	lastReady map[track.Gate]bool
}

// ReadyToPass reports whether the agent may pass gate now. The gate is told
// on every call whether the agent is waiting; gates dedupe transitions.
func (c *GateCheck) ReadyToPass(gate track.Gate, current, projectedNext *track.Waypoint, spawnGrace bool) bool {
	if gate == nil {
		return true
	}

	ready := gate.IsSatisfied(current, projectedNext)
	if !ready && spawnGrace {
		if o, ok := gate.(track.SpawnGraceOverrider); !ok || !o.IgnoreSpawnGrace() {
			ready = true
		}
	}

	if c.lastReady == nil {
		c.lastReady = make(map[track.Gate]bool, 8)
	}
	c.lastReady[gate] = ready
	gate.SetWaiting(!ready)
	return ready
}

// Release tells gate the agent stopped waiting there without passing. Gates
// the agent never found closed are left alone.
func (c *GateCheck) Release(gate track.Gate) {
	if gate == nil {
		return
	}
	if ready, ok := c.lastReady[gate]; ok && !ready {
		gate.SetWaiting(false)
	}
	delete(c.lastReady, gate)
}

// LastReady is the readiness the agent last saw for gate
func (c *GateCheck) LastReady(gate track.Gate) (ready bool, known bool) {
	ready, known = c.lastReady[gate]
	return
}
