package bot

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/fsm"
	"github.com/tutumagi/racenav/track"
)

// MoveIntent is what the locomotion layer consumes each tick: a ground
// plane direction of magnitude at most 1 and a one-shot jump request.
type MoveIntent struct {
	Direction mgl64.Vec2
	jump      bool
}

// NewMoveIntent clamps raw (x, z) to unit length
func NewMoveIntent(raw mgl64.Vec2) MoveIntent {
	if l := raw.Len(); l > 1 {
		raw = raw.Mul(1 / l)
	}
	return MoveIntent{Direction: raw}
}

// World direction on the ground plane
func (m MoveIntent) World() mgl64.Vec3 {
	return mgl64.Vec3{m.Direction[0], 0, m.Direction[1]}
}

// RequestJump arms the jump flag
func (m *MoveIntent) RequestJump() {
	m.jump = true
}

// ConsumeJumpRequest returns the jump flag and clears it
func (m *MoveIntent) ConsumeJumpRequest() bool {
	was := m.jump
	m.jump = false
	return was
}

// EventKind of something that happened during a tick
type EventKind int

// Events a tick may produce
const (
	EventJumped EventKind = iota + 1
	EventPushed
	EventStuck
	EventWaypointReached
	EventGateWait
	EventGatePass
)

var eventNames = map[EventKind]string{
	EventJumped:          "jumped",
	EventPushed:          "pushed",
	EventStuck:           "stuck",
	EventWaypointReached: "waypoint_reached",
	EventGateWait:        "gate_wait",
	EventGatePass:        "gate_pass",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event produced by a tick. Waypoint is set for waypoint and gate events,
// Push for EventPushed.
type Event struct {
	Kind     EventKind
	Waypoint *track.Waypoint
	Push     *Push
}

// TickResult is everything one navigator tick produced
type TickResult struct {
	Intent MoveIntent
	Events []Event
	Mode   fsm.StateType
}

// Has reports whether an event of kind was produced
func (r *TickResult) Has(kind EventKind) bool {
	for i := range r.Events {
		if r.Events[i].Kind == kind {
			return true
		}
	}
	return false
}
