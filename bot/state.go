package bot

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/track"
)

// AgentState is all mutable navigation state of one agent. Only the
// owning Navigator's tick writes it.
type AgentState struct {
	Current *track.Waypoint
	First   *track.Waypoint

	Waiting   bool
	WaitingAt *track.Waypoint
	WaitedFor float64

	// SpawnGrace lets the agent through the gate of its start waypoint
	// until that waypoint is collected
	SpawnGrace bool

	Steer        mgl64.Vec3
	BaseSpeedMul float64

	Chooser  WaypointChooser
	Lane     LaneWander
	Jump     JumpAssist
	Progress PathProgress
	Gates    GateCheck
}

// projectedNext is where the agent expects to go after Current
func (s *AgentState) projectedNext() *track.Waypoint {
	if !s.Current.HasNext() {
		return nil
	}
	if last := s.Chooser.LastChosen(); last != nil {
		return last
	}
	return s.Current.FirstNext()
}
