package bot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/track"
)

// JumpPhase of a JumpAssist
type JumpPhase int

// Jump phases
const (
	JumpIdle JumpPhase = iota
	JumpAssistActive
	JumpHoldActive
)

func (p JumpPhase) String() string {
	switch p {
	case JumpAssistActive:
		return "assist"
	case JumpHoldActive:
		return "hold"
	}
	return "idle"
}

const (
	neverJumped  = -999.0
	assistWeight = 0.7
)

// JumpAssist rate limits jumps, keeps pushing along the jump direction for
// a moment after takeoff and, when the next waypoint is gated, holds the
// approach to it.
type JumpAssist struct {
	assistDuration float64
	holdDuration   float64
	cooldown       float64

	assistDir   mgl64.Vec3
	assistTimer float64
	holdUntil   float64
	holdActive  bool
	lastJump    float64
}

// NewJumpAssist idle assist that has never jumped
func NewJumpAssist(assistDuration, holdDuration, cooldown float64) JumpAssist {
	return JumpAssist{
		assistDuration: assistDuration,
		holdDuration:   holdDuration,
		cooldown:       cooldown,
		holdUntil:      neverJumped,
		lastJump:       neverJumped,
	}
}

// Phase the assist is in
func (j *JumpAssist) Phase() JumpPhase {
	if j.holdActive {
		return JumpHoldActive
	}
	if j.assistTimer > 0 {
		return JumpAssistActive
	}
	return JumpIdle
}

// LastJump time of the last jump that fired
func (j *JumpAssist) LastJump() float64 {
	return j.lastJump
}

// TriggerJump arms assist along forward and, with a gated next waypoint,
// the hold. It returns whether the jump itself fires, which the cooldown
// decides.
func (j *JumpAssist) TriggerJump(now float64, forward mgl64.Vec3, nextGate track.Gate) bool {
	fired := false
	if now-j.lastJump >= j.cooldown {
		fired = true
		j.lastJump = now
	}

	j.assistDir = geom.Normalize(forward)
	j.assistTimer = j.assistDuration

	if nextGate != nil {
		j.holdActive = true
		j.holdUntil = now + j.holdDuration
	} else {
		j.holdActive = false
	}
	return fired
}

// UpdateHold steers a held agent toward its gated target, turning steer by
// the slerp fraction turn. It returns the input to use and true while the
// hold lasts; the hold ends once the agent is inside the stop radius and the
// minimum hold time has passed.
func (j *JumpAssist) UpdateHold(gate track.Gate, distance, stop float64, toTarget mgl64.Vec3, steer *mgl64.Vec3, baseSpeed, now, turn float64) (mgl64.Vec2, bool) {
	if !j.holdActive {
		return mgl64.Vec2{}, false
	}
	if gate == nil {
		j.holdActive = false
		return mgl64.Vec2{}, false
	}

	stopped := distance <= math.Max(stop, 0.001)
	timeOK := now >= j.holdUntil

	desired := geom.NormalizeOr(toTarget, *steer)
	move := desired.Mul(baseSpeed)
	if band := approachBand(stop); !stopped && distance <= band {
		move = move.Mul(geom.Clamp01(geom.InverseLerp(stop, band, distance)))
	}

	if !stopped || !timeOK {
		if geom.LenSqr(move) > geom.DirEpsilon {
			*steer = geom.Slerp(*steer, geom.Normalize(move), turn)
		}
		return geom.XZ(*steer), true
	}

	j.holdActive = false
	return mgl64.Vec2{}, false
}

// ApplyAssist pulls move toward the jump direction while the assist lasts
func (j *JumpAssist) ApplyAssist(move mgl64.Vec3, dt float64) mgl64.Vec3 {
	if j.assistTimer <= 0 {
		return move
	}
	assist := geom.Normalize(geom.Flat(j.assistDir))
	j.assistTimer -= dt
	return geom.LerpVec(move, assist, assistWeight)
}

// Reset drops assist and hold. The cooldown stamp survives.
func (j *JumpAssist) Reset() {
	j.assistTimer = 0
	j.holdActive = false
	j.holdUntil = neverJumped
}
