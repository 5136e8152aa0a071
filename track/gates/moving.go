package gates

import (
	"math"
	"sync"

	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/track"
)

// MovingAlignConfig configures a MovingAlignGate
type MovingAlignConfig struct {
	// HopFrom and HopTo are the two edges a jump connects, usually one of
	// them sits on a moving platform
	HopFrom Pose
	HopTo   Pose

	StopRadius        float64
	RequireJumpOnPass bool
	MaxHorizontalGap  float64
	MaxVerticalDelta  float64
	AlignGrace        float64
}

// DefaultMovingAlignConfig default settings without geometry
func DefaultMovingAlignConfig() MovingAlignConfig {
	return MovingAlignConfig{
		StopRadius:       0.7,
		MaxHorizontalGap: 0.6,
		MaxVerticalDelta: 0.25,
		AlignGrace:       0.12,
	}
}

// MovingAlignGate opens while a moving platform lines up with a fixed edge
type MovingAlignGate struct {
	mu     sync.Mutex
	cfg    MovingAlignConfig
	clock  Clock
	lastOK float64
}

var _ track.Gate = (*MovingAlignGate)(nil)

// NewMovingAlignGate new gate reading time from clock
func NewMovingAlignGate(clock Clock, cfg MovingAlignConfig) *MovingAlignGate {
	return &MovingAlignGate{
		cfg:    cfg,
		clock:  clock,
		lastOK: noOK,
	}
}

// StopRadius implements track.Gate
func (g *MovingAlignGate) StopRadius() float64 { return g.cfg.StopRadius }

// RequireJumpOnPass implements track.Gate
func (g *MovingAlignGate) RequireJumpOnPass() bool { return g.cfg.RequireJumpOnPass }

// SetWaiting implements track.Gate; the platform runs on its own
func (g *MovingAlignGate) SetWaiting(waiting bool) {}

// IsSatisfied implements track.Gate
func (g *MovingAlignGate) IsSatisfied(current, projectedNext *track.Waypoint) bool {
	if g.cfg.HopFrom == nil || g.cfg.HopTo == nil {
		return true
	}

	a, b := g.cfg.HopFrom.Position(), g.cfg.HopTo.Position()
	horizontal := geom.XZ(a).Sub(geom.XZ(b)).Len()
	vertical := math.Abs(a[1] - b[1])
	coreOK := horizontal <= g.cfg.MaxHorizontalGap && vertical <= g.cfg.MaxVerticalDelta

	now := g.clock.Now()

	g.mu.Lock()
	defer g.mu.Unlock()
	if coreOK {
		g.lastOK = now
	}
	return coreOK || graceOK(now, g.lastOK, g.cfg.AlignGrace)
}
