package gates

import (
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/track"
)

// RotatorAlignConfig configures a RotatorAlignGate
type RotatorAlignConfig struct {
	// Rotator is the spinning obstacle, RotatorID its collider id
	Rotator   Pose
	RotatorID string
	// Faces are the openings carried by the rotator
	Faces []Pose
	// Target is the anchor a face has to point at
	Target Pose
	// Axis of rotation, zero means world up
	Axis mgl64.Vec3

	AngleTolerance float64
	OpenGrace      float64
	StopRadius     float64

	// UseAnchorForward aims at -Target.Forward instead of the direction
	// from the rotator to the target
	UseAnchorForward  bool
	RequireJumpOnPass bool
	IgnoreSpawnGrace  bool

	// CheckRayClear also requires a free line between the current and the
	// next waypoint, hits on the rotator itself optionally ignored
	CheckRayClear         bool
	IgnoreOwnRotatorInRay bool
	RayMask               uint32
	Sight                 LineOfSight

	Hub *ActivationHub
}

// DefaultRotatorAlignConfig default settings without geometry
func DefaultRotatorAlignConfig() RotatorAlignConfig {
	return RotatorAlignConfig{
		AngleTolerance:        12,
		OpenGrace:             0.12,
		StopRadius:            0.6,
		UseAnchorForward:      true,
		IgnoreSpawnGrace:      true,
		IgnoreOwnRotatorInRay: true,
	}
}

// RotatorAlignGate opens when one of a rotator's faces points at a target
type RotatorAlignGate struct {
	mu      sync.Mutex
	cfg     RotatorAlignConfig
	clock   Clock
	lastOK  float64
	waiting bool
}

var _ track.Gate = (*RotatorAlignGate)(nil)
var _ track.SpawnGraceOverrider = (*RotatorAlignGate)(nil)

// NewRotatorAlignGate new gate reading time from clock
func NewRotatorAlignGate(clock Clock, cfg RotatorAlignConfig) *RotatorAlignGate {
	return &RotatorAlignGate{
		cfg:    cfg,
		clock:  clock,
		lastOK: noOK,
	}
}

// StopRadius implements track.Gate
func (g *RotatorAlignGate) StopRadius() float64 { return g.cfg.StopRadius }

// RequireJumpOnPass implements track.Gate
func (g *RotatorAlignGate) RequireJumpOnPass() bool { return g.cfg.RequireJumpOnPass }

// IgnoreSpawnGrace implements track.SpawnGraceOverrider
func (g *RotatorAlignGate) IgnoreSpawnGrace() bool { return g.cfg.IgnoreSpawnGrace }

// IsSatisfied implements track.Gate
func (g *RotatorAlignGate) IsSatisfied(current, projectedNext *track.Waypoint) bool {
	cfg := &g.cfg
	if cfg.Rotator == nil || cfg.Target == nil || len(cfg.Faces) == 0 {
		return true
	}

	normal := geom.NormalizeOr(cfg.Axis, geom.Up)

	var desired mgl64.Vec3
	if cfg.UseAnchorForward {
		desired = cfg.Target.Forward().Mul(-1)
	} else {
		desired = cfg.Target.Position().Sub(cfg.Rotator.Position())
	}
	desired = geom.Flat(geom.ProjectOnPlane(desired, normal))
	if geom.LenSqr(desired) < geom.Epsilon {
		return false
	}

	coreOK := false
	for _, face := range cfg.Faces {
		if face == nil {
			continue
		}
		dir := geom.Flat(geom.ProjectOnPlane(face.Forward(), normal))
		if geom.LenSqr(dir) < geom.Epsilon {
			continue
		}
		if geom.AngleDeg(dir, desired) <= cfg.AngleTolerance {
			coreOK = true
			break
		}
	}

	now := g.clock.Now()

	g.mu.Lock()
	if coreOK {
		g.lastOK = now
	}
	ok := coreOK || graceOK(now, g.lastOK, cfg.OpenGrace)
	g.mu.Unlock()

	if ok && cfg.CheckRayClear && cfg.Sight != nil && current != nil && projectedNext != nil {
		ok = !g.blocked(current.Position, projectedNext.Position)
	}
	return ok
}

func (g *RotatorAlignGate) blocked(from, to mgl64.Vec3) bool {
	dir := to.Sub(from)
	distance := dir.Len()
	if distance <= geom.DirEpsilon {
		return false
	}

	origin := from.Add(geom.Up.Mul(0.2))
	for _, id := range g.cfg.Sight.RaycastAll(origin, dir.Mul(1/distance), distance, g.cfg.RayMask) {
		if g.cfg.IgnoreOwnRotatorInRay && g.ownCollider(id) {
			continue
		}
		return true
	}
	return false
}

func (g *RotatorAlignGate) ownCollider(id string) bool {
	own := g.cfg.RotatorID
	return own != "" && (id == own || strings.HasPrefix(id, own+"/"))
}

// SetWaiting implements track.Gate, forwarding real changes to the hub
func (g *RotatorAlignGate) SetWaiting(waiting bool) {
	g.mu.Lock()
	if g.waiting == waiting {
		g.mu.Unlock()
		return
	}
	g.waiting = waiting
	g.mu.Unlock()

	if g.cfg.Hub != nil {
		g.cfg.Hub.RequestOpen(g, waiting)
	}
}

// Waiting reports whether the last SetWaiting call asked to wait
func (g *RotatorAlignGate) Waiting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiting
}
