package gates

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/algo"
	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/track"
)

// Gate kinds understood by Factory
const (
	KindRotatorAlign = "rotatorAlign"
	KindMovingAlign  = "movingAlign"
)

// Obstacle is the solid a gate is about: a rotator arm or a moving
// platform. Walkable obstacles can be stood on.
type Obstacle struct {
	ID       string
	Anchor   Pose
	Half     mgl64.Vec3
	Walkable bool
}

// Factory builds gates from track document definitions and owns the
// obstacles those gates watch
type Factory struct {
	clock     Clock
	sight     LineOfSight
	orbits    []*Orbit
	hubs      map[string]*ActivationHub
	obstacles []Obstacle
}

// NewFactory gates read time from clock; sight may be nil when no gate
// checks for a clear line
func NewFactory(clock Clock, sight LineOfSight) *Factory {
	return &Factory{
		clock: clock,
		sight: sight,
		hubs:  make(map[string]*ActivationHub),
	}
}

// Build implements track.GateBuilder
func (f *Factory) Build(def algo.JSONMap) (track.Gate, error) {
	kind, err := def.GetString("kind")
	if err != nil {
		return nil, fmt.Errorf("gate kind missing")
	}
	switch kind {
	case KindRotatorAlign:
		return f.buildRotator(def)
	case KindMovingAlign:
		return f.buildMoving(def)
	}
	return nil, fmt.Errorf("unknown gate kind %q", kind)
}

// Update advances every obstacle owned by the factory
func (f *Factory) Update(dt float64) {
	for _, o := range f.orbits {
		o.Update(dt)
	}
}

// Obstacles built so far, in build order
func (f *Factory) Obstacles() []Obstacle {
	return f.obstacles
}

// Hub of gate id, nil when the gate has none
func (f *Factory) Hub(id string) *ActivationHub {
	return f.hubs[id]
}

func (f *Factory) buildRotator(def algo.JSONMap) (track.Gate, error) {
	id := def.StringOr("id", "")
	cfg := DefaultRotatorAlignConfig()
	cfg.AngleTolerance = def.Float64Or("angleTolerance", cfg.AngleTolerance)
	cfg.OpenGrace = def.Float64Or("openGrace", cfg.OpenGrace)
	cfg.StopRadius = def.Float64Or("stopRadius", cfg.StopRadius)
	cfg.UseAnchorForward = def.BoolOr("anchorForward", cfg.UseAnchorForward)
	cfg.RequireJumpOnPass = def.BoolOr("jump", false)
	cfg.IgnoreSpawnGrace = def.BoolOr("ignoreSpawnGrace", cfg.IgnoreSpawnGrace)
	cfg.CheckRayClear = def.BoolOr("checkRayClear", false)
	cfg.IgnoreOwnRotatorInRay = def.BoolOr("ignoreOwnRotator", cfg.IgnoreOwnRotatorInRay)
	cfg.RayMask = uint32(def.Float64Or("rayMask", 0))
	cfg.Sight = f.sight
	cfg.RotatorID = def.StringOr("rotatorId", id)

	center, err := track.Vec3(def, "center")
	if err != nil {
		// no geometry, the gate never blocks
		return NewRotatorAlignGate(f.clock, cfg), nil
	}
	target, err := track.Vec3(def, "target")
	if err != nil {
		return nil, fmt.Errorf("rotator gate %s: %w", id, err)
	}

	axis := vecOr(def, "axis", geom.Up)
	arm := vecOr(def, "arm", mgl64.Vec3{})
	forward := vecOr(def, "forward", geom.Forward)
	orbit := NewOrbit(center, axis, arm, forward,
		def.Float64Or("speed", 30), def.Float64Or("deceleration", 45), def.BoolOr("trigger", false))
	f.orbits = append(f.orbits, orbit)

	cfg.Rotator = orbit
	cfg.Axis = axis
	cfg.Target = StaticPose{Pos: target, Fwd: vecOr(def, "targetForward", geom.Forward)}
	offsets, err := def.GetArray("faces")
	if err != nil {
		cfg.Faces = []Pose{orbit.Face(0)}
	} else {
		fs, err := offsets.Floats()
		if err != nil {
			return nil, fmt.Errorf("rotator gate %s faces: %w", id, err)
		}
		for _, off := range fs {
			cfg.Faces = append(cfg.Faces, orbit.Face(off))
		}
	}

	f.obstacles = append(f.obstacles, Obstacle{
		ID:     cfg.RotatorID + "/arm",
		Anchor: orbit,
		Half:   vecOr(def, "armHalf", mgl64.Vec3{0.4, 0.6, 0.4}),
	})

	hub := NewActivationHub(orbit)
	f.hubs[id] = hub
	cfg.Hub = hub

	return NewRotatorAlignGate(f.clock, cfg), nil
}

func (f *Factory) buildMoving(def algo.JSONMap) (track.Gate, error) {
	id := def.StringOr("id", "")
	cfg := DefaultMovingAlignConfig()
	cfg.StopRadius = def.Float64Or("stopRadius", cfg.StopRadius)
	cfg.RequireJumpOnPass = def.BoolOr("jump", false)
	cfg.MaxHorizontalGap = def.Float64Or("maxHorizontalGap", cfg.MaxHorizontalGap)
	cfg.MaxVerticalDelta = def.Float64Or("maxVerticalDelta", cfg.MaxVerticalDelta)
	cfg.AlignGrace = def.Float64Or("alignGrace", cfg.AlignGrace)

	edge, err := track.Vec3(def, "edge")
	if err != nil {
		return NewMovingAlignGate(f.clock, cfg), nil
	}
	from, err := track.Vec3(def, "platformFrom")
	if err != nil {
		return nil, fmt.Errorf("moving gate %s: %w", id, err)
	}
	to, err := track.Vec3(def, "platformTo")
	if err != nil {
		return nil, fmt.Errorf("moving gate %s: %w", id, err)
	}

	cfg.HopFrom = StaticPose{Pos: edge, Fwd: geom.Forward}
	shuttle := &Shuttle{From: from, To: to, Period: def.Float64Or("period", 4), Clock: f.clock}
	cfg.HopTo = shuttle
	f.obstacles = append(f.obstacles, Obstacle{
		ID:       id + "/platform",
		Anchor:   shuttle,
		Half:     vecOr(def, "platformHalf", mgl64.Vec3{1, 0.25, 1}),
		Walkable: true,
	})
	return NewMovingAlignGate(f.clock, cfg), nil
}

func vecOr(def algo.JSONMap, key string, fallback mgl64.Vec3) mgl64.Vec3 {
	v, err := track.Vec3(def, key)
	if err != nil {
		return fallback
	}
	return v
}
