// Package world is a small headless stand-in for a physics scene: racers
// are spheres indexed by the aoi sweep lists, level geometry is boxes.
// It answers the navigator's spatial queries and moves racers from their
// MoveIntents.
package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutumagi/racenav/aoi"
	"github.com/tutumagi/racenav/bot"
	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/logger"
)

// Settings of the locomotion model
type Settings struct {
	View         float64 `mapstructure:"view"`
	RacerRadius  float64 `mapstructure:"racerRadius"`
	MaxSpeed     float64 `mapstructure:"maxSpeed"`
	Acceleration float64 `mapstructure:"acceleration"`
	JumpSpeed    float64 `mapstructure:"jumpSpeed"`
	Gravity      float64 `mapstructure:"gravity"`
	PushDamping  float64 `mapstructure:"pushDamping"`
	KillBelowY   float64 `mapstructure:"killBelowY"`
	StepHeight   float64 `mapstructure:"stepHeight"`
}

// DefaultSettings roughly match a party racer character controller
func DefaultSettings() Settings {
	return Settings{
		View:         6,
		RacerRadius:  0.45,
		MaxSpeed:     6,
		Acceleration: 14,
		JumpSpeed:    7,
		Gravity:      20,
		PushDamping:  3,
		KillBelowY:   -10,
		StepHeight:   0.35,
	}
}

// World holds racers and level geometry. Not goroutine safe; the race loop
// owns it.
type World struct {
	settings Settings
	aoiMgr   *aoi.Manager
	racers   map[string]*Racer
	order    []*Racer
	boxes    []*Box
	log      *zap.Logger
}

// New empty world
func New(settings Settings) *World {
	return &World{
		settings: settings,
		aoiMgr:   aoi.NewManager(settings.View),
		racers:   make(map[string]*Racer),
		log:      logger.Named("world"),
	}
}

func (w *World) String() string {
	return fmt.Sprintf("<World>(racers:%d boxes:%d)", len(w.order), len(w.boxes))
}

// Settings in use
func (w *World) Settings() Settings {
	return w.settings
}

// AddBox adds solid geometry
func (w *World) AddBox(box *Box) *Box {
	w.boxes = append(w.boxes, box)
	return box
}

// AddPad adds a walkable slab whose top face is centered on top
func (w *World) AddPad(id string, top mgl64.Vec3, halfX, halfZ float64) *Box {
	return w.AddBox(NewBox(id,
		top.Sub(mgl64.Vec3{halfX, 0.5, halfZ}),
		top.Add(mgl64.Vec3{halfX, 0, halfZ}),
		LayerGround))
}

// Boxes in the world
func (w *World) Boxes() []*Box {
	return w.boxes
}

// Sync moves anchored boxes to their anchors
func (w *World) Sync() {
	for _, b := range w.boxes {
		b.sync()
	}
}

// Spawn a racer at pos facing fwd
func (w *World) Spawn(name string, pos, fwd mgl64.Vec3) *Racer {
	r := &Racer{
		id:         uuid.New().String(),
		Name:       name,
		pos:        pos,
		fwd:        geom.NormalizeOr(geom.Flat(fwd), geom.Forward),
		checkpoint: pos,
	}
	r.item = aoi.NewItem(r.id, w.settings.RacerRadius, uint32(LayerAgents), r, nil)
	w.aoiMgr.Enter(r.item, pos)

	w.racers[r.id] = r
	w.order = append(w.order, r)
	w.log.Debug("racer spawned", zap.String("racer", r.String()))
	return r
}

// Remove racer from the world
func (w *World) Remove(r *Racer) {
	if _, ok := w.racers[r.id]; !ok {
		return
	}
	w.aoiMgr.Leave(r.item)
	delete(w.racers, r.id)
	for i, o := range w.order {
		if o == r {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Racer by id
func (w *World) Racer(id string) *Racer {
	return w.racers[id]
}

// Racers in spawn order
func (w *World) Racers() []*Racer {
	return w.order
}

// GroundHeight is the highest pad top under pos that pos can stand on
func (w *World) GroundHeight(pos mgl64.Vec3) (float64, bool) {
	best, found := math.Inf(-1), false
	for _, b := range w.boxes {
		if b.Layer&LayerGround == 0 || !b.underfoot(pos) {
			continue
		}
		top := b.Max[1]
		if top > pos[1]+w.settings.StepHeight || top <= best {
			continue
		}
		best, found = top, true
	}
	return best, found
}

// OverlapSphere implements bot.SpatialQuery. Racers report their centers,
// boxes their centers.
func (w *World) OverlapSphere(center mgl64.Vec3, radius float64, mask bot.LayerMask, buf []bot.Collider) int {
	n := 0
	w.aoiMgr.Query(center, radius, uint32(mask), func(it *aoi.Item) bool {
		if n == len(buf) {
			return false
		}
		buf[n] = bot.Collider{ID: it.ID, Position: it.Position()}
		n++
		return true
	})
	for _, b := range w.boxes {
		if n == len(buf) {
			break
		}
		if b.Layer&mask == 0 || !b.overlapsSphere(center, radius) {
			continue
		}
		buf[n] = bot.Collider{ID: b.ID, Position: b.Center()}
		n++
	}
	return n
}

// Raycast implements bot.SpatialQuery
func (w *World) Raycast(origin, dir mgl64.Vec3, length float64, mask bot.LayerMask) bool {
	hit := false
	w.raycast(origin, dir, length, mask, func(string) bool {
		hit = true
		return false
	})
	return hit
}

// RaycastAll returns the ids of everything on mask along the ray
func (w *World) RaycastAll(origin, dir mgl64.Vec3, length float64, mask uint32) []string {
	var ids []string
	w.raycast(origin, dir, length, bot.LayerMask(mask), func(id string) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// raycast calls hit for every collider on the ray not containing origin,
// stopping when hit returns false
func (w *World) raycast(origin, dir mgl64.Vec3, length float64, mask bot.LayerMask, hit func(id string) bool) {
	if geom.LenSqr(dir) < geom.Epsilon || length <= 0 {
		return
	}
	dir = geom.Normalize(dir)

	if mask&LayerAgents != 0 {
		radius := w.settings.RacerRadius
		for _, r := range w.order {
			if r.pos.Sub(origin).LenSqr() <= radius*radius {
				continue
			}
			if raySphere(r.pos, radius, origin, dir, length) && !hit(r.id) {
				return
			}
		}
	}
	for _, b := range w.boxes {
		if b.Layer&mask == 0 || b.Contains(origin) {
			continue
		}
		if rayBox(b, origin, dir, length) && !hit(b.ID) {
			return
		}
	}
}
