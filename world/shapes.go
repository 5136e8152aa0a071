package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/bot"
)

// Collider layers of the reference world
const (
	LayerGround bot.LayerMask = 1 << iota
	LayerAgents
	LayerObstacles
)

// Anchor is something a box can ride on
type Anchor interface {
	Position() mgl64.Vec3
}

// Box is an axis aligned solid. Ground pads are boxes on LayerGround whose
// top face is walkable.
type Box struct {
	ID    string
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer bot.LayerMask

	anchor Anchor
	offset mgl64.Vec3
	half   mgl64.Vec3
}

// NewBox from two opposite corners in any order
func NewBox(id string, a, b mgl64.Vec3, layer bot.LayerMask) *Box {
	box := &Box{ID: id, Layer: layer}
	for i := 0; i < 3; i++ {
		box.Min[i] = math.Min(a[i], b[i])
		box.Max[i] = math.Max(a[i], b[i])
	}
	return box
}

// Center of the box
func (b *Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains p, faces included
func (b *Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Follow keeps the box centered on anchor plus offset, refreshed by
// World.Sync
func (b *Box) Follow(anchor Anchor, offset mgl64.Vec3) {
	b.anchor = anchor
	b.offset = offset
	b.half = b.Max.Sub(b.Min).Mul(0.5)
	b.sync()
}

func (b *Box) sync() {
	if b.anchor == nil {
		return
	}
	c := b.anchor.Position().Add(b.offset)
	b.Min = c.Sub(b.half)
	b.Max = c.Add(b.half)
}

func (b *Box) closest(p mgl64.Vec3) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = math.Max(b.Min[i], math.Min(p[i], b.Max[i]))
	}
	return out
}

func (b *Box) overlapsSphere(center mgl64.Vec3, radius float64) bool {
	return b.closest(center).Sub(center).LenSqr() <= radius*radius
}

// underfoot reports whether p lies within the top face footprint
func (b *Box) underfoot(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] && p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// rayBox is the slab test. dir must be normalized.
func rayBox(b *Box, origin, dir mgl64.Vec3, length float64) bool {
	tMin, tMax := 0.0, length
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-9 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// raySphere with dir normalized
func raySphere(center mgl64.Vec3, radius float64, origin, dir mgl64.Vec3, length float64) bool {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LenSqr() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return false
	}
	t := -b - math.Sqrt(disc)
	return t >= 0 && t <= length
}
