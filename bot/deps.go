package bot

import (
	"github.com/go-gl/mathgl/mgl64"
)

// LayerMask selects collider layers, one bit per layer
type LayerMask uint32

// AllLayers matches every layer
const AllLayers = ^LayerMask(0)

// Body is the agent being driven
type Body interface {
	ID() string
	Position() mgl64.Vec3
	Forward() mgl64.Vec3
}

// Collider found by an overlap query
type Collider struct {
	ID       string
	Position mgl64.Vec3
}

// SpatialQuery is the physics the navigator reads. Queries are made fresh
// every tick and never cached.
type SpatialQuery interface {
	// OverlapSphere fills buf with colliders on mask inside the sphere and
	// returns how many were written
	OverlapSphere(center mgl64.Vec3, radius float64, mask LayerMask, buf []Collider) int
	// Raycast reports whether anything on mask lies along the ray. Colliders
	// containing origin are not hit.
	Raycast(origin, dir mgl64.Vec3, length float64, mask LayerMask) bool
}

// Clock is the frame clock, in seconds
type Clock interface {
	Now() float64
	Delta() float64
}

// Random source, one per agent
type Random interface {
	// Value in [0, 1)
	Value() float64
	// Range in [min, max)
	Range(min, max float64) float64
}
