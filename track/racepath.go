package track

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
)

// RacePath measures how far along a polyline a position is
type RacePath struct {
	points   []mgl64.Vec3
	cumLen   []float64
	totalLen float64
}

// NewRacePath from ordered points; fewer than two points gives an invalid path
func NewRacePath(points []mgl64.Vec3) *RacePath {
	if len(points) < 2 {
		return &RacePath{}
	}

	p := &RacePath{
		points: append([]mgl64.Vec3(nil), points...),
		cumLen: make([]float64, len(points)),
	}
	distance := 0.0
	for i := 1; i < len(points); i++ {
		distance += geom.Distance(points[i-1], points[i])
		p.cumLen[i] = distance
	}
	p.totalLen = distance
	return p
}

// IsValid path has at least two points
func (p *RacePath) IsValid() bool {
	return len(p.points) >= 2
}

// TotalLength of the polyline
func (p *RacePath) TotalLength() float64 {
	return p.totalLen
}

// Progress in [0, 1] of the closest point on the path to pos
func (p *RacePath) Progress(pos mgl64.Vec3) float64 {
	if !p.IsValid() || p.totalLen <= 1e-4 {
		return 0
	}

	bestSqr := -1.0
	bestAlong := 0.0
	for i := 1; i < len(p.points); i++ {
		a, b := p.points[i-1], p.points[i]
		ab := b.Sub(a)
		abLen2 := geom.LenSqr(ab)
		if abLen2 < 1e-6 {
			continue
		}

		t := geom.Clamp01(pos.Sub(a).Dot(ab) / abLen2)
		proj := a.Add(ab.Mul(t))
		sqr := geom.LenSqr(pos.Sub(proj))
		if bestSqr < 0 || sqr < bestSqr {
			bestSqr = sqr
			bestAlong = p.cumLen[i-1] + ab.Len()*t
		}
	}

	return geom.Clamp01(bestAlong / p.totalLen)
}
