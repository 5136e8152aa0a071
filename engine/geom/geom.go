// Package geom holds the small amount of vector math the steering code
// needs on top of mgl64. The world is Y-up; agents move on the XZ plane.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Epsilon below which a squared length counts as zero
	Epsilon = 1e-6
	// DirEpsilon is the squared length under which a direction is degenerate
	DirEpsilon = 1e-4
)

var (
	// Zero vector
	Zero = mgl64.Vec3{}
	// Up is world up (+Y)
	Up = mgl64.Vec3{0, 1, 0}
	// Down is world down (-Y)
	Down = mgl64.Vec3{0, -1, 0}
	// Forward is world forward (+Z)
	Forward = mgl64.Vec3{0, 0, 1}
	// Right is world right (+X)
	Right = mgl64.Vec3{1, 0, 0}
)

// LenSqr squared length
func LenSqr(v mgl64.Vec3) float64 {
	return v.Dot(v)
}

// Flat drops the vertical component
func Flat(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// Normalize returns v/|v|, or the zero vector when v is (almost) zero.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l2 := LenSqr(v)
	if l2 < Epsilon*Epsilon {
		return Zero
	}
	return v.Mul(1 / math.Sqrt(l2))
}

// NormalizeOr normalizes v, falling back to fallback when v is degenerate.
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if LenSqr(v) <= DirEpsilon {
		return fallback
	}
	return Normalize(v)
}

// XZ projects onto the ground plane as a 2D vector
func XZ(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v[0], v[2]}
}

// FromXZ lifts a ground-plane vector back into 3D
func FromXZ(v mgl64.Vec2) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[1]}
}

// Side is the horizontal perpendicular of forward (right-hand side).
// Zero when forward is vertical or degenerate.
func Side(forward mgl64.Vec3) mgl64.Vec3 {
	return Normalize(Up.Cross(forward))
}

// ProjectOnPlane removes the component of v along normal
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	n2 := LenSqr(normal)
	if n2 < Epsilon {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / n2))
}

// AngleDeg returns the unsigned angle between a and b in degrees, 0 when
// either is degenerate.
func AngleDeg(a, b mgl64.Vec3) float64 {
	denom := math.Sqrt(LenSqr(a) * LenSqr(b))
	if denom < 1e-15 {
		return 0
	}
	dot := Clamp(a.Dot(b)/denom, -1, 1)
	return mgl64.RadToDeg(math.Acos(dot))
}

// Distance between two points
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Clamp x into [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 x into [0, 1]
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Lerp between a and b with t clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// InverseLerp returns where v sits between a and b, clamped to [0, 1].
// Returns 0 when a == b.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// LerpVec between a and b with t clamped to [0, 1]
func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}

// Slerp rotates a toward b by the fraction t (clamped) of the angle between
// them while interpolating the magnitude linearly.
func Slerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return LerpVec(a, b, t)
	}

	na, nb := a.Mul(1/la), b.Mul(1/lb)
	dot := Clamp(na.Dot(nb), -1, 1)
	theta := math.Acos(dot)
	mag := la + (lb-la)*t

	if theta < 1e-5 {
		return Normalize(LerpVec(na, nb, t)).Mul(mag)
	}

	if math.Pi-theta < 1e-5 {
		// opposite directions: rotate through any perpendicular axis
		axis := Normalize(na.Cross(Up))
		if LenSqr(axis) < Epsilon {
			axis = Normalize(na.Cross(Right))
		}
		angle := theta * t
		dir := na.Mul(math.Cos(angle)).Add(axis.Mul(math.Sin(angle)))
		return dir.Mul(mag)
	}

	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return na.Mul(wa).Add(nb.Mul(wb)).Mul(mag)
}
