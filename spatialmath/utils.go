package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

const floatEpsilon = 1e-6

// NormalizeAngle normalizes an angle in radians into the interval (-pi, pi].
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta > math.Pi {
		theta -= 2 * math.Pi
	} else if theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// Float64AlmostEqual compares two float64s and returns if their difference is
// less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// R3VectorAlmostEqual compares two r3.Vectors and returns if the all
// elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// PlaneNormal returns the plane normal of the plane defined by three points.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Norm2() == 0 {
		return n
	}
	return n.Normalize()
}

// ClosestPointSegmentPoint takes a line segment defined by ap1 and ap2, and a
// point, and returns the point on the segment closest to the provided point.
func ClosestPointSegmentPoint(ap1, ap2, p r3.Vector) r3.Vector {
	ab := ap2.Sub(ap1)
	t := p.Sub(ap1).Dot(ab)
	if denom := ab.Norm2(); denom > 0 {
		t /= denom
	}
	if t <= 0 {
		return ap1
	} else if t >= 1 {
		return ap2
	}
	return ap1.Add(ab.Mul(t))
}

// mathAcosClamped is acos with its argument clamped into [-1, 1] so that
// accumulated floating point error cannot produce NaN.
func mathAcosClamped(v float64) float64 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return math.Acos(v)
}
