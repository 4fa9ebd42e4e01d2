package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// sphere is a collision geometry that represents a sphere, it has a pose and
// a radius that fully define it.
type sphere struct {
	pose   Pose
	radius float64
	label  string
}

// NewSphere instantiates a new sphere Geometry.
func NewSphere(pose Pose, radius float64, label string) (Geometry, error) {
	if radius <= 0 {
		return nil, newBadGeometryDimensionsError(&sphere{})
	}
	return &sphere{pose: pose, radius: radius, label: label}, nil
}

// String returns a human readable string that represents the sphere.
func (s *sphere) String() string {
	pt := s.pose.Point()
	return fmt.Sprintf("Type: Sphere | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.2f", pt.X, pt.Y, pt.Z, s.radius)
}

// Pose returns the pose of the sphere.
func (s *sphere) Pose() Pose {
	return s.pose
}

// Label returns the label of this sphere.
func (s *sphere) Label() string {
	return s.label
}

// SetLabel sets the label of this sphere.
func (s *sphere) SetLabel(label string) {
	s.label = label
}

// Transform premultiplies the sphere pose with a transform, allowing the
// sphere to be moved in space.
func (s *sphere) Transform(toPremultiply Pose) Geometry {
	return &sphere{pose: Compose(toPremultiply, s.pose), radius: s.radius, label: s.label}
}

// ContainsPoint reports whether the given point is within the sphere.
func (s *sphere) ContainsPoint(pt r3.Vector) bool {
	return s.pointDistance(pt) <= floatEpsilon
}

// CollidesWith checks if the given sphere collides with the given geometry.
func (s *sphere) CollidesWith(g Geometry) (bool, error) {
	dist, err := s.DistanceFrom(g)
	if err != nil {
		return true, err
	}
	return dist <= floatEpsilon, nil
}

// DistanceFrom returns the distance between the surface of the sphere and the
// surface of the given geometry; non-positive on penetration. Because a
// sphere is a point plus a radius, every geometry with a signed point
// distance is supported.
func (s *sphere) DistanceFrom(g Geometry) (float64, error) {
	return g.pointDistance(s.pose.Point()) - s.radius, nil
}

func (s *sphere) pointDistance(pt r3.Vector) float64 {
	return pt.Sub(s.pose.Point()).Norm() - s.radius
}
