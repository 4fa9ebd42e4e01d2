package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// cylinder is a collision geometry that represents a cylinder, it has a pose,
// a radius, and a length that fully define it. The cylinder axis is the local
// Z axis of its pose, and the pose sits at the midpoint of the axis.
type cylinder struct {
	pose   Pose
	radius float64
	length float64
	label  string
}

// NewCylinder instantiates a new cylinder Geometry.
func NewCylinder(pose Pose, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newBadGeometryDimensionsError(&cylinder{})
	}
	return &cylinder{pose: pose, radius: radius, length: length, label: label}, nil
}

// String returns a human readable string that represents the cylinder.
func (c *cylinder) String() string {
	pt := c.pose.Point()
	return fmt.Sprintf("Type: Cylinder | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.2f, Length: %.2f",
		pt.X, pt.Y, pt.Z, c.radius, c.length)
}

// Pose returns the pose of the cylinder.
func (c *cylinder) Pose() Pose {
	return c.pose
}

// Label returns the label of this cylinder.
func (c *cylinder) Label() string {
	return c.label
}

// SetLabel sets the label of this cylinder.
func (c *cylinder) SetLabel(label string) {
	c.label = label
}

// Transform premultiplies the cylinder pose with a transform, allowing the
// cylinder to be moved in space.
func (c *cylinder) Transform(toPremultiply Pose) Geometry {
	return &cylinder{pose: Compose(toPremultiply, c.pose), radius: c.radius, length: c.length, label: c.label}
}

// ContainsPoint reports whether the given point is within the cylinder.
func (c *cylinder) ContainsPoint(pt r3.Vector) bool {
	return c.pointDistance(pt) <= floatEpsilon
}

// CollidesWith checks if the given cylinder collides with the given geometry.
func (c *cylinder) CollidesWith(g Geometry) (bool, error) {
	dist, err := c.DistanceFrom(g)
	if err != nil {
		return true, err
	}
	return dist <= floatEpsilon, nil
}

// DistanceFrom returns the distance between the cylinder and the given
// geometry; non-positive on penetration.
func (c *cylinder) DistanceFrom(g Geometry) (float64, error) {
	switch other := g.(type) {
	case *sphere:
		return other.DistanceFrom(c)
	case *point:
		return c.pointDistance(other.position), nil
	default:
		return math.Inf(1), newCollisionTypeUnsupportedError(c, g)
	}
}

// pointDistance returns the signed distance from the cylinder surface to a
// point, negative when the point is inside.
func (c *cylinder) pointDistance(pt r3.Vector) float64 {
	rel := PoseBetween(c.pose, NewPoseFromPoint(pt)).Point()
	radial := math.Hypot(rel.X, rel.Y) - c.radius
	axial := math.Abs(rel.Z) - c.length/2
	if radial <= 0 && axial <= 0 {
		return math.Max(radial, axial)
	}
	return math.Hypot(math.Max(radial, 0), math.Max(axial, 0))
}
