package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// point is a collision geometry that represents a single point in 3D space
// that occupies no volume.
type point struct {
	position r3.Vector
	label    string
}

// NewPoint instantiates a new point Geometry.
func NewPoint(pt r3.Vector, label string) Geometry {
	return &point{position: pt, label: label}
}

// String returns a human readable string that represents the point.
func (p *point) String() string {
	return fmt.Sprintf("Type: Point | Position: X:%.1f, Y:%.1f, Z:%.1f", p.position.X, p.position.Y, p.position.Z)
}

// Pose returns the pose of the point.
func (p *point) Pose() Pose {
	return NewPoseFromPoint(p.position)
}

// Label returns the label of this point.
func (p *point) Label() string {
	return p.label
}

// SetLabel sets the label of this point.
func (p *point) SetLabel(label string) {
	p.label = label
}

// Transform premultiplies the point pose with a transform, allowing the point
// to be moved in space.
func (p *point) Transform(toPremultiply Pose) Geometry {
	return &point{position: TransformPoint(toPremultiply, p.position), label: p.label}
}

// ContainsPoint reports whether the given point coincides with this one.
func (p *point) ContainsPoint(pt r3.Vector) bool {
	return R3VectorAlmostEqual(p.position, pt, floatEpsilon)
}

// CollidesWith checks if the given point collides with the given geometry.
func (p *point) CollidesWith(g Geometry) (bool, error) {
	dist, err := p.DistanceFrom(g)
	if err != nil {
		return true, err
	}
	return dist <= floatEpsilon, nil
}

// DistanceFrom returns the distance between the point and the given geometry;
// non-positive on penetration.
func (p *point) DistanceFrom(g Geometry) (float64, error) {
	return g.pointDistance(p.position), nil
}

func (p *point) pointDistance(pt r3.Vector) float64 {
	return pt.Sub(p.position).Norm()
}
