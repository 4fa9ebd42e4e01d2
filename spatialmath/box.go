package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// box is a collision geometry that represents a 3D rectangular prism, it has
// a pose and half size that fully define it.
type box struct {
	pose     Pose
	halfSize [3]float64
	label    string
}

// NewBox instantiates a new box Geometry from its full extents.
func NewBox(pose Pose, dims r3.Vector, label string) (Geometry, error) {
	// Negative dimensions not allowed. Zero dimensions are allowed for bounding boxes, etc.
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, newBadGeometryDimensionsError(&box{})
	}
	return &box{
		pose:     pose,
		halfSize: [3]float64{dims.X / 2, dims.Y / 2, dims.Z / 2},
		label:    label,
	}, nil
}

// String returns a human readable string that represents the box.
func (b *box) String() string {
	pt := b.pose.Point()
	return fmt.Sprintf("Type: Box | Position: X:%.1f, Y:%.1f, Z:%.1f | Dims: X:%.1f, Y:%.1f, Z:%.1f",
		pt.X, pt.Y, pt.Z, 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2])
}

// Pose returns the pose of the box.
func (b *box) Pose() Pose {
	return b.pose
}

// Label returns the label of this box.
func (b *box) Label() string {
	return b.label
}

// SetLabel sets the label of this box.
func (b *box) SetLabel(label string) {
	b.label = label
}

// Transform premultiplies the box pose with a transform, allowing the box to
// be moved in space.
func (b *box) Transform(toPremultiply Pose) Geometry {
	return &box{pose: Compose(toPremultiply, b.pose), halfSize: b.halfSize, label: b.label}
}

// ContainsPoint reports whether the given point is within the box.
func (b *box) ContainsPoint(pt r3.Vector) bool {
	return b.pointDistance(pt) <= floatEpsilon
}

// CollidesWith checks if the given box collides with the given geometry.
func (b *box) CollidesWith(g Geometry) (bool, error) {
	dist, err := b.DistanceFrom(g)
	if err != nil {
		return true, err
	}
	return dist <= floatEpsilon, nil
}

// DistanceFrom returns the distance between the box and the given geometry;
// non-positive on penetration.
func (b *box) DistanceFrom(g Geometry) (float64, error) {
	switch other := g.(type) {
	case *sphere:
		return other.DistanceFrom(b)
	case *point:
		return b.pointDistance(other.position), nil
	default:
		return math.Inf(1), newCollisionTypeUnsupportedError(b, g)
	}
}

// pointDistance returns the signed distance from the box surface to a point,
// negative when the point is inside.
func (b *box) pointDistance(pt r3.Vector) float64 {
	// work in the box frame
	rel := PoseBetween(b.pose, NewPoseFromPoint(pt)).Point()
	dx := math.Abs(rel.X) - b.halfSize[0]
	dy := math.Abs(rel.Y) - b.halfSize[1]
	dz := math.Abs(rel.Z) - b.halfSize[2]
	if dx <= 0 && dy <= 0 && dz <= 0 {
		// inside: distance to the nearest face
		return math.Max(dx, math.Max(dy, dz))
	}
	outside := r3.Vector{X: math.Max(dx, 0), Y: math.Max(dy, 0), Z: math.Max(dz, 0)}
	return outside.Norm()
}
