// Package spatialmath defines spatial mathematical operations.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6dof pose, position and orientation, of an object or a
// frame of reference in 3D Euclidean space.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a position and an orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	q := newDualQuaternionFromRotation(o)
	q.setTranslation(p)
	return q
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a Pose with
// no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := newDualQuaternion()
	q.setTranslation(point)
	return q
}

// NewPoseFromOrientation takes in an orientation and returns a Pose at the
// origin with that orientation.
func NewPoseFromOrientation(o Orientation) Pose {
	return newDualQuaternionFromRotation(o)
}

// Compose treats Poses as functions A(x) and B(x), and produces a new
// function C(x) = A(B(x)). It converts the poses to dual quaternions and
// multiplies them together, normalizing the result.
func Compose(a, b Pose) Pose {
	result := &dualQuaternion{dualquat.Mul(dualQuaternionFromPose(a).Number, dualQuaternionFromPose(b).Number)}

	// Normalization
	if vecLen := quat.Abs(result.Real); vecLen != 1 {
		result.Real = quat.Scale(1/vecLen, result.Real)
	}
	return result
}

// PoseInverse returns the inverse of the given pose, such that
// Compose(p, PoseInverse(p)) is the identity.
func PoseInverse(p Pose) Pose {
	q := dualQuaternionFromPose(p)
	return &dualQuaternion{dualquat.ConjQuat(q.Number)}
}

// PoseBetween returns the difference between two poses, that is, the pose
// that when composed with a yields b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// TransformPoint applies a pose as a rigid transform to a point.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	return Compose(p, NewPoseFromPoint(pt)).Point()
}

// PoseAlmostCoincident checks if two poses are approximately the same, within
// a small epsilon for both position and orientation.
func PoseAlmostCoincident(a, b Pose) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), 1e-8) && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

// dualQuaternion defines functions to perform rigid transformations in 3D.
// Pure rotation is stored in the real part, translation in the dual part.
type dualQuaternion struct {
	dualquat.Number
}

// newDualQuaternion returns a new dualQuaternion representing an identity
// transform. Since the real part of a dual quaternion should be a unit
// quaternion, not all zeroes, this should be used instead of &dualQuaternion{}.
func newDualQuaternion() *dualQuaternion {
	return &dualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// newDualQuaternionFromRotation returns a new dualQuaternion with rotation set
// from the provided orientation and no translation.
func newDualQuaternionFromRotation(o Orientation) *dualQuaternion {
	q := o.Quaternion()
	if norm := quat.Abs(q); norm != 1 && norm > 0 {
		q = quat.Scale(1/norm, q)
	}
	return &dualQuaternion{dualquat.Number{
		Real: q,
		Dual: quat.Number{},
	}}
}

// dualQuaternionFromPose converts a Pose to a dualQuaternion, avoiding a copy
// if the Pose is already backed by one.
func dualQuaternionFromPose(p Pose) *dualQuaternion {
	if q, ok := p.(*dualQuaternion); ok {
		return q
	}
	q := newDualQuaternionFromRotation(p.Orientation())
	q.setTranslation(p.Point())
	return q
}

// Point returns the translation of the pose as an r3.Vector.
func (q *dualQuaternion) Point() r3.Vector {
	// Multiplying by the conjugate yields a dual quaternion whose dual part is
	// the pure-quaternion translation.
	tq := dualquat.Mul(q.Number, dualquat.Conj(q.Number))
	return r3.Vector{X: tq.Dual.Imag, Y: tq.Dual.Jmag, Z: tq.Dual.Kmag}
}

// Orientation returns the rotation of the pose.
func (q *dualQuaternion) Orientation() Orientation {
	o := quaternion(q.Real)
	return &o
}

// setTranslation correctly sets the translation quaternion against the
// rotation.
func (q *dualQuaternion) setTranslation(pt r3.Vector) {
	q.Dual = quat.Scale(0.5, quat.Mul(quat.Number{Imag: pt.X, Jmag: pt.Y, Kmag: pt.Z}, q.Real))
}
