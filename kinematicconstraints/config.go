package kinematicconstraints

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// QuaternionConfig specifies an orientation as a (w, x, y, z) quaternion in
// JSON configuration.
type QuaternionConfig struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// parse converts the config into an Orientation. A malformed or badly
// unnormalized quaternion yields the identity orientation and false.
func (c *QuaternionConfig) parse() (spatialmath.Orientation, bool) {
	q := quat.Number{Real: c.W, Imag: c.X, Jmag: c.Y, Kmag: c.Z}
	norm := quat.Abs(q)
	if math.IsNaN(norm) || math.IsInf(norm, 0) || math.Abs(norm-1) > 1e-2 {
		return spatialmath.NewZeroOrientation(), false
	}
	return spatialmath.NewOrientationFromQuaternion(q), true
}

// PoseInFrameConfig specifies a pose together with the name of the reference
// frame it is expressed in.
type PoseInFrameConfig struct {
	Frame       string           `json:"frame"`
	Point       r3.Vector        `json:"point"`
	Orientation QuaternionConfig `json:"orientation"`
}

// parsePose converts the config into a PoseInFrame, logging a warning in the
// name of the given subject if the orientation fell back to identity.
func (c *PoseInFrameConfig) parsePose(logger golog.Logger, subject string) *referenceframe.PoseInFrame {
	o, ok := c.Orientation.parse()
	if !ok {
		logger.Warnf("incorrect specification of orientation in pose for %s, assuming identity quaternion", subject)
	}
	return referenceframe.NewPoseInFrame(c.Frame, spatialmath.NewPose(c.Point, o))
}

// JointConstraintConfig declaratively describes a joint constraint: an
// asymmetric bound around a target value of a single-DoF joint.
type JointConstraintConfig struct {
	JointName      string  `json:"joint_name"`
	Position       float64 `json:"position"`
	ToleranceAbove float64 `json:"tolerance_above"`
	ToleranceBelow float64 `json:"tolerance_below"`
	Weight         float64 `json:"weight"`
}

// PositionConstraintConfig declaratively describes a position constraint: a
// link origin, offset in the link frame, bounded inside a geometric region
// posed in a possibly-moving frame.
type PositionConstraintConfig struct {
	LinkName     string                     `json:"link_name"`
	TargetOffset r3.Vector                  `json:"target_offset"`
	Region       spatialmath.GeometryConfig `json:"region"`
	RegionPose   PoseInFrameConfig          `json:"region_pose"`
	Weight       float64                    `json:"weight"`
}

// OrientationConstraintConfig declaratively describes an orientation
// constraint: a bound on the roll/pitch/yaw deviation of a link orientation
// from a desired orientation in a possibly-moving frame.
type OrientationConstraintConfig struct {
	LinkName       string           `json:"link_name"`
	Frame          string           `json:"frame"`
	Orientation    QuaternionConfig `json:"orientation"`
	RollTolerance  float64          `json:"absolute_roll_tolerance"`
	PitchTolerance float64          `json:"absolute_pitch_tolerance"`
	YawTolerance   float64          `json:"absolute_yaw_tolerance"`
	Weight         float64          `json:"weight"`
}

// VisibilityConstraintConfig declaratively describes a visibility
// constraint: a target disc that must remain unoccluded, and optionally
// within a view-angle cone, from a sensor pose.
type VisibilityConstraintConfig struct {
	TargetRadius float64           `json:"target_radius"`
	ConeSides    int               `json:"cone_sides"`
	TargetPose   PoseInFrameConfig `json:"target_pose"`
	SensorPose   PoseInFrameConfig `json:"sensor_pose"`
	MaxViewAngle float64           `json:"max_view_angle"`
	Weight       float64           `json:"weight"`
}

// Bundle collects constraint descriptions of every kind.
type Bundle struct {
	JointConstraints       []JointConstraintConfig       `json:"joint_constraints,omitempty"`
	PositionConstraints    []PositionConstraintConfig    `json:"position_constraints,omitempty"`
	OrientationConstraints []OrientationConstraintConfig `json:"orientation_constraints,omitempty"`
	VisibilityConstraints  []VisibilityConstraintConfig  `json:"visibility_constraints,omitempty"`
}

// MergeBundles combines two constraint description bundles. Joint
// constraints are merged by joint name with entries from the first bundle
// winning on collisions; position, orientation, and visibility constraints
// are concatenated without deduplication.
func MergeBundles(first, second Bundle) Bundle {
	merged := Bundle{
		JointConstraints:       append([]JointConstraintConfig{}, first.JointConstraints...),
		PositionConstraints:    append([]PositionConstraintConfig{}, first.PositionConstraints...),
		OrientationConstraints: append([]OrientationConstraintConfig{}, first.OrientationConstraints...),
		VisibilityConstraints:  append([]VisibilityConstraintConfig{}, first.VisibilityConstraints...),
	}

	for _, jc := range second.JointConstraints {
		keep := true
		for _, existing := range first.JointConstraints {
			if jc.JointName == existing.JointName {
				keep = false
				break
			}
		}
		if keep {
			merged.JointConstraints = append(merged.JointConstraints, jc)
		}
	}

	merged.PositionConstraints = append(merged.PositionConstraints, second.PositionConstraints...)
	merged.OrientationConstraints = append(merged.OrientationConstraints, second.OrientationConstraints...)
	merged.VisibilityConstraints = append(merged.VisibilityConstraints, second.VisibilityConstraints...)
	return merged
}
