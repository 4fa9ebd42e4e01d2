package kinematicconstraints

import (
	"fmt"
	"math"

	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/num/quat"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// OrientationConstraint bounds the roll/pitch/yaw deviation of a link's
// orientation from a desired orientation expressed in a possibly-moving
// frame.
type OrientationConstraint struct {
	model  referenceframe.Model
	tf     referenceframe.Transforms
	logger golog.Logger

	link *referenceframe.Link
	// desired is expressed in the planning frame when the frame is fixed,
	// and in its own frame when mobile.
	desired  quat.Number
	ref      frameRef
	tolRoll  float64
	tolPitch float64
	tolYaw   float64
	weight   float64
}

// NewOrientationConstraint creates an unconfigured orientation constraint
// bound to a robot model and a frame transform provider.
func NewOrientationConstraint(model referenceframe.Model, tf referenceframe.Transforms, logger golog.Logger) *OrientationConstraint {
	return &OrientationConstraint{model: model, tf: tf, logger: logger, weight: minConstraintWeight}
}

// Use configures the constraint from a description. A malformed desired
// quaternion falls back to identity with a warning; an unknown link or
// unresolvable frame leaves the constraint disabled.
func (c *OrientationConstraint) Use(cfg OrientationConstraintConfig) bool {
	c.link = nil

	link, err := c.model.Link(cfg.LinkName)
	if err != nil {
		c.logger.Errorf("orientation constraint: %v", err)
		return false
	}

	o, ok := cfg.Orientation.parse()
	if !ok {
		c.logger.Warnf("orientation constraint for link %q is probably incorrect: %f, %f, %f, %f, assuming identity instead",
			cfg.LinkName, cfg.Orientation.W, cfg.Orientation.X, cfg.Orientation.Y, cfg.Orientation.Z)
	}
	desiredPose, ref, err := resolveFrame(c.tf, referenceframe.NewPoseInFrame(cfg.Frame, spatialmath.NewPoseFromOrientation(o)))
	if err != nil {
		c.logger.Errorf("orientation constraint for link %q: %v", cfg.LinkName, err)
		return false
	}

	c.desired = desiredPose.Orientation().Quaternion()
	c.ref = ref
	c.tolRoll = math.Abs(cfg.RollTolerance)
	c.tolPitch = math.Abs(cfg.PitchTolerance)
	c.tolYaw = math.Abs(cfg.YawTolerance)
	c.weight = checkWeight(cfg.Weight, c.logger, fmt.Sprintf("orientation constraint for link %q", cfg.LinkName))
	c.link = link
	return true
}

// Decide evaluates the constraint against a state. The rotational difference
// between the desired and current orientations is decomposed into roll,
// pitch, and yaw; each must be strictly within its tolerance. The violation
// score is the weighted sum of the three absolute errors.
func (c *OrientationConstraint) Decide(state referenceframe.State, verbose bool) (bool, float64) {
	if c.link == nil {
		return true, 0
	}

	linkPose, err := state.LinkPose(c.link.Name)
	if err != nil {
		c.logger.Warnf("no link in state with name %q", c.link.Name)
		return false, 0
	}

	desired := c.desired
	if c.ref.mobile {
		framePose, err := c.tf.CurrentFrame(state, c.ref.frame)
		if err != nil {
			c.logger.Warnf("orientation constraint for link %q: %v", c.link.Name, err)
			return false, 0
		}
		desired = quat.Mul(framePose.Orientation().Quaternion(), c.desired)
	}

	diff := quat.Mul(quat.Conj(desired), linkPose.Orientation().Quaternion())
	angles := spatialmath.QuatToEulerAngles(diff)
	roll, pitch, yaw := math.Abs(angles.Roll), math.Abs(angles.Pitch), math.Abs(angles.Yaw)

	result := roll < c.tolRoll && pitch < c.tolPitch && yaw < c.tolYaw
	if verbose {
		status := "violated"
		if result {
			status = "satisfied"
		}
		current := linkPose.Orientation().Quaternion()
		c.logger.Infof("orientation constraint %s for link %q, desired: %f %f %f %f, actual: %f %f %f %f, "+
			"error: roll=%f, pitch=%f, yaw=%f, tolerance: roll=%f, pitch=%f, yaw=%f",
			status, c.link.Name, desired.Real, desired.Imag, desired.Jmag, desired.Kmag,
			current.Real, current.Imag, current.Jmag, current.Kmag,
			angles.Roll, angles.Pitch, angles.Yaw, c.tolRoll, c.tolPitch, c.tolYaw)
	}
	return result, c.weight * (roll + pitch + yaw)
}

// Enabled reports whether the constraint was successfully configured.
func (c *OrientationConstraint) Enabled() bool {
	return c.link != nil
}

// Clear resets the constraint to the disabled state.
func (c *OrientationConstraint) Clear() {
	c.link = nil
}

// String returns a human readable description of the constraint.
func (c *OrientationConstraint) String() string {
	if c.link == nil {
		return "No constraint"
	}
	return fmt.Sprintf("Orientation constraint on link %q, desired orientation: %f, %f, %f, %f",
		c.link.Name, c.desired.Real, c.desired.Imag, c.desired.Jmag, c.desired.Kmag)
}
