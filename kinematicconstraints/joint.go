package kinematicconstraints

import (
	"fmt"
	"math"

	"github.com/edaniels/golog"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// JointConstraint bounds the scalar value of a single joint between an
// asymmetric tolerance around a target value, handling wraparound for
// continuous joints.
type JointConstraint struct {
	model  referenceframe.Model
	logger golog.Logger

	joint      *referenceframe.Joint
	continuous bool
	position   float64
	tolAbove   float64
	tolBelow   float64
	weight     float64
}

// NewJointConstraint creates an unconfigured joint constraint bound to a
// robot model.
func NewJointConstraint(model referenceframe.Model, logger golog.Logger) *JointConstraint {
	return &JointConstraint{model: model, logger: logger, weight: minConstraintWeight}
}

// Use configures the constraint from a description. It returns false, and
// leaves the constraint disabled, if the named joint does not exist or does
// not have exactly one degree of freedom.
func (c *JointConstraint) Use(cfg JointConstraintConfig) bool {
	c.joint = nil

	joint, err := c.model.Joint(cfg.JointName)
	if err != nil {
		c.logger.Errorf("joint constraint: %v", err)
		return false
	}
	if joint.DoF == 0 {
		c.logger.Errorf("joint %q has no parameters to constrain", cfg.JointName)
		return false
	}
	if joint.DoF > 1 {
		c.logger.Errorf("joint %q has more than one parameter to constrain; this type of constraint is not supported", cfg.JointName)
		return false
	}

	c.continuous = joint.Continuous
	if c.continuous {
		c.position = spatialmath.NormalizeAngle(cfg.Position)
	} else {
		c.position = cfg.Position
	}
	c.tolAbove = cfg.ToleranceAbove
	c.tolBelow = cfg.ToleranceBelow
	c.weight = checkWeight(cfg.Weight, c.logger, fmt.Sprintf("constraint for joint %q", cfg.JointName))
	c.joint = joint
	return true
}

// Decide evaluates the constraint against a state. The violation score is
// the weighted absolute error, reported whether or not the constraint is
// satisfied.
func (c *JointConstraint) Decide(state referenceframe.State, verbose bool) (bool, float64) {
	if c.joint == nil {
		return true, 0
	}

	values, err := state.JointValues(c.joint.Name)
	if err != nil || len(values) == 0 {
		c.logger.Warnf("no joint in state with name %q", c.joint.Name)
		return false, 0
	}
	current := values[0]

	var dif float64
	if c.continuous {
		// signed shortest distance, then re-apply the sign of the raw
		// comparison so asymmetric tolerances stay meaningful
		dif = spatialmath.NormalizeAngle(current) - c.position
		if dif > math.Pi {
			dif = 2*math.Pi - dif
		} else if dif < -math.Pi {
			dif += 2 * math.Pi
		}
		if current < c.position {
			dif = -dif
		}
	} else {
		dif = current - c.position
	}

	result := dif <= c.tolAbove && dif >= -c.tolBelow
	if verbose {
		status := "violated"
		if result {
			status = "satisfied"
		}
		c.logger.Infof("constraint %s: joint %q, actual value: %f, desired value: %f, tolerance_above: %f, tolerance_below: %f",
			status, c.joint.Name, current, c.position, c.tolAbove, c.tolBelow)
	}
	return result, c.weight * math.Abs(dif)
}

// Enabled reports whether the constraint was successfully configured.
func (c *JointConstraint) Enabled() bool {
	return c.joint != nil
}

// Clear resets the constraint to the disabled state.
func (c *JointConstraint) Clear() {
	c.joint = nil
}

// String returns a human readable description of the constraint.
func (c *JointConstraint) String() string {
	if c.joint == nil {
		return "No constraint"
	}
	return fmt.Sprintf("Joint constraint for joint %q: value = %f, tolerance below = %f, tolerance above = %f",
		c.joint.Name, c.position, c.tolBelow, c.tolAbove)
}
