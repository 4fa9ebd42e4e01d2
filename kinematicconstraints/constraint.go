// Package kinematicconstraints evaluates geometric constraints against robot
// kinematic states and scores how well they are satisfied.
package kinematicconstraints

import (
	"fmt"
	"math"

	"github.com/edaniels/golog"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// minConstraintWeight is the near-zero default substituted for invalid
// weights, so degenerate constraints barely affect an aggregate score.
var minConstraintWeight = math.Nextafter(1, 2) - 1

// Constraint is the shared contract of all constraint kinds. A constraint is
// configured once via its kind-specific Use method, then queried any number
// of times via Decide. Decide calls are safe to make concurrently as long as
// no goroutine concurrently reconfigures the constraint.
type Constraint interface {
	// Decide evaluates the constraint against a kinematic state, returning
	// whether the constraint is satisfied and a weighted violation score.
	// When verbose, a per-evaluation diagnostic is logged.
	Decide(state referenceframe.State, verbose bool) (bool, float64)

	// Enabled reports whether the constraint was successfully configured.
	// Disabled constraints are trivially satisfied with zero score.
	Enabled() bool

	// Clear resets the constraint to the disabled state.
	Clear()

	fmt.Stringer
}

// checkWeight validates a configured constraint weight; a non-positive
// weight is replaced by the epsilon default and surfaced as a warning.
func checkWeight(weight float64, logger golog.Logger, description string) float64 {
	if weight <= minConstraintWeight {
		logger.Warnf("the weight on %s should be positive", description)
		return minConstraintWeight
	}
	return weight
}

// frameRef pins down how a configured pose relates to the planning frame:
// either resolved once at configuration time and frozen, or tagged with a
// mobile frame name to be re-resolved against the live state on every query.
type frameRef struct {
	frame  string
	mobile bool
}

// resolveFrame applies the fixed/mobile split to a configured pose. For
// fixed frames the returned pose is pre-transformed into the planning frame;
// for mobile frames the pose is returned untouched, still local to its frame.
func resolveFrame(tf referenceframe.Transforms, pif *referenceframe.PoseInFrame) (spatialmath.Pose, frameRef, error) {
	frame := pif.FrameName()
	if tf.IsFixedFrame(frame) {
		resolved, err := tf.TransformToPlanningFrame(pif.Pose(), frame)
		if err != nil {
			return nil, frameRef{}, err
		}
		return resolved, frameRef{frame: tf.PlanningFrame()}, nil
	}
	return pif.Pose(), frameRef{frame: frame, mobile: true}, nil
}

// currentPose returns the stored pose expressed in the planning frame for
// the given state, re-resolving mobile frames.
func (ref frameRef) currentPose(tf referenceframe.Transforms, state referenceframe.State, pose spatialmath.Pose) (spatialmath.Pose, error) {
	if !ref.mobile {
		return pose, nil
	}
	framePose, err := tf.CurrentFrame(state, ref.frame)
	if err != nil {
		return nil, err
	}
	return spatialmath.Compose(framePose, pose), nil
}
