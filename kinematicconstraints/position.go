package kinematicconstraints

import (
	"fmt"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// PositionConstraint bounds a link origin, offset in the link frame, inside
// a geometric region expressed in a possibly-moving frame.
type PositionConstraint struct {
	model  referenceframe.Model
	tf     referenceframe.Transforms
	logger golog.Logger

	link   *referenceframe.Link
	offset r3.Vector
	// region is posed in the planning frame when the frame is fixed, and in
	// its own frame when mobile.
	region spatialmath.Geometry
	ref    frameRef
	weight float64
}

// NewPositionConstraint creates an unconfigured position constraint bound to
// a robot model and a frame transform provider.
func NewPositionConstraint(model referenceframe.Model, tf referenceframe.Transforms, logger golog.Logger) *PositionConstraint {
	return &PositionConstraint{model: model, tf: tf, logger: logger, weight: minConstraintWeight}
}

// Use configures the constraint from a description. It returns false, and
// leaves the constraint disabled, if the link is unknown, the region shape
// cannot be constructed, or the region frame cannot be resolved.
func (c *PositionConstraint) Use(cfg PositionConstraintConfig) bool {
	c.link = nil
	c.region = nil

	link, err := c.model.Link(cfg.LinkName)
	if err != nil {
		c.logger.Errorf("position constraint: %v", err)
		return false
	}

	regionPose := cfg.RegionPose.parsePose(c.logger, fmt.Sprintf("link %q", cfg.LinkName))
	resolved, ref, err := resolveFrame(c.tf, regionPose)
	if err != nil {
		c.logger.Errorf("position constraint for link %q: %v", cfg.LinkName, err)
		return false
	}
	region, err := cfg.Region.ParseConfig(resolved)
	if err != nil {
		c.logger.Errorf("position constraint for link %q: %v", cfg.LinkName, err)
		return false
	}

	c.weight = checkWeight(cfg.Weight, c.logger, fmt.Sprintf("position constraint for link %q", cfg.LinkName))
	c.link = link
	c.offset = cfg.TargetOffset
	c.region = region
	c.ref = ref
	return true
}

// Decide evaluates the constraint against a state. The violation score is
// the weighted Euclidean distance between the constrained point and the
// region's pose origin, a proxy error distance reported whether or not the
// point is inside the region.
func (c *PositionConstraint) Decide(state referenceframe.State, verbose bool) (bool, float64) {
	if c.link == nil || c.region == nil {
		return true, 0
	}

	linkPose, err := state.LinkPose(c.link.Name)
	if err != nil {
		c.logger.Warnf("no link in state with name %q", c.link.Name)
		return false, 0
	}
	pt := spatialmath.TransformPoint(linkPose, c.offset)

	region := c.region
	if c.ref.mobile {
		framePose, err := c.tf.CurrentFrame(state, c.ref.frame)
		if err != nil {
			c.logger.Warnf("position constraint for link %q: %v", c.link.Name, err)
			return false, 0
		}
		region = c.region.Transform(framePose)
	}

	result := region.ContainsPoint(pt)
	desired := region.Pose().Point()
	if verbose {
		status := "violated"
		if result {
			status = "satisfied"
		}
		c.logger.Infof("position constraint %s on link %q, desired: %f, %f, %f, current: %f, %f, %f",
			status, c.link.Name, desired.X, desired.Y, desired.Z, pt.X, pt.Y, pt.Z)
	}
	return result, c.weight * desired.Sub(pt).Norm()
}

// Enabled reports whether the constraint was successfully configured.
func (c *PositionConstraint) Enabled() bool {
	return c.link != nil && c.region != nil
}

// Clear resets the constraint to the disabled state.
func (c *PositionConstraint) Clear() {
	c.link = nil
	c.region = nil
}

// String returns a human readable description of the constraint.
func (c *PositionConstraint) String() string {
	if c.link == nil || c.region == nil {
		return "No constraint"
	}
	return fmt.Sprintf("Position constraint on link %q with region %s", c.link.Name, c.region)
}
