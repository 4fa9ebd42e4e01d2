package kinematicconstraints

import (
	"fmt"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"github.com/armlab-robotics/kinconstraint/collision"
	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// VisibilityConstraint tests that a target disc remains unoccluded, and
// optionally within a view-angle cone, from a sensor pose. Occlusion is
// tested by synthesizing a cone mesh between the sensor and the disc and
// checking it against the robot's collision geometry.
//
// Each instance privately owns its collision world, which is mutated on
// every Decide call; callers needing parallel evaluation must give each
// goroutine its own constraint instance.
type VisibilityConstraint struct {
	model  referenceframe.Model
	tf     referenceframe.Transforms
	logger golog.Logger

	robot    collision.Robot
	world    *collision.World
	coneName string

	targetRadius float64
	coneSides    int
	// points approximating the disc boundary: in the planning frame when
	// the target frame is fixed, in the disc's local frame when mobile
	points []r3.Vector

	// targetPose and sensorPose are in the planning frame when their frame
	// is fixed, local to their frame when mobile
	targetPose spatialmath.Pose
	targetRef  frameRef
	sensorPose spatialmath.Pose
	sensorRef  frameRef

	maxViewAngle float64
	weight       float64
}

// NewVisibilityConstraint creates an unconfigured visibility constraint
// bound to a robot model, a frame transform provider, and a collision
// geometry provider for the robot.
func NewVisibilityConstraint(
	model referenceframe.Model,
	tf referenceframe.Transforms,
	robot collision.Robot,
	logger golog.Logger,
) *VisibilityConstraint {
	return &VisibilityConstraint{
		model:        model,
		tf:           tf,
		logger:       logger,
		robot:        robot,
		world:        collision.NewWorld(),
		coneName:     "visibility-cone-" + uuid.NewString(),
		targetRadius: -1,
		weight:       minConstraintWeight,
	}
}

// Use configures the constraint from a description. The constraint is only
// enabled if the target radius is strictly positive; a cone side count below
// 3 is clamped with a warning.
func (c *VisibilityConstraint) Use(cfg VisibilityConstraintConfig) bool {
	c.targetRadius = math.Abs(cfg.TargetRadius)
	if cfg.TargetRadius <= minConstraintWeight {
		c.logger.Warnf("the radius of the target disc that must be visible should be positive")
	}

	if cfg.ConeSides < 3 {
		c.logger.Warnf("the number of sides for the visibility region must be 3 or more, assuming 3 instead of the specified %d", cfg.ConeSides)
		c.coneSides = 3
	} else {
		c.coneSides = cfg.ConeSides
	}

	// the points on the base circle of the cone that make up the cone sides
	c.points = make([]r3.Vector, 0, c.coneSides)
	delta := 2 * math.Pi / float64(c.coneSides)
	for i := 0; i < c.coneSides; i++ {
		a := float64(i) * delta
		c.points = append(c.points, r3.Vector{
			X: math.Sin(a) * c.targetRadius,
			Y: math.Cos(a) * c.targetRadius,
		})
	}

	targetPose := cfg.TargetPose.parsePose(c.logger, "visibility constraint target")
	resolvedTarget, targetRef, err := resolveFrame(c.tf, targetPose)
	if err != nil {
		c.logger.Errorf("visibility constraint target pose: %v", err)
		c.targetRadius = -1
		return false
	}
	c.targetPose = resolvedTarget
	c.targetRef = targetRef
	if !targetRef.mobile {
		// transform won't change, so apply it now
		for i := range c.points {
			c.points[i] = spatialmath.TransformPoint(c.targetPose, c.points[i])
		}
	}

	sensorPose := cfg.SensorPose.parsePose(c.logger, "visibility constraint sensor")
	resolvedSensor, sensorRef, err := resolveFrame(c.tf, sensorPose)
	if err != nil {
		c.logger.Errorf("visibility constraint sensor pose: %v", err)
		c.targetRadius = -1
		return false
	}
	c.sensorPose = resolvedSensor
	c.sensorRef = sensorRef

	c.weight = checkWeight(cfg.Weight, c.logger, "visibility constraint")
	c.maxViewAngle = cfg.MaxViewAngle

	return c.targetRadius > minConstraintWeight
}

// Decide evaluates the constraint against a state. A view-angle failure
// short-circuits with a zero score before the mesh and collision step; an
// occluded cone reports the penetration depth of the first contact as the
// score.
func (c *VisibilityConstraint) Decide(state referenceframe.State, verbose bool) (bool, float64) {
	if c.targetRadius <= minConstraintWeight {
		return true, 0
	}

	sensorPose, err := c.sensorRef.currentPose(c.tf, state, c.sensorPose)
	if err != nil {
		c.logger.Warnf("visibility constraint sensor pose: %v", err)
		return false, 0
	}
	targetPose, err := c.targetRef.currentPose(c.tf, state, c.targetPose)
	if err != nil {
		c.logger.Warnf("visibility constraint target pose: %v", err)
		return false, 0
	}

	if c.maxViewAngle > 0 {
		dir := targetPose.Point().Sub(sensorPose.Point()).Normalize()
		normal := targetPose.Orientation().RotationMatrix().Col(2)
		if ang := math.Acos(dir.Dot(normal)); c.maxViewAngle < ang {
			if verbose {
				c.logger.Infof("visibility constraint violated because the view angle is %f (above the maximum allowed of %f)", ang, c.maxViewAngle)
			}
			return false, 0
		}
	}

	cone := c.visibilityCone(sensorPose, targetPose)
	if cone == nil {
		return false, 0
	}

	// the cone is a transient obstacle; the world holds nothing else
	c.world.Clear()
	c.world.AddObstacle(c.coneName, cone)
	contact, err := c.world.CheckRobotCollision(c.robot, state)
	if err != nil {
		c.logger.Warnf("visibility constraint collision check: %v", err)
		return false, 0
	}

	if verbose {
		if contact != nil {
			c.logger.Infof("visibility constraint not satisfied, cone %s occluded by %q at depth %f", cone, contact.RobotGeometry, contact.Depth)
		} else {
			c.logger.Infof("visibility constraint satisfied, cone %s", cone)
		}
	}

	if contact != nil {
		return false, contact.Depth
	}
	return true, 0
}

// visibilityCone synthesizes the triangulated cone connecting the sensor
// origin to the target disc: vertex 0 is the sensor origin, vertex 1 the
// disc center, and vertices 2..sides+1 the disc boundary, with one triangle
// fan forming the cone sides and one the base.
func (c *VisibilityConstraint) visibilityCone(sensorPose, targetPose spatialmath.Pose) *spatialmath.Mesh {
	points := c.points
	if c.targetRef.mobile {
		points = make([]r3.Vector, 0, len(c.points))
		for _, pt := range c.points {
			points = append(points, spatialmath.TransformPoint(targetPose, pt))
		}
	}
	if len(points) < 3 {
		return nil
	}

	vertices := make([]r3.Vector, 0, len(points)+2)
	vertices = append(vertices, sensorPose.Point(), targetPose.Point())
	vertices = append(vertices, points...)

	n := len(points)
	triangles := make([]*spatialmath.Triangle, 0, 2*n)
	for i := 1; i < n; i++ {
		// a side of the cone, using the sensor origin
		triangles = append(triangles, spatialmath.NewTriangle(vertices[i+1], vertices[0], vertices[i+2]))
		// a part of the base of the cone, using the disc center
		triangles = append(triangles, spatialmath.NewTriangle(vertices[i+1], vertices[1], vertices[i+2]))
	}
	// closing triangles wrapping from the last boundary point back to the first
	triangles = append(triangles,
		spatialmath.NewTriangle(vertices[n+1], vertices[0], vertices[2]),
		spatialmath.NewTriangle(vertices[n+1], vertices[1], vertices[2]),
	)

	return spatialmath.NewMesh(spatialmath.NewZeroPose(), triangles, c.coneName)
}

// Enabled reports whether the constraint was successfully configured.
func (c *VisibilityConstraint) Enabled() bool {
	return c.targetRadius > minConstraintWeight
}

// Clear resets the constraint to the disabled state.
func (c *VisibilityConstraint) Clear() {
	c.targetRadius = -1
}

// String returns a human readable description of the constraint.
func (c *VisibilityConstraint) String() string {
	if !c.Enabled() {
		return "No constraint"
	}
	return fmt.Sprintf("Visibility constraint for sensor in frame %q using target in frame %q, target radius %f, using %d sides",
		c.sensorRef.frame, c.targetRef.frame, c.targetRadius, c.coneSides)
}
