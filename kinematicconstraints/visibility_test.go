package kinematicconstraints

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/armlab-robotics/kinconstraint/collision"
	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// sphereAtLinkRobot models the robot collision geometry as a single sphere
// centered on the ee link.
func sphereAtLinkRobot(radius float64) collision.Robot {
	return collision.RobotFunc(func(state referenceframe.State) ([]spatialmath.Geometry, error) {
		pose, err := state.LinkPose("ee")
		if err != nil {
			return nil, err
		}
		s, err := spatialmath.NewSphere(pose, radius, "ee")
		if err != nil {
			return nil, err
		}
		return []spatialmath.Geometry{s}, nil
	})
}

// testVisibilityConfig places the sensor 5 above a target disc at the
// origin, disc facing up.
func testVisibilityConfig() VisibilityConstraintConfig {
	return VisibilityConstraintConfig{
		TargetRadius: 0.5,
		ConeSides:    8,
		TargetPose:   PoseInFrameConfig{Orientation: QuaternionConfig{W: 1}},
		SensorPose:   PoseInFrameConfig{Point: r3.Vector{Z: 5}, Orientation: QuaternionConfig{W: 1}},
		Weight:       1,
	}
}

func TestVisibilityConstraintUse(t *testing.T) {
	logger := golog.NewTestLogger(t)
	vc := NewVisibilityConstraint(testModel(), testTransforms(), sphereAtLinkRobot(0.5), logger)
	test.That(t, vc.Enabled(), test.ShouldBeFalse)

	// a non-positive radius leaves the constraint disabled
	cfg := testVisibilityConfig()
	cfg.TargetRadius = 0
	test.That(t, vc.Use(cfg), test.ShouldBeFalse)
	test.That(t, vc.Enabled(), test.ShouldBeFalse)
	ok, score := vc.Decide(referenceframe.NewBasicState(), false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldEqual, 0)

	test.That(t, vc.Use(testVisibilityConfig()), test.ShouldBeTrue)
	test.That(t, vc.Enabled(), test.ShouldBeTrue)

	// too few cone sides are clamped up to 3, the constraint still works
	cfg = testVisibilityConfig()
	cfg.ConeSides = 1
	test.That(t, vc.Use(cfg), test.ShouldBeTrue)

	vc.Clear()
	test.That(t, vc.Enabled(), test.ShouldBeFalse)
	test.That(t, vc.String(), test.ShouldEqual, "No constraint")
}

func TestVisibilityConstraintDecide(t *testing.T) {
	logger := golog.NewTestLogger(t)
	vc := NewVisibilityConstraint(testModel(), testTransforms(), sphereAtLinkRobot(0.5), logger)
	test.That(t, vc.Use(testVisibilityConfig()), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()

	// robot well away from the sightline
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 10}))
	ok, score := vc.Decide(state, true)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldEqual, 0)

	// robot sphere sitting on the sightline between sensor and target
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{Z: 2}))
	ok, score = vc.Decide(state, true)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldBeGreaterThan, 0)

	// the robot's geometry provider failing fails the evaluation
	ok, score = vc.Decide(referenceframe.NewBasicState(), false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldEqual, 0)
}

func TestVisibilityConstraintViewAngle(t *testing.T) {
	logger := golog.NewTestLogger(t)
	vc := NewVisibilityConstraint(testModel(), testTransforms(), sphereAtLinkRobot(0.5), logger)

	// the sensor looks straight down at the disc but the disc faces up, so
	// the view angle is pi and any positive maximum rejects it before the
	// occlusion check
	cfg := testVisibilityConfig()
	cfg.MaxViewAngle = 0.5
	test.That(t, vc.Use(cfg), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 10}))
	ok, score := vc.Decide(state, true)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldEqual, 0)

	// flip the disc to face the sensor and the same pose passes
	facing := (&spatialmath.EulerAngles{Roll: math.Pi}).Quaternion()
	cfg.TargetPose.Orientation = QuaternionConfig{W: facing.Real, X: facing.Imag, Y: facing.Jmag, Z: facing.Kmag}
	test.That(t, vc.Use(cfg), test.ShouldBeTrue)
	ok, score = vc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldEqual, 0)
}

func TestVisibilityConstraintMobileFrames(t *testing.T) {
	logger := golog.NewTestLogger(t)
	vc := NewVisibilityConstraint(testModel(), testTransforms(), sphereAtLinkRobot(0.5), logger)

	// the sensor rides the gripper frame; the target disc stays fixed
	cfg := testVisibilityConfig()
	cfg.SensorPose = PoseInFrameConfig{Frame: "gripper", Orientation: QuaternionConfig{W: 1}}
	test.That(t, vc.Use(cfg), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()
	state.SetLinkPose("gripper", spatialmath.NewPoseFromPoint(r3.Vector{Z: 5}))

	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 10}))
	ok, score := vc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldEqual, 0)

	// the cone tracks the moved sensor frame
	state.SetLinkPose("gripper", spatialmath.NewPoseFromPoint(r3.Vector{X: 10, Z: 5}))
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 5, Z: 2.5}))
	ok, score = vc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldBeGreaterThan, 0)

	// the sensor frame missing from the state fails the evaluation
	emptyState := referenceframe.NewBasicState()
	ok, score = vc.Decide(emptyState, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldEqual, 0)
}
