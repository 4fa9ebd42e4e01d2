package kinematicconstraints

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

func TestPositionConstraintUse(t *testing.T) {
	logger := golog.NewTestLogger(t)
	pc := NewPositionConstraint(testModel(), testTransforms(), logger)
	test.That(t, pc.Enabled(), test.ShouldBeFalse)

	// unknown link
	test.That(t, pc.Use(PositionConstraintConfig{LinkName: "hand"}), test.ShouldBeFalse)

	// bad region shape
	test.That(t, pc.Use(PositionConstraintConfig{
		LinkName: "ee",
		Region:   spatialmath.GeometryConfig{Type: "sphere", R: 0},
	}), test.ShouldBeFalse)
	test.That(t, pc.Enabled(), test.ShouldBeFalse)

	test.That(t, pc.Use(PositionConstraintConfig{
		LinkName: "ee",
		Region:   spatialmath.GeometryConfig{Type: "sphere", R: 1},
		Weight:   1,
	}), test.ShouldBeTrue)
	test.That(t, pc.Enabled(), test.ShouldBeTrue)

	pc.Clear()
	test.That(t, pc.Enabled(), test.ShouldBeFalse)
	ok, score := pc.Decide(referenceframe.NewBasicState(), false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldEqual, 0)
}

func TestPositionConstraintDecide(t *testing.T) {
	logger := golog.NewTestLogger(t)
	pc := NewPositionConstraint(testModel(), testTransforms(), logger)
	test.That(t, pc.Use(PositionConstraintConfig{
		LinkName:   "ee",
		Region:     spatialmath.GeometryConfig{Type: "sphere", R: 1},
		RegionPose: PoseInFrameConfig{Point: r3.Vector{X: 5}, Orientation: QuaternionConfig{W: 1}},
		Weight:     2,
	}), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()

	// link missing from the state
	ok, score := pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldEqual, 0)

	// link at the region center: satisfied with a zero error distance
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 5}))
	ok, score = pc.Decide(state, true)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0, 1e-8)

	// inside the region but off center: still satisfied, nonzero score
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 5.5}))
	ok, score = pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 2*0.5, 1e-8)

	// outside the region
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 10}))
	ok, score = pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldAlmostEqual, 2*5, 1e-8)
}

func TestPositionConstraintTargetOffset(t *testing.T) {
	logger := golog.NewTestLogger(t)
	pc := NewPositionConstraint(testModel(), testTransforms(), logger)
	test.That(t, pc.Use(PositionConstraintConfig{
		LinkName:     "ee",
		TargetOffset: r3.Vector{X: 1},
		Region:       spatialmath.GeometryConfig{Type: "sphere", R: 0.5},
		RegionPose:   PoseInFrameConfig{Point: r3.Vector{Y: 2}, Orientation: QuaternionConfig{W: 1}},
		Weight:       1,
	}), test.ShouldBeTrue)

	// the offset rides the link orientation: with the link rotated a quarter
	// turn about Z, a +X offset points along +Y
	state := referenceframe.NewBasicState()
	state.SetLinkPose("ee", spatialmath.NewPose(r3.Vector{Y: 1}, &spatialmath.EulerAngles{Yaw: 1.5707963267948966}))
	ok, score := pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0, 1e-8)
}

func TestPositionConstraintFixedFrame(t *testing.T) {
	logger := golog.NewTestLogger(t)
	pc := NewPositionConstraint(testModel(), testTransforms(), logger)
	// a region posed in the fixed table frame is resolved into the planning
	// frame once at configuration time
	test.That(t, pc.Use(PositionConstraintConfig{
		LinkName:   "ee",
		Region:     spatialmath.GeometryConfig{Type: "box", X: 2, Y: 2, Z: 2},
		RegionPose: PoseInFrameConfig{Frame: "table", Point: r3.Vector{X: 1}, Orientation: QuaternionConfig{W: 1}},
		Weight:     1,
	}), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 101}))
	ok, score := pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0, 1e-8)

	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
	ok, _ = pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestPositionConstraintMobileFrame(t *testing.T) {
	logger := golog.NewTestLogger(t)
	pc := NewPositionConstraint(testModel(), testTransforms(), logger)
	// the gripper frame is not fixed, so the region follows it through the
	// state on every evaluation
	test.That(t, pc.Use(PositionConstraintConfig{
		LinkName:   "ee",
		Region:     spatialmath.GeometryConfig{Type: "sphere", R: 1},
		RegionPose: PoseInFrameConfig{Frame: "gripper", Orientation: QuaternionConfig{W: 1}},
		Weight:     1,
	}), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()
	state.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 5.5}))
	state.SetLinkPose("gripper", spatialmath.NewPoseFromPoint(r3.Vector{X: 5}))
	ok, score := pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0.5, 1e-8)

	// the region moved with its frame
	state.SetLinkPose("gripper", spatialmath.NewPoseFromPoint(r3.Vector{X: 20}))
	ok, score = pc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldAlmostEqual, 14.5, 1e-8)

	// a mobile frame missing from the state fails the evaluation
	emptyState := referenceframe.NewBasicState()
	emptyState.SetLinkPose("ee", spatialmath.NewPoseFromPoint(r3.Vector{X: 5.5}))
	ok, score = pc.Decide(emptyState, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldEqual, 0)
}
