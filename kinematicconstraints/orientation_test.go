package kinematicconstraints

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

func TestOrientationConstraintUse(t *testing.T) {
	logger := golog.NewTestLogger(t)
	oc := NewOrientationConstraint(testModel(), testTransforms(), logger)
	test.That(t, oc.Enabled(), test.ShouldBeFalse)

	// unknown link
	test.That(t, oc.Use(OrientationConstraintConfig{LinkName: "hand"}), test.ShouldBeFalse)

	// unresolvable fixed frames are impossible here since unknown frames are
	// treated as mobile; a malformed quaternion still configures, as identity
	test.That(t, oc.Use(OrientationConstraintConfig{
		LinkName:       "ee",
		Orientation:    QuaternionConfig{},
		RollTolerance:  0.1,
		PitchTolerance: 0.1,
		YawTolerance:   0.1,
		Weight:         1,
	}), test.ShouldBeTrue)
	test.That(t, oc.Enabled(), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()
	state.SetLinkPose("ee", spatialmath.NewZeroPose())
	ok, score := oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0, 1e-8)

	oc.Clear()
	test.That(t, oc.Enabled(), test.ShouldBeFalse)
	ok, score = oc.Decide(referenceframe.NewBasicState(), false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldEqual, 0)
}

func TestOrientationConstraintDecide(t *testing.T) {
	logger := golog.NewTestLogger(t)
	oc := NewOrientationConstraint(testModel(), testTransforms(), logger)
	test.That(t, oc.Use(OrientationConstraintConfig{
		LinkName:       "ee",
		Orientation:    QuaternionConfig{W: 1},
		RollTolerance:  0.2,
		PitchTolerance: 0.2,
		YawTolerance:   0.2,
		Weight:         2,
	}), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()

	// link missing from the state
	ok, score := oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldEqual, 0)

	// exact match
	state.SetLinkPose("ee", spatialmath.NewZeroPose())
	ok, score = oc.Decide(state, true)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0, 1e-8)

	// a small yaw error within tolerance still scores
	state.SetLinkPose("ee", spatialmath.NewPoseFromOrientation(&spatialmath.EulerAngles{Yaw: 0.1}))
	ok, score = oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 2*0.1, 1e-8)

	// yaw past tolerance
	state.SetLinkPose("ee", spatialmath.NewPoseFromOrientation(&spatialmath.EulerAngles{Yaw: 0.3}))
	ok, score = oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldAlmostEqual, 2*0.3, 1e-8)

	// roll past tolerance, even with yaw and pitch exact
	state.SetLinkPose("ee", spatialmath.NewPoseFromOrientation(&spatialmath.EulerAngles{Roll: -0.25}))
	ok, score = oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldAlmostEqual, 2*0.25, 1e-8)
}

func TestOrientationConstraintDesiredOffset(t *testing.T) {
	logger := golog.NewTestLogger(t)
	oc := NewOrientationConstraint(testModel(), testTransforms(), logger)
	// desired is a 0.5 yaw; the error is measured from it, not from identity
	desired := (&spatialmath.EulerAngles{Yaw: 0.5}).Quaternion()
	test.That(t, oc.Use(OrientationConstraintConfig{
		LinkName:       "ee",
		Orientation:    QuaternionConfig{W: desired.Real, X: desired.Imag, Y: desired.Jmag, Z: desired.Kmag},
		RollTolerance:  0.1,
		PitchTolerance: 0.1,
		YawTolerance:   0.1,
		Weight:         1,
	}), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()
	state.SetLinkPose("ee", spatialmath.NewPoseFromOrientation(&spatialmath.EulerAngles{Yaw: 0.55}))
	ok, score := oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0.05, 1e-8)

	state.SetLinkPose("ee", spatialmath.NewZeroPose())
	ok, score = oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldAlmostEqual, 0.5, 1e-8)
}

func TestOrientationConstraintMobileFrame(t *testing.T) {
	logger := golog.NewTestLogger(t)
	oc := NewOrientationConstraint(testModel(), testTransforms(), logger)
	// desired orientation rides the gripper frame
	test.That(t, oc.Use(OrientationConstraintConfig{
		LinkName:       "ee",
		Frame:          "gripper",
		Orientation:    QuaternionConfig{W: 1},
		RollTolerance:  0.1,
		PitchTolerance: 0.1,
		YawTolerance:   0.1,
		Weight:         1,
	}), test.ShouldBeTrue)

	state := referenceframe.NewBasicState()
	state.SetLinkPose("gripper", spatialmath.NewPose(r3.Vector{X: 3}, &spatialmath.EulerAngles{Yaw: 0.5}))

	// the link matches the frame orientation
	state.SetLinkPose("ee", spatialmath.NewPoseFromOrientation(&spatialmath.EulerAngles{Yaw: 0.5}))
	ok, score := oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, score, test.ShouldAlmostEqual, 0, 1e-8)

	// the link lags the frame by more than the tolerance
	state.SetLinkPose("ee", spatialmath.NewZeroPose())
	ok, score = oc.Decide(state, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldAlmostEqual, 0.5, 1e-8)

	// a mobile frame missing from the state fails the evaluation
	emptyState := referenceframe.NewBasicState()
	emptyState.SetLinkPose("ee", spatialmath.NewZeroPose())
	ok, score = oc.Decide(emptyState, false)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, score, test.ShouldEqual, 0)
}
