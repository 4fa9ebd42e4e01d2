package kinematicconstraints

import (
	"github.com/golang/geo/r3"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// testModel is a small arm-like model shared by the constraint tests: two
// revolute joints (one continuous), a multi-DoF joint, a fixed joint, and an
// end effector link.
func testModel() referenceframe.Model {
	return referenceframe.NewSimpleModel(
		[]*referenceframe.Joint{
			{Name: "shoulder", DoF: 1},
			{Name: "wrist", DoF: 1, Continuous: true},
			{Name: "gantry", DoF: 2},
			{Name: "mount", DoF: 0},
		},
		[]*referenceframe.Link{
			{Name: "ee"},
			{Name: "gripper"},
		},
	)
}

// testTransforms has a world planning frame and one fixed table frame; every
// other frame is mobile and resolves as a link pose of the state.
func testTransforms() referenceframe.Transforms {
	return referenceframe.NewStaticTransforms("world", map[string]spatialmath.Pose{
		"table": spatialmath.NewPoseFromPoint(r3.Vector{X: 100}),
	})
}
