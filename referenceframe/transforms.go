package referenceframe

import (
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// Transforms resolves named reference frames against a fixed planning frame.
// Fixed frames have a constant transform that can be resolved once; mobile
// frames are attached to moving bodies and must be re-resolved against a live
// State on every query.
type Transforms interface {
	// PlanningFrame returns the name of the fixed planning frame all poses
	// are ultimately expressed in.
	PlanningFrame() string

	// IsFixedFrame reports whether the named frame is statically
	// transformable into the planning frame.
	IsFixedFrame(name string) bool

	// TransformToPlanningFrame statically transforms a pose expressed in the
	// named fixed frame into the planning frame.
	TransformToPlanningFrame(pose spatialmath.Pose, name string) (spatialmath.Pose, error)

	// CurrentFrame resolves the current transform of the named frame into
	// the planning frame against the live state.
	CurrentFrame(state State, name string) (spatialmath.Pose, error)
}

// StaticTransforms is a Transforms implementation backed by a map of static
// frame poses. Frames absent from the map are treated as mobile and resolved
// as link poses of the live state.
type StaticTransforms struct {
	planningFrame string
	fixed         map[string]spatialmath.Pose
}

// NewStaticTransforms creates a Transforms from a planning frame name and a
// map of fixed frame poses expressed in that planning frame.
func NewStaticTransforms(planningFrame string, fixed map[string]spatialmath.Pose) *StaticTransforms {
	if fixed == nil {
		fixed = map[string]spatialmath.Pose{}
	}
	return &StaticTransforms{planningFrame: planningFrame, fixed: fixed}
}

// PlanningFrame returns the name of the planning frame.
func (st *StaticTransforms) PlanningFrame() string {
	return st.planningFrame
}

// IsFixedFrame reports whether the named frame has a static transform to the
// planning frame.
func (st *StaticTransforms) IsFixedFrame(name string) bool {
	if name == st.planningFrame || name == "" {
		return true
	}
	_, ok := st.fixed[name]
	return ok
}

// TransformToPlanningFrame statically transforms the given pose from the
// named frame into the planning frame.
func (st *StaticTransforms) TransformToPlanningFrame(pose spatialmath.Pose, name string) (spatialmath.Pose, error) {
	if name == st.planningFrame || name == "" {
		return pose, nil
	}
	framePose, ok := st.fixed[name]
	if !ok {
		return nil, NewFrameNotFoundError(name)
	}
	return spatialmath.Compose(framePose, pose), nil
}

// CurrentFrame resolves the current pose of the named frame in the planning
// frame. Fixed frames resolve statically; all other frames are assumed to be
// attached to the identically named link of the live state.
func (st *StaticTransforms) CurrentFrame(state State, name string) (spatialmath.Pose, error) {
	if name == st.planningFrame || name == "" {
		return spatialmath.NewZeroPose(), nil
	}
	if framePose, ok := st.fixed[name]; ok {
		return framePose, nil
	}
	return state.LinkPose(name)
}
