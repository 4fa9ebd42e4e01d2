package referenceframe

import (
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// State is a read-only view of a robot's kinematic state at one point in
// time: current joint values and derived global link poses. Implementations
// must be safe for concurrent reads; mutation is the owner's concern.
type State interface {
	// JointValues returns the current values of the named joint, one value
	// per degree of freedom.
	JointValues(name string) ([]float64, error)

	// LinkPose returns the current global pose of the named link, in the
	// planning frame.
	LinkPose(name string) (spatialmath.Pose, error)
}

// BasicState is a map-backed State implementation. The embedder owns
// mutation; Set calls must be externally serialized against readers.
type BasicState struct {
	jointValues map[string][]float64
	linkPoses   map[string]spatialmath.Pose
}

// NewBasicState creates an empty BasicState.
func NewBasicState() *BasicState {
	return &BasicState{
		jointValues: map[string][]float64{},
		linkPoses:   map[string]spatialmath.Pose{},
	}
}

// SetJoint sets the current values of the named joint.
func (s *BasicState) SetJoint(name string, values ...float64) {
	s.jointValues[name] = values
}

// SetLinkPose sets the current global pose of the named link.
func (s *BasicState) SetLinkPose(name string, pose spatialmath.Pose) {
	s.linkPoses[name] = pose
}

// JointValues returns the current values of the named joint.
func (s *BasicState) JointValues(name string) ([]float64, error) {
	values, ok := s.jointValues[name]
	if !ok {
		return nil, NewJointNotFoundError(name)
	}
	return values, nil
}

// LinkPose returns the current global pose of the named link.
func (s *BasicState) LinkPose(name string) (spatialmath.Pose, error) {
	pose, ok := s.linkPoses[name]
	if !ok {
		return nil, NewLinkNotFoundError(name)
	}
	return pose, nil
}
