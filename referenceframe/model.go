// Package referenceframe defines the robot model metadata, kinematic state,
// and reference frame resolution consumed by constraint evaluation.
package referenceframe

// Joint describes a single joint of a robot model: its name, its number of
// degrees of freedom, and whether it is an angularly continuous joint that
// wraps at +/- pi.
type Joint struct {
	Name       string `json:"name"`
	DoF        int    `json:"dof"`
	Continuous bool   `json:"continuous,omitempty"`
}

// Link describes a single rigid link of a robot model.
type Link struct {
	Name string `json:"name"`
}

// Model provides access to the metadata of a robot's joints and links. The
// model is shared, externally owned, and expected to outlive anything
// constructed against it.
type Model interface {
	Joint(name string) (*Joint, error)
	Link(name string) (*Link, error)
}

// SimpleModel is a map-backed Model implementation.
type SimpleModel struct {
	joints map[string]*Joint
	links  map[string]*Link
}

// NewSimpleModel creates a Model from lists of joint and link metadata.
func NewSimpleModel(joints []*Joint, links []*Link) *SimpleModel {
	model := &SimpleModel{
		joints: make(map[string]*Joint, len(joints)),
		links:  make(map[string]*Link, len(links)),
	}
	for _, joint := range joints {
		model.joints[joint.Name] = joint
	}
	for _, link := range links {
		model.links[link.Name] = link
	}
	return model
}

// Joint returns the named joint's metadata.
func (m *SimpleModel) Joint(name string) (*Joint, error) {
	joint, ok := m.joints[name]
	if !ok {
		return nil, NewJointNotFoundError(name)
	}
	return joint, nil
}

// Link returns the named link's metadata.
func (m *SimpleModel) Link(name string) (*Link, error) {
	link, ok := m.links[name]
	if !ok {
		return nil, NewLinkNotFoundError(name)
	}
	return link, nil
}
