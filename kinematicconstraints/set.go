package kinematicconstraints

import (
	"fmt"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/armlab-robotics/kinconstraint/collision"
	"github.com/armlab-robotics/kinconstraint/referenceframe"
)

// ConstraintSet aggregates constraints of every kind and evaluates them as a
// conjunction. Constraints that failed to configure stay in the set; they
// evaluate as satisfied with a zero score but keep the set's count honest
// against the descriptions it was given.
type ConstraintSet struct {
	model  referenceframe.Model
	tf     referenceframe.Transforms
	robot  collision.Robot
	logger golog.Logger

	constraints []Constraint

	jointConstraints       []*JointConstraint
	positionConstraints    []*PositionConstraint
	orientationConstraints []*OrientationConstraint
	visibilityConstraints  []*VisibilityConstraint

	bundle Bundle
}

// NewConstraintSet creates an empty constraint set bound to a robot model, a
// frame transform provider, and a collision geometry provider for the robot.
func NewConstraintSet(
	model referenceframe.Model,
	tf referenceframe.Transforms,
	robot collision.Robot,
	logger golog.Logger,
) *ConstraintSet {
	return &ConstraintSet{model: model, tf: tf, robot: robot, logger: logger}
}

// AddJointConstraints configures and adds one joint constraint per
// description. It returns true only if every description configured
// successfully; failed ones are still added, accompanied by an error.
func (s *ConstraintSet) AddJointConstraints(cfgs []JointConstraintConfig) (bool, error) {
	ok := true
	var errs error
	for _, cfg := range cfgs {
		jc := NewJointConstraint(s.model, s.logger)
		if !jc.Use(cfg) {
			ok = false
			errs = multierr.Append(errs, errors.Errorf("could not configure constraint for joint %q", cfg.JointName))
		}
		s.jointConstraints = append(s.jointConstraints, jc)
		s.constraints = append(s.constraints, jc)
		s.bundle.JointConstraints = append(s.bundle.JointConstraints, cfg)
	}
	return ok, errs
}

// AddPositionConstraints configures and adds one position constraint per
// description. It returns true only if every description configured
// successfully; failed ones are still added, accompanied by an error.
func (s *ConstraintSet) AddPositionConstraints(cfgs []PositionConstraintConfig) (bool, error) {
	ok := true
	var errs error
	for _, cfg := range cfgs {
		pc := NewPositionConstraint(s.model, s.tf, s.logger)
		if !pc.Use(cfg) {
			ok = false
			errs = multierr.Append(errs, errors.Errorf("could not configure position constraint for link %q", cfg.LinkName))
		}
		s.positionConstraints = append(s.positionConstraints, pc)
		s.constraints = append(s.constraints, pc)
		s.bundle.PositionConstraints = append(s.bundle.PositionConstraints, cfg)
	}
	return ok, errs
}

// AddOrientationConstraints configures and adds one orientation constraint
// per description. It returns true only if every description configured
// successfully; failed ones are still added, accompanied by an error.
func (s *ConstraintSet) AddOrientationConstraints(cfgs []OrientationConstraintConfig) (bool, error) {
	ok := true
	var errs error
	for _, cfg := range cfgs {
		oc := NewOrientationConstraint(s.model, s.tf, s.logger)
		if !oc.Use(cfg) {
			ok = false
			errs = multierr.Append(errs, errors.Errorf("could not configure orientation constraint for link %q", cfg.LinkName))
		}
		s.orientationConstraints = append(s.orientationConstraints, oc)
		s.constraints = append(s.constraints, oc)
		s.bundle.OrientationConstraints = append(s.bundle.OrientationConstraints, cfg)
	}
	return ok, errs
}

// AddVisibilityConstraints configures and adds one visibility constraint per
// description. It returns true only if every description configured
// successfully; failed ones are still added, accompanied by an error.
func (s *ConstraintSet) AddVisibilityConstraints(cfgs []VisibilityConstraintConfig) (bool, error) {
	ok := true
	var errs error
	for _, cfg := range cfgs {
		vc := NewVisibilityConstraint(s.model, s.tf, s.robot, s.logger)
		if !vc.Use(cfg) {
			ok = false
			errs = multierr.Append(errs, errors.New("could not configure visibility constraint"))
		}
		s.visibilityConstraints = append(s.visibilityConstraints, vc)
		s.constraints = append(s.constraints, vc)
		s.bundle.VisibilityConstraints = append(s.bundle.VisibilityConstraints, cfg)
	}
	return ok, errs
}

// AddBundle configures and adds every constraint a bundle describes. It
// returns true only if every description configured successfully.
func (s *ConstraintSet) AddBundle(bundle Bundle) (bool, error) {
	jointOK, jointErr := s.AddJointConstraints(bundle.JointConstraints)
	posOK, posErr := s.AddPositionConstraints(bundle.PositionConstraints)
	orientOK, orientErr := s.AddOrientationConstraints(bundle.OrientationConstraints)
	visOK, visErr := s.AddVisibilityConstraints(bundle.VisibilityConstraints)
	return jointOK && posOK && orientOK && visOK, multierr.Combine(jointErr, posErr, orientErr, visErr)
}

// Decide evaluates every constraint in the set against a state, never
// short-circuiting. The set is satisfied only if every constraint is, and the
// aggregate score is the sum of the individual scores. An empty set is
// trivially satisfied with a zero score.
func (s *ConstraintSet) Decide(state referenceframe.State, verbose bool) (bool, float64) {
	result := true
	score := 0.0
	for _, c := range s.constraints {
		ok, dist := c.Decide(state, verbose)
		result = result && ok
		score += dist
	}
	return result, score
}

// Clear removes every constraint from the set.
func (s *ConstraintSet) Clear() {
	s.constraints = nil
	s.jointConstraints = nil
	s.positionConstraints = nil
	s.orientationConstraints = nil
	s.visibilityConstraints = nil
	s.bundle = Bundle{}
}

// Constraints returns every constraint in the set, in insertion order within
// each kind.
func (s *ConstraintSet) Constraints() []Constraint {
	return s.constraints
}

// JointConstraints returns the joint constraints in the set.
func (s *ConstraintSet) JointConstraints() []*JointConstraint {
	return s.jointConstraints
}

// PositionConstraints returns the position constraints in the set.
func (s *ConstraintSet) PositionConstraints() []*PositionConstraint {
	return s.positionConstraints
}

// OrientationConstraints returns the orientation constraints in the set.
func (s *ConstraintSet) OrientationConstraints() []*OrientationConstraint {
	return s.orientationConstraints
}

// VisibilityConstraints returns the visibility constraints in the set.
func (s *ConstraintSet) VisibilityConstraints() []*VisibilityConstraint {
	return s.visibilityConstraints
}

// Bundle returns the descriptions every constraint in the set was configured
// from, including ones that failed to configure.
func (s *ConstraintSet) Bundle() Bundle {
	return s.bundle
}

// String returns a human readable description of the set.
func (s *ConstraintSet) String() string {
	if len(s.constraints) == 0 {
		return "No constraints"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Constraint set with %d constraints:\n", len(s.constraints))
	for _, c := range s.constraints {
		fmt.Fprintf(&sb, "  %s\n", c)
	}
	return sb.String()
}
