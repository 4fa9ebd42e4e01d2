// Package collision implements the transient-obstacle collision checking
// used for visibility testing.
package collision

import (
	"github.com/pkg/errors"

	"github.com/armlab-robotics/kinconstraint/referenceframe"
	"github.com/armlab-robotics/kinconstraint/spatialmath"
)

// Robot produces the collision geometries of a robot for a given kinematic
// state, already posed in the planning frame.
type Robot interface {
	Geometries(state referenceframe.State) ([]spatialmath.Geometry, error)
}

// RobotFunc is a function adapter for the Robot interface.
type RobotFunc func(state referenceframe.State) ([]spatialmath.Geometry, error)

// Geometries calls the wrapped function.
func (f RobotFunc) Geometries(state referenceframe.State) ([]spatialmath.Geometry, error) {
	return f(state)
}

// Contact describes a single collision between a robot geometry and a world
// obstacle, with the penetration depth of the contact.
type Contact struct {
	RobotGeometry string
	Obstacle      string
	Depth         float64
}

// World owns a set of transient obstacles and answers whether a robot state
// collides with them. It is mutated by Clear and AddObstacle, so a World
// must be owned exclusively by one caller or externally synchronized.
type World struct {
	obstacles []spatialmath.Geometry
}

// NewWorld creates an empty collision world.
func NewWorld() *World {
	return &World{}
}

// Clear removes all obstacles from the world.
func (w *World) Clear() {
	w.obstacles = w.obstacles[:0]
}

// AddObstacle adds a named obstacle geometry to the world.
func (w *World) AddObstacle(name string, geometry spatialmath.Geometry) {
	geometry.SetLabel(name)
	w.obstacles = append(w.obstacles, geometry)
}

// CheckRobotCollision checks the robot's geometries at the given state
// against every obstacle in the world and returns the first contact found,
// or nil if the state is collision free.
func (w *World) CheckRobotCollision(robot Robot, state referenceframe.State) (*Contact, error) {
	if robot == nil {
		return nil, errors.New("no robot collision geometry provider")
	}
	geometries, err := robot.Geometries(state)
	if err != nil {
		return nil, errors.Wrap(err, "getting robot collision geometries")
	}
	for _, geometry := range geometries {
		for _, obstacle := range w.obstacles {
			dist, err := geometry.DistanceFrom(obstacle)
			if err != nil {
				return nil, errors.Wrapf(err, "checking %q against obstacle %q", geometry.Label(), obstacle.Label())
			}
			if dist <= 0 {
				return &Contact{
					RobotGeometry: geometry.Label(),
					Obstacle:      obstacle.Label(),
					Depth:         -dist,
				}, nil
			}
		}
	}
	return nil, nil
}
