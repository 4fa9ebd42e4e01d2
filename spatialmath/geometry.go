package spatialmath

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
)

// Geometry is an entry point with which to access all types of collision
// geometries. Geometries are immutable after creation except for their label;
// Transform returns a moved copy, leaving the receiver untouched.
type Geometry interface {
	Pose() Pose
	Label() string
	SetLabel(string)

	// Transform premultiplies the geometry pose with a transform, allowing
	// the geometry to be moved in space. A clone is returned.
	Transform(Pose) Geometry

	// ContainsPoint reports whether the given point lies inside (or on the
	// surface of) the geometry.
	ContainsPoint(r3.Vector) bool

	// CollidesWith returns whether the geometry intersects the argument.
	// Not every pair of geometry types is supported; an error is returned
	// for unsupported pairs.
	CollidesWith(Geometry) (bool, error)

	// DistanceFrom returns the separation distance to the argument. A
	// non-positive value means the geometries collide, and its magnitude is
	// the penetration depth.
	DistanceFrom(Geometry) (float64, error)

	fmt.Stringer

	// pointDistance is the signed distance from the geometry surface to a
	// point, negative when the point is inside.
	pointDistance(r3.Vector) float64
}

// GeometryConfig specifies the format of geometries specified through JSON
// configuration.
type GeometryConfig struct {
	Type string `json:"type"`

	// parameters used for defining a box's rectangular cross section
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	Z float64 `json:"z,omitempty"`

	// parameters used for defining a sphere or cylinder's circular cross
	// section; cylinders additionally use L for their length
	R float64 `json:"r,omitempty"`
	L float64 `json:"l,omitempty"`

	// parameters used for defining a mesh: a vertex list and triangles as
	// triples of indices into it
	Vertices  []r3.Vector `json:"vertices,omitempty"`
	Triangles [][3]int    `json:"triangles,omitempty"`

	Label string `json:"label,omitempty"`
}

// ParseConfig converts a GeometryConfig into the Geometry type it describes,
// at the given pose.
func (config *GeometryConfig) ParseConfig(pose Pose) (Geometry, error) {
	if pose == nil {
		pose = NewZeroPose()
	}
	switch strings.ToLower(config.Type) {
	case "sphere":
		return NewSphere(pose, config.R, config.Label)
	case "box":
		return NewBox(pose, r3.Vector{X: config.X, Y: config.Y, Z: config.Z}, config.Label)
	case "cylinder":
		return NewCylinder(pose, config.R, config.L, config.Label)
	case "mesh":
		triangles := make([]*Triangle, 0, len(config.Triangles))
		for _, indices := range config.Triangles {
			for _, index := range indices {
				if index < 0 || index >= len(config.Vertices) {
					return nil, newBadMeshIndexError(index, len(config.Vertices))
				}
			}
			triangles = append(triangles, NewTriangle(
				config.Vertices[indices[0]],
				config.Vertices[indices[1]],
				config.Vertices[indices[2]],
			))
		}
		return NewMesh(pose, triangles, config.Label), nil
	default:
		return nil, newGeometryTypeUnsupportedError(config.Type)
	}
}
