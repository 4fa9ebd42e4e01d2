package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Mesh is a collision geometry that represents a set of triangles that
// represent a mesh. Triangle points are in the frame of the mesh, like the
// corners of a box, so containment and distance queries transform them
// through the mesh pose.
type Mesh struct {
	pose      Pose
	triangles []*Triangle
	label     string
}

// A fixed, deliberately non-axis-aligned ray direction for the containment
// parity test, so that rays almost never graze triangle edges of
// axis-aligned input meshes.
var meshContainmentRay = r3.Vector{X: 0.3574067443365933, Y: 0.5636629649484525, Z: 0.7448684353338936}

// NewMesh creates a mesh from the given pose and triangles.
func NewMesh(pose Pose, triangles []*Triangle, label string) *Mesh {
	return &Mesh{
		pose:      pose,
		triangles: triangles,
		label:     label,
	}
}

// String returns a human readable string that represents the mesh.
func (m *Mesh) String() string {
	pt := m.pose.Point()
	return fmt.Sprintf("Type: Mesh | Position: X:%.1f, Y:%.1f, Z:%.1f | Triangles: %d", pt.X, pt.Y, pt.Z, len(m.triangles))
}

// Pose returns the pose of the mesh.
func (m *Mesh) Pose() Pose {
	return m.pose
}

// Triangles returns the triangles associated with the mesh, in the mesh
// frame.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Label returns the label of this mesh.
func (m *Mesh) Label() string {
	return m.label
}

// SetLabel sets the label of this mesh.
func (m *Mesh) SetLabel(label string) {
	m.label = label
}

// Transform premultiplies the mesh pose with a transform, allowing the mesh
// to be moved in space. Triangle points are in the frame of the mesh so they
// are not transformed.
func (m *Mesh) Transform(toPremultiply Pose) Geometry {
	return &Mesh{
		pose:      Compose(toPremultiply, m.pose),
		triangles: m.triangles,
		label:     m.label,
	}
}

// ContainsPoint reports whether the given point is inside the mesh, using a
// ray-crossing parity test. The result is only meaningful for closed meshes.
func (m *Mesh) ContainsPoint(pt r3.Vector) bool {
	return m.pointDistance(pt) <= floatEpsilon
}

// CollidesWith checks if the given mesh collides with the given geometry.
func (m *Mesh) CollidesWith(g Geometry) (bool, error) {
	dist, err := m.DistanceFrom(g)
	if err != nil {
		return true, err
	}
	return dist <= floatEpsilon, nil
}

// DistanceFrom returns the distance between the mesh surface and the given
// geometry; non-positive on penetration.
func (m *Mesh) DistanceFrom(g Geometry) (float64, error) {
	switch other := g.(type) {
	case *sphere:
		return other.DistanceFrom(m)
	case *point:
		return m.pointDistance(other.position), nil
	default:
		return math.Inf(1), newCollisionTypeUnsupportedError(m, g)
	}
}

// pointDistance returns the signed distance from the mesh surface to a
// point, negative when the point is inside the closed mesh.
func (m *Mesh) pointDistance(pt r3.Vector) float64 {
	if len(m.triangles) == 0 {
		return math.Inf(1)
	}
	// work in the mesh frame
	local := PoseBetween(m.pose, NewPoseFromPoint(pt)).Point()

	bestDist := math.Inf(1)
	crossings := 0
	for _, tri := range m.triangles {
		closest := tri.ClosestPointToPoint(local)
		if dist := local.Sub(closest).Norm(); dist < bestDist {
			bestDist = dist
		}
		if _, hit := tri.rayIntersection(local, meshContainmentRay); hit {
			crossings++
		}
	}
	if crossings%2 == 1 {
		return -bestDist
	}
	return bestDist
}
