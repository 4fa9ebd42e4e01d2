package spatialmath

import (
	"github.com/pkg/errors"
)

func newBadGeometryDimensionsError(g Geometry) error {
	return errors.Errorf("invalid dimensions for geometry type %T", g)
}

func newGeometryTypeUnsupportedError(geometryType string) error {
	return errors.Errorf("geometry type %q unsupported", geometryType)
}

func newCollisionTypeUnsupportedError(g1, g2 Geometry) error {
	return errors.Errorf("collisions between %T and %T are not supported", g1, g2)
}

func newRotationMatrixInputError(m []float64) error {
	return errors.Errorf("input slice has %d elements, need exactly 9", len(m))
}

func newBadMeshIndexError(index, numVertices int) error {
	return errors.Errorf("triangle vertex index %d out of range for %d vertices", index, numVertices)
}
