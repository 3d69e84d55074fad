package projection

import (
	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/geodesy"
)

// GetProjection returns a projection of the current type anchored at (lat, lon, alt).
//
// Deprecated: Use CreateProjection.
func GetProjection(lat, lon, alt float64) coord.Projection {
	return CreateProjection(lat, lon, alt)
}

// GetProjectionLLA returns a projection of the current type anchored at lla.
//
// Deprecated: Use CreateProjectionLLA.
func GetProjectionLLA(lla geodesy.LatLonAlt) coord.Projection {
	return CreateProjectionLLA(lla)
}

// ProjectionConflictRange returns the maximum segment length for the current type.
//
// Deprecated: Use ConflictRange.
func ProjectionConflictRange(lat, accuracy float64) float64 {
	return ConflictRange(lat, accuracy)
}

// ProjectionMaxRange returns the maximum valid range for the current type.
//
// Deprecated: Use MaxRange.
func ProjectionMaxRange() float64 {
	return MaxRange()
}

// GetProjectionType returns the current projection type.
//
// Deprecated: Use CurrentType.
func GetProjectionType() coord.ProjectionType {
	return CurrentType()
}

// GetProjectionTypeFromString parses a projection type name.
//
// Deprecated: Use ProjectionTypeFromString.
func GetProjectionTypeFromString(name string) (coord.ProjectionType, error) {
	return ProjectionTypeFromString(name)
}
