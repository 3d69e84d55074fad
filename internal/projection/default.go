package projection

import (
	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/geodesy"
)

// std is the process-wide Service. It is created with coord.DefaultType at
// program start, changed only through SetProjectionType and lives until exit.
var std = NewService(coord.DefaultType)

// Default returns the process-wide Service.
func Default() *Service { return std }

// CreateProjection calls CreateProjection on the process-wide Service.
func CreateProjection(lat, lon, alt float64) coord.Projection {
	return std.CreateProjection(lat, lon, alt)
}

// CreateProjectionLLA calls CreateProjectionLLA on the process-wide Service.
func CreateProjectionLLA(lla geodesy.LatLonAlt) coord.Projection {
	return std.CreateProjectionLLA(lla)
}

// CreateProjectionPosition calls CreateProjectionPosition on the process-wide Service.
func CreateProjectionPosition(pos geodesy.Position) coord.Projection {
	return std.CreateProjectionPosition(pos)
}

// ConflictRange calls ConflictRange on the process-wide Service.
func ConflictRange(lat, accuracy float64) float64 {
	return std.ConflictRange(lat, accuracy)
}

// MaxRange calls MaxRange on the process-wide Service.
func MaxRange() float64 {
	return std.MaxRange()
}

// SetProjectionType switches the process-wide projection type. This affects
// every caller in the process.
func SetProjectionType(t coord.ProjectionType) {
	std.SetProjectionType(t)
}

// CurrentType returns the process-wide projection type.
func CurrentType() coord.ProjectionType {
	return std.ProjectionType()
}
