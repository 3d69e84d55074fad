package coord

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pspoerri/airproj/internal/geodesy"
)

// ProjectionType identifies one projection algorithm of the closed set below.
type ProjectionType int

const (
	// Simple is an equirectangular projection scaled at the reference latitude.
	Simple ProjectionType = iota
	// ENU is the WGS-84 east-north-up tangent plane.
	ENU
	// Ortho is the spherical orthographic projection.
	Ortho
)

// DefaultType is the projection type selected at process start.
const DefaultType = ENU

// ErrUnknownProjectionType is returned when a name matches no ProjectionType.
var ErrUnknownProjectionType = errors.New("unknown projection type")

// Types returns every ProjectionType in declaration order.
func Types() []ProjectionType {
	return []ProjectionType{Simple, ENU, Ortho}
}

func (t ProjectionType) String() string {
	switch t {
	case Simple:
		return "SIMPLE"
	case ENU:
		return "ENU"
	case Ortho:
		return "ORTHO"
	default:
		return fmt.Sprintf("ProjectionType(%d)", int(t))
	}
}

// Valid reports whether t belongs to the closed set.
func (t ProjectionType) Valid() bool {
	return t >= Simple && t <= Ortho
}

// ParseProjectionType parses a projection name. Matching is case-insensitive
// and accepts the canonical names plus a few common aliases.
func ParseProjectionType(s string) (ProjectionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SIMPLE", "EQUIRECTANGULAR", "PLANAR":
		return Simple, nil
	case "ENU":
		return ENU, nil
	case "ORTHO", "ORTHOGRAPHIC":
		return Ortho, nil
	default:
		return 0, fmt.Errorf("%w: %q (supported: SIMPLE, ENU, ORTHO)", ErrUnknownProjectionType, s)
	}
}

// Projection converts geodetic points to and from a local Euclidean frame
// centered on a reference point. X is east, Y is north, Z is up.
type Projection interface {
	// Project maps a geodetic point into the local frame.
	Project(lla geodesy.LatLonAlt) geodesy.Vect3

	// Inverse maps a point of the local frame back to geodetic coordinates.
	Inverse(v geodesy.Vect3) geodesy.LatLonAlt

	// Reference returns the point the frame is anchored at.
	Reference() geodesy.LatLonAlt

	// Type returns the algorithm that produced this projection.
	Type() ProjectionType

	// AltitudePreserving reports whether Z is the input altitude passed
	// through unchanged rather than the height above the tangent plane.
	AltitudePreserving() bool
}

// Strategy creates projections of one type and describes where they stay valid.
type Strategy interface {
	Type() ProjectionType

	// New returns a projection anchored at ref.
	New(ref geodesy.LatLonAlt, preserveAlt bool) Projection

	// ConflictRange returns the longest segment (meters) at latitude lat
	// (radians) whose projection error stays within accuracy (meters).
	ConflictRange(lat, accuracy float64) float64

	// MaxRange returns the distance (meters) from the reference beyond which
	// projected values are meaningless.
	MaxRange() float64
}

// ForType returns the Strategy for t.
// Returns nil if t is not a known ProjectionType.
func ForType(t ProjectionType) Strategy {
	switch t {
	case Simple:
		return SimpleStrategy{}
	case ENU:
		return ENUStrategy{}
	case Ortho:
		return OrthoStrategy{}
	default:
		return nil
	}
}

// tangentPlaneRange is the segment length whose foreshortening on a plane
// tangent to a sphere of radius r, d - r sin(d/r) ~ d^3 / 6r^2, equals accuracy.
func tangentPlaneRange(r, accuracy float64) float64 {
	return math.Cbrt(6 * r * r * accuracy)
}

// clampRange applies the common envelope rules: no range for a non-positive
// accuracy budget, and never beyond the hard limit.
func clampRange(d, accuracy, maxRange float64) float64 {
	if !(accuracy > 0) {
		return 0
	}
	return math.Min(d, maxRange)
}
