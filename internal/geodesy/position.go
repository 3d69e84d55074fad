package geodesy

import "fmt"

// Position is either a geodetic point or a point in a Euclidean frame.
// The zero value is the Euclidean origin.
type Position struct {
	lla    LatLonAlt
	pt     Vect3
	latLon bool
}

// NewLatLonPosition returns a geodetic Position.
func NewLatLonPosition(lla LatLonAlt) Position {
	return Position{lla: lla, latLon: true}
}

// NewEuclideanPosition returns a Euclidean Position.
func NewEuclideanPosition(v Vect3) Position {
	return Position{pt: v}
}

// IsLatLon reports whether the position is geodetic.
func (p Position) IsLatLon() bool { return p.latLon }

// LLA returns the geodetic point. It is ZeroLLA for Euclidean positions.
func (p Position) LLA() LatLonAlt { return p.lla }

// Point returns the Euclidean point. It is the zero vector for geodetic positions.
func (p Position) Point() Vect3 { return p.pt }

// Alt returns the altitude (geodetic) or Z component (Euclidean).
func (p Position) Alt() float64 {
	if p.latLon {
		return p.lla.Alt
	}
	return p.pt.Z
}

func (p Position) String() string {
	if p.latLon {
		return fmt.Sprintf("(%.6f°, %.6f°, %.1fm)", p.lla.LatDeg(), p.lla.LonDeg(), p.lla.Alt)
	}
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", p.pt.X, p.pt.Y, p.pt.Z)
}
