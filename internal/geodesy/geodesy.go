// Package geodesy holds the value types shared by projections and the
// trajectory tools: geodetic points, local Euclidean vectors and the generic
// Position that may be either.
package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Spherical and ellipsoidal earth parameters.
const (
	// EarthRadius is the spherical radius (meters) for which one nautical mile
	// is exactly one arc minute.
	EarthRadius = 6366707.0195

	// WGS84A is the WGS-84 semi-major axis in meters.
	WGS84A = 6378137.0
	// WGS84F is the WGS-84 flattening.
	WGS84F = 1.0 / 298.257223563
	// WGS84E2 is the WGS-84 first eccentricity squared.
	WGS84E2 = WGS84F * (2 - WGS84F)
)

// LatLonAlt is a geodetic point. Latitude and longitude are in radians,
// altitude in meters above the ellipsoid.
type LatLonAlt struct {
	Lat, Lon, Alt float64
}

// ZeroLLA is the geodetic zero point (0, 0, 0).
var ZeroLLA = LatLonAlt{}

// LLA returns a LatLonAlt from radians and meters.
func LLA(lat, lon, alt float64) LatLonAlt {
	return LatLonAlt{Lat: lat, Lon: lon, Alt: alt}
}

// LLADegrees returns a LatLonAlt from degrees and meters.
func LLADegrees(latDeg, lonDeg, alt float64) LatLonAlt {
	return LatLonAlt{
		Lat: (s1.Angle(latDeg) * s1.Degree).Radians(),
		Lon: (s1.Angle(lonDeg) * s1.Degree).Radians(),
		Alt: alt,
	}
}

// LatDeg returns the latitude in degrees.
func (p LatLonAlt) LatDeg() float64 { return s1.Angle(p.Lat).Degrees() }

// LonDeg returns the longitude in degrees.
func (p LatLonAlt) LonDeg() float64 { return s1.Angle(p.Lon).Degrees() }

// WithAlt returns a copy of p at altitude alt.
func (p LatLonAlt) WithAlt(alt float64) LatLonAlt {
	p.Alt = alt
	return p
}

// LatLng converts the horizontal part of p to an s2.LatLng.
func (p LatLonAlt) LatLng() s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(p.Lat), Lng: s1.Angle(p.Lon)}
}

// DistanceH returns the great-circle distance in meters between a and b on
// the sphere of radius EarthRadius, ignoring altitude.
func DistanceH(a, b LatLonAlt) float64 {
	return a.LatLng().Distance(b.LatLng()).Radians() * EarthRadius
}

// Interpolate returns the point a fraction f of the way from a to b along the
// great circle. Altitude is interpolated linearly.
func Interpolate(a, b LatLonAlt, f float64) LatLonAlt {
	pt := s2.Interpolate(f, s2.PointFromLatLng(a.LatLng()), s2.PointFromLatLng(b.LatLng()))
	ll := s2.LatLngFromPoint(pt)
	return LatLonAlt{
		Lat: ll.Lat.Radians(),
		Lon: ll.Lng.Radians(),
		Alt: a.Alt + (b.Alt-a.Alt)*f,
	}
}

// NormalizeLon wraps a longitude difference into [-pi, pi].
func NormalizeLon(lon float64) float64 {
	return math.Remainder(lon, 2*math.Pi)
}
