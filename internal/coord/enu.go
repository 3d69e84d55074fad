package coord

import (
	"math"

	"github.com/pspoerri/airproj/internal/geodesy"
)

// ENUStrategy produces east-north-up tangent-plane projections on the WGS-84
// ellipsoid, computed through earth-centered earth-fixed (ECEF) coordinates.
type ENUStrategy struct{}

func (ENUStrategy) Type() ProjectionType { return ENU }

func (ENUStrategy) New(ref geodesy.LatLonAlt, preserveAlt bool) Projection {
	p := &ENUProjection{ref: ref, preserveAlt: preserveAlt}
	p.sinLat, p.cosLat = math.Sincos(ref.Lat)
	p.sinLon, p.cosLon = math.Sincos(ref.Lon)
	p.origin = toECEF(ref)
	return p
}

func (s ENUStrategy) ConflictRange(lat, accuracy float64) float64 {
	return clampRange(tangentPlaneRange(geodesy.WGS84A, accuracy), accuracy, s.MaxRange())
}

// MaxRange is a quarter of the equatorial great circle.
func (ENUStrategy) MaxRange() float64 {
	return geodesy.WGS84A * math.Pi / 2
}

// ENUProjection implements Projection for the ENU type.
//
// When altitude preserving, X and Y are computed for the point lowered (or
// raised) to the reference altitude and Z carries the input altitude.
type ENUProjection struct {
	ref            geodesy.LatLonAlt
	origin         geodesy.Vect3 // ref in ECEF
	sinLat, cosLat float64
	sinLon, cosLon float64
	preserveAlt    bool
}

func (p *ENUProjection) Type() ProjectionType         { return ENU }
func (p *ENUProjection) Reference() geodesy.LatLonAlt { return p.ref }
func (p *ENUProjection) AltitudePreserving() bool     { return p.preserveAlt }

func (p *ENUProjection) Project(lla geodesy.LatLonAlt) geodesy.Vect3 {
	if !p.preserveAlt {
		return p.toENU(toECEF(lla))
	}
	v := p.toENU(toECEF(lla.WithAlt(p.ref.Alt)))
	v.Z = lla.Alt
	return v
}

// maxInverseIter bounds the search for the reference-altitude surface point.
const maxInverseIter = 20

func (p *ENUProjection) Inverse(v geodesy.Vect3) geodesy.LatLonAlt {
	if !p.preserveAlt {
		return fromECEF(p.fromENU(v))
	}

	// Find the up component that puts (X, Y) at the reference altitude. The
	// height changes almost one-for-one with up, so a fixed-point step converges.
	up := -(v.X*v.X + v.Y*v.Y) / (2 * geodesy.WGS84A)
	var lla geodesy.LatLonAlt
	for i := 0; i < maxInverseIter; i++ {
		lla = fromECEF(p.fromENU(geodesy.Vect3{X: v.X, Y: v.Y, Z: up}))
		dh := lla.Alt - p.ref.Alt
		if math.Abs(dh) < 1e-9 {
			break
		}
		up -= dh
	}
	lla.Alt = v.Z
	return lla
}

func (p *ENUProjection) toENU(ecef geodesy.Vect3) geodesy.Vect3 {
	d := ecef.Sub(p.origin)
	return geodesy.Vect3{
		X: -p.sinLon*d.X + p.cosLon*d.Y,
		Y: -p.sinLat*p.cosLon*d.X - p.sinLat*p.sinLon*d.Y + p.cosLat*d.Z,
		Z: p.cosLat*p.cosLon*d.X + p.cosLat*p.sinLon*d.Y + p.sinLat*d.Z,
	}
}

func (p *ENUProjection) fromENU(v geodesy.Vect3) geodesy.Vect3 {
	d := geodesy.Vect3{
		X: -p.sinLon*v.X - p.sinLat*p.cosLon*v.Y + p.cosLat*p.cosLon*v.Z,
		Y: p.cosLon*v.X - p.sinLat*p.sinLon*v.Y + p.cosLat*p.sinLon*v.Z,
		Z: p.cosLat*v.Y + p.sinLat*v.Z,
	}
	return p.origin.Add(d)
}

// toECEF converts a geodetic point to ECEF meters on the WGS-84 ellipsoid.
func toECEF(lla geodesy.LatLonAlt) geodesy.Vect3 {
	sinLat, cosLat := math.Sincos(lla.Lat)
	sinLon, cosLon := math.Sincos(lla.Lon)

	// Radius of curvature in the prime vertical.
	n := geodesy.WGS84A / math.Sqrt(1-geodesy.WGS84E2*sinLat*sinLat)

	return geodesy.Vect3{
		X: (n + lla.Alt) * cosLat * cosLon,
		Y: (n + lla.Alt) * cosLat * sinLon,
		Z: (n*(1-geodesy.WGS84E2) + lla.Alt) * sinLat,
	}
}

// fromECEF converts ECEF meters to a geodetic point using Bowring's iteration.
func fromECEF(v geodesy.Vect3) geodesy.LatLonAlt {
	lon := math.Atan2(v.Y, v.X)
	p := math.Hypot(v.X, v.Y)

	lat := math.Atan2(v.Z, p*(1-geodesy.WGS84E2))
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		n := geodesy.WGS84A / math.Sqrt(1-geodesy.WGS84E2*sinLat*sinLat)
		next := math.Atan2(v.Z+geodesy.WGS84E2*n*sinLat, p)
		if math.Abs(next-lat) < 1e-15 {
			lat = next
			break
		}
		lat = next
	}

	sinLat, cosLat := math.Sincos(lat)
	n := geodesy.WGS84A / math.Sqrt(1-geodesy.WGS84E2*sinLat*sinLat)

	var alt float64
	if math.Abs(cosLat) > 1e-10 {
		alt = p/cosLat - n
	} else {
		alt = math.Abs(v.Z)/math.Abs(sinLat) - n*(1-geodesy.WGS84E2)
	}
	return geodesy.LatLonAlt{Lat: lat, Lon: lon, Alt: alt}
}
