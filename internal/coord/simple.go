package coord

import (
	"math"

	"github.com/pspoerri/airproj/internal/geodesy"
)

// minCosLat keeps the east scale finite when the reference sits on a pole.
const minCosLat = 1e-9

// SimpleStrategy produces equirectangular projections: north is arc length
// along the meridian, east is longitude difference scaled by the cosine of
// the reference latitude. Cheap, but meridian convergence makes it degrade
// quickly away from the equator.
type SimpleStrategy struct{}

func (SimpleStrategy) Type() ProjectionType { return Simple }

func (SimpleStrategy) New(ref geodesy.LatLonAlt, preserveAlt bool) Projection {
	return &SimpleProjection{
		ref:         ref,
		cosLat:      math.Max(math.Cos(ref.Lat), minCosLat),
		preserveAlt: preserveAlt,
	}
}

// ConflictRange bounds the east error caused by using cos(lat0) for a point
// offset north by d: roughly d^2 tan|lat| / 2R.
func (s SimpleStrategy) ConflictRange(lat, accuracy float64) float64 {
	d := tangentPlaneRange(geodesy.EarthRadius, accuracy)
	if tan := math.Abs(math.Tan(lat)); tan > 0 {
		d = math.Min(d, math.Sqrt(2*geodesy.EarthRadius*accuracy/tan))
	}
	return clampRange(d, accuracy, s.MaxRange())
}

// MaxRange is an eighth of a great circle.
func (SimpleStrategy) MaxRange() float64 {
	return geodesy.EarthRadius * math.Pi / 4
}

// SimpleProjection implements Projection for the SIMPLE type.
type SimpleProjection struct {
	ref         geodesy.LatLonAlt
	cosLat      float64
	preserveAlt bool
}

func (p *SimpleProjection) Type() ProjectionType         { return Simple }
func (p *SimpleProjection) Reference() geodesy.LatLonAlt { return p.ref }
func (p *SimpleProjection) AltitudePreserving() bool     { return p.preserveAlt }

func (p *SimpleProjection) Project(lla geodesy.LatLonAlt) geodesy.Vect3 {
	v := geodesy.Vect3{
		X: geodesy.EarthRadius * geodesy.NormalizeLon(lla.Lon-p.ref.Lon) * p.cosLat,
		Y: geodesy.EarthRadius * (lla.Lat - p.ref.Lat),
		Z: lla.Alt,
	}
	if !p.preserveAlt {
		v.Z -= p.ref.Alt
	}
	return v
}

func (p *SimpleProjection) Inverse(v geodesy.Vect3) geodesy.LatLonAlt {
	lla := geodesy.LatLonAlt{
		Lat: p.ref.Lat + v.Y/geodesy.EarthRadius,
		Lon: geodesy.NormalizeLon(p.ref.Lon + v.X/(geodesy.EarthRadius*p.cosLat)),
		Alt: v.Z,
	}
	if !p.preserveAlt {
		lla.Alt += p.ref.Alt
	}
	return lla
}
