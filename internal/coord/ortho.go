package coord

import (
	"math"

	"github.com/pspoerri/airproj/internal/geodesy"
)

// OrthoStrategy produces spherical orthographic projections: points are
// dropped perpendicularly onto the plane tangent to the sphere at the
// reference. Horizontal coordinates are those of the point's ground track.
type OrthoStrategy struct{}

func (OrthoStrategy) Type() ProjectionType { return Ortho }

func (OrthoStrategy) New(ref geodesy.LatLonAlt, preserveAlt bool) Projection {
	return &OrthoProjection{
		ref:         ref,
		sinLat:      math.Sin(ref.Lat),
		cosLat:      math.Cos(ref.Lat),
		preserveAlt: preserveAlt,
	}
}

func (s OrthoStrategy) ConflictRange(lat, accuracy float64) float64 {
	return clampRange(tangentPlaneRange(geodesy.EarthRadius, accuracy), accuracy, s.MaxRange())
}

// MaxRange is a quarter great circle. Past the horizon the far hemisphere
// folds onto the near one.
func (OrthoStrategy) MaxRange() float64 {
	return geodesy.EarthRadius * math.Pi / 2
}

// OrthoProjection implements Projection for the ORTHO type.
type OrthoProjection struct {
	ref            geodesy.LatLonAlt
	sinLat, cosLat float64
	preserveAlt    bool
}

func (p *OrthoProjection) Type() ProjectionType         { return Ortho }
func (p *OrthoProjection) Reference() geodesy.LatLonAlt { return p.ref }
func (p *OrthoProjection) AltitudePreserving() bool     { return p.preserveAlt }

func (p *OrthoProjection) Project(lla geodesy.LatLonAlt) geodesy.Vect3 {
	const r = geodesy.EarthRadius
	sinLat, cosLat := math.Sincos(lla.Lat)
	sinDLon, cosDLon := math.Sincos(lla.Lon - p.ref.Lon)

	v := geodesy.Vect3{
		X: r * cosLat * sinDLon,
		Y: r * (p.cosLat*sinLat - p.sinLat*cosLat*cosDLon),
		Z: lla.Alt,
	}
	if !p.preserveAlt {
		cosC := p.sinLat*sinLat + p.cosLat*cosLat*cosDLon
		v.Z = (r+lla.Alt)*cosC - (r + p.ref.Alt)
	}
	return v
}

func (p *OrthoProjection) Inverse(v geodesy.Vect3) geodesy.LatLonAlt {
	const r = geodesy.EarthRadius
	rho := math.Min(math.Hypot(v.X, v.Y), r)

	lla := geodesy.LatLonAlt{Lat: p.ref.Lat, Lon: p.ref.Lon}
	cosC := 1.0
	if rho > 0 {
		sinC := rho / r
		cosC = math.Sqrt(1 - sinC*sinC)
		lla.Lat = math.Asin(cosC*p.sinLat + v.Y*sinC*p.cosLat/rho)
		lla.Lon = geodesy.NormalizeLon(p.ref.Lon +
			math.Atan2(v.X*sinC, rho*p.cosLat*cosC-v.Y*p.sinLat*sinC))
	}

	if p.preserveAlt {
		lla.Alt = v.Z
	} else {
		lla.Alt = (v.Z+r+p.ref.Alt)/cosC - r
	}
	return lla
}
