// Package trajectory holds the analysis steps that sit on top of the
// projection service: cutting trajectories into segments the current
// projection can represent accurately, enforcing its hard range limit, simple
// kinematics and a closest-approach conflict probe.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
)

// ErrNoConflictRange is returned when the accuracy budget leaves no usable
// segment length.
var ErrNoConflictRange = errors.New("projection has no usable conflict range")

// MaxLegPoints is the most points Chop will place on a single leg. Legs that
// need more (SIMPLE near a pole, or a tiny accuracy) fail with
// ErrNoConflictRange.
const MaxLegPoints = 100_000

// Chop returns a copy of points with great-circle intermediate points
// inserted so that no leg is longer than the service's conflict range for
// accuracy (meters). The range of each resulting leg is taken at the higher
// absolute latitude of its endpoints.
func Chop(svc *projection.Service, points []geodesy.LatLonAlt, accuracy float64) ([]geodesy.LatLonAlt, error) {
	if len(points) < 2 {
		return append([]geodesy.LatLonAlt(nil), points...), nil
	}

	out := make([]geodesy.LatLonAlt, 0, len(points))
	out = append(out, points[0])
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dist := geodesy.DistanceH(a, b)
		if dist == 0 {
			out = append(out, b)
			continue
		}

		limit := legLimit(svc, a, b, accuracy)
		if !(limit > 0) {
			return nil, fmt.Errorf("leg %d (%.0f m) at accuracy %g m: %w", i, dist, accuracy, ErrNoConflictRange)
		}

		// Intermediate points can sit at a higher latitude than either
		// endpoint, so re-check the sub-legs until every one fits.
		n, err := legPoints(i, dist, limit, accuracy)
		if err != nil {
			return nil, err
		}
		var inner []geodesy.LatLonAlt
		for {
			inner = inner[:0]
			for k := 1; k < n; k++ {
				inner = append(inner, geodesy.Interpolate(a, b, float64(k)/float64(n)))
			}
			worst := limit
			prev := a
			for _, q := range append(inner, b) {
				worst = math.Min(worst, legLimit(svc, prev, q, accuracy))
				prev = q
			}
			if dist/float64(n) <= worst {
				break
			}
			if n, err = legPoints(i, dist, worst, accuracy); err != nil {
				return nil, err
			}
		}
		out = append(out, inner...)
		out = append(out, b)
	}
	return out, nil
}

// legPoints returns how many sub-legs leg i needs so that none exceeds limit.
func legPoints(i int, dist, limit, accuracy float64) (int, error) {
	n := math.Ceil(dist / limit)
	if !(n <= MaxLegPoints) {
		return 0, fmt.Errorf("leg %d (%.0f m) at accuracy %g m needs %.3g points, limit %d: %w",
			i, dist, accuracy, n, MaxLegPoints, ErrNoConflictRange)
	}
	return int(n), nil
}

// legLimit is the conflict range at the higher absolute latitude of a and b.
func legLimit(svc *projection.Service, a, b geodesy.LatLonAlt, accuracy float64) float64 {
	return svc.ConflictRange(math.Max(math.Abs(a.Lat), math.Abs(b.Lat)), accuracy)
}

// Segments splits a chopped point list into consecutive legs.
func Segments(points []geodesy.LatLonAlt) [][2]geodesy.LatLonAlt {
	if len(points) < 2 {
		return nil
	}
	legs := make([][2]geodesy.LatLonAlt, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		legs = append(legs, [2]geodesy.LatLonAlt{points[i-1], points[i]})
	}
	return legs
}
