package trajectory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/pspoerri/airproj/internal/geodesy"
)

// ParseRoute parses "lat,lon[,alt];lat,lon[,alt];..." with latitude and
// longitude in degrees and altitude in meters.
func ParseRoute(s string) ([]geodesy.LatLonAlt, error) {
	var route []geodesy.LatLonAlt
	for i, wp := range strings.Split(s, ";") {
		wp = strings.TrimSpace(wp)
		if wp == "" {
			continue
		}
		fields := strings.Split(wp, ",")
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("waypoint %d %q: want lat,lon[,alt]", i+1, wp)
		}
		vals := make([]float64, 3)
		for j, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("waypoint %d %q: %w", i+1, wp, err)
			}
			vals[j] = v
		}
		if vals[0] < -90 || vals[0] > 90 || vals[1] < -180 || vals[1] > 180 {
			return nil, fmt.Errorf("waypoint %d %q: latitude or longitude out of range", i+1, wp)
		}
		route = append(route, geodesy.LLADegrees(vals[0], vals[1], vals[2]))
	}
	return route, nil
}

// GeoJSON encodes points as a single LineString feature. Altitudes go into
// the "altitudes" property since GeoJSON positions here are 2D.
func GeoJSON(points []geodesy.LatLonAlt, props map[string]any) ([]byte, error) {
	line := make(orb.LineString, 0, len(points))
	alts := make([]float64, 0, len(points))
	for _, p := range points {
		line = append(line, orb.Point{p.LonDeg(), p.LatDeg()})
		alts = append(alts, p.Alt)
	}

	f := geojson.NewFeature(line)
	for k, v := range props {
		f.Properties[k] = v
	}
	f.Properties["altitudes"] = alts

	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	return fc.MarshalJSON()
}
