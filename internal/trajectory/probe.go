package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
)

// ErrMixedPositions is returned when one aircraft is geodetic and the other Euclidean.
var ErrMixedPositions = errors.New("ownship and intruder use different position kinds")

// State is an aircraft position and velocity (east, north, up in m/s).
type State struct {
	Pos geodesy.Position
	Vel geodesy.Velocity
}

// ProbeConfig holds the separation minima and lookahead of a conflict probe.
type ProbeConfig struct {
	Lookahead  float64 // seconds
	Horizontal float64 // meters
	Vertical   float64 // meters
}

// Conflict is the result of a probe. TimeIn and TimeOut are only meaningful
// when InConflict is set.
type Conflict struct {
	InConflict bool
	TimeIn     float64 // seconds until loss of separation
	TimeOut    float64 // seconds until separation is regained (capped at lookahead)

	TimeCPA   float64 // seconds until horizontal closest approach, within [0, lookahead]
	DistanceH float64 // horizontal distance at TimeCPA (meters)
	DistanceV float64 // vertical distance at TimeCPA (meters)
}

// Probe predicts whether own and intruder, flying straight, lose separation
// within the lookahead. Geodetic states are projected into a frame anchored
// at the ownship; an intruder at or beyond the service's max range is
// rejected with ErrOutOfRange.
func Probe(svc *projection.Service, own, intruder State, cfg ProbeConfig) (Conflict, error) {
	if own.Pos.IsLatLon() != intruder.Pos.IsLatLon() {
		return Conflict{}, ErrMixedPositions
	}

	so, si := own.Pos.Point(), intruder.Pos.Point()
	if own.Pos.IsLatLon() {
		p := svc.CreateProjectionPosition(own.Pos)
		if err := CheckRange(p, intruder.Pos.LLA(), svc.MaxRange()); err != nil {
			return Conflict{}, fmt.Errorf("intruder: %w", err)
		}
		so = p.Project(own.Pos.LLA())
		si = p.Project(intruder.Pos.LLA())
	}

	s := si.Sub(so)
	v := intruder.Vel.Sub(own.Vel)
	return detect(s, v, cfg), nil
}

// detect works on the relative position s and velocity v of the intruder.
func detect(s, v geodesy.Vect3, cfg ProbeConfig) Conflict {
	var c Conflict

	if a := v.DotH(v); a > 0 {
		c.TimeCPA = math.Min(math.Max(-s.DotH(v)/a, 0), cfg.Lookahead)
	}
	at := s.Add(v.Scale(c.TimeCPA))
	c.DistanceH = at.NormH()
	c.DistanceV = math.Abs(at.Z)

	hIn, hOut, ok := horizontalWindow(s, v, cfg.Horizontal)
	if !ok {
		return c
	}
	vIn, vOut, ok := verticalWindow(s.Z, v.Z, cfg.Vertical)
	if !ok {
		return c
	}

	in := math.Max(math.Max(hIn, vIn), 0)
	out := math.Min(math.Min(hOut, vOut), cfg.Lookahead)
	if in < out {
		c.InConflict = true
		c.TimeIn = in
		c.TimeOut = out
	}
	return c
}

// horizontalWindow returns the open interval during which the horizontal
// distance is below d.
func horizontalWindow(s, v geodesy.Vect3, d float64) (in, out float64, ok bool) {
	a := v.DotH(v)
	b := 2 * s.DotH(v)
	c := s.DotH(s) - d*d
	if a == 0 {
		if c < 0 {
			return math.Inf(-1), math.Inf(1), true
		}
		return 0, 0, false
	}
	disc := b*b - 4*a*c
	if disc <= 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-b - sq) / (2 * a), (-b + sq) / (2 * a), true
}

// verticalWindow returns the open interval during which the vertical distance
// is below h.
func verticalWindow(sz, vz, h float64) (in, out float64, ok bool) {
	if vz == 0 {
		if math.Abs(sz) < h {
			return math.Inf(-1), math.Inf(1), true
		}
		return 0, 0, false
	}
	t1, t2 := (-h-sz)/vz, (h-sz)/vz
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}
