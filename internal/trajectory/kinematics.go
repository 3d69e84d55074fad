package trajectory

import (
	"math"

	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
)

// Gravity is standard gravity in m/s^2, used to turn bank angles into turn rates.
const Gravity = 9.80665

// minOmega is the turn rate (rad/s) below which a turn is flown as a straight line.
const minOmega = 1e-12

// Every maneuver below takes a position, a velocity (east, north, up in m/s)
// and a time t in seconds, and returns the position and velocity reached
// after t. Tracks are radians clockwise from north; a positive turn rate
// turns right. Geodetic positions are moved in an altitude-preserving
// projection anchored at the start position; Euclidean positions are moved
// directly.

// Linear flies straight at constant velocity.
func Linear(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t float64) (geodesy.Position, geodesy.Velocity) {
	return maneuver(svc, pos, vel, func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3) {
		return linear(s, v, t)
	})
}

// Turn flies a constant-radius turn of radius r meters. A non-positive radius
// leaves position and velocity unchanged.
func Turn(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, r float64, right bool) (geodesy.Position, geodesy.Velocity) {
	if !(r > 0) {
		return pos, vel
	}
	omega := vel.NormH() / r
	if !right {
		omega = -omega
	}
	return TurnOmega(svc, pos, vel, t, omega)
}

// TurnOmega turns at omega rad/s while keeping ground and vertical speed.
func TurnOmega(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, omega float64) (geodesy.Position, geodesy.Velocity) {
	return maneuver(svc, pos, vel, func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3) {
		return turnOmega(s, v, t, omega)
	})
}

// TurnUntilTimeOmega turns at omega for turnTime seconds and flies straight
// afterwards.
func TurnUntilTimeOmega(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, turnTime, omega float64) (geodesy.Position, geodesy.Velocity) {
	return maneuver(svc, pos, vel, func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3) {
		return turnUntilTime(s, v, t, turnTime, omega)
	})
}

// TurnUntil turns the short way onto goalTrack at the rate given by bank
// (radians) and the current ground speed, then flies straight.
func TurnUntil(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, goalTrack, bank float64) (geodesy.Position, geodesy.Velocity) {
	gs := vel.NormH()
	if gs == 0 || bank == 0 {
		return Linear(svc, pos, vel, t)
	}
	omega := Gravity * math.Tan(math.Abs(bank)) / gs
	delta := math.Remainder(goalTrack-track(vel), 2*math.Pi)
	if delta < 0 {
		omega = -omega
	}
	return TurnUntilTimeOmega(svc, pos, vel, t, math.Abs(delta/omega), omega)
}

// GsAccel changes ground speed at a m/s^2 along the current track. The ground
// speed is not limited; a deceleration that runs past zero reverses direction.
func GsAccel(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, a float64) (geodesy.Position, geodesy.Velocity) {
	return maneuver(svc, pos, vel, func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3) {
		return gsAccel(s, v, t, a)
	})
}

// GsAccelUntil accelerates or decelerates at |a| toward goalGs and holds it
// once reached.
func GsAccelUntil(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, goalGs, a float64) (geodesy.Position, geodesy.Velocity) {
	return maneuver(svc, pos, vel, func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3) {
		a, accelTime := untilGoal(v.NormH(), goalGs, a)
		if t <= accelTime {
			return gsAccel(s, v, t, a)
		}
		s, v = gsAccel(s, v, accelTime, a)
		return linear(s, v, t-accelTime)
	})
}

// VsAccel changes vertical speed at a m/s^2 while the horizontal motion stays
// linear.
func VsAccel(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, a float64) (geodesy.Position, geodesy.Velocity) {
	return maneuver(svc, pos, vel, func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3) {
		return vsAccel(s, v, t, a)
	})
}

// VsAccelUntil changes vertical speed at |a| toward goalVs and holds it once
// reached.
func VsAccelUntil(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity, t, goalVs, a float64) (geodesy.Position, geodesy.Velocity) {
	return maneuver(svc, pos, vel, func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3) {
		a, accelTime := untilGoal(v.Z, goalVs, a)
		if t <= accelTime {
			return vsAccel(s, v, t, a)
		}
		s, v = vsAccel(s, v, accelTime, a)
		return linear(s, v, t-accelTime)
	})
}

// maneuver runs f on the Euclidean form of pos, projecting geodetic
// positions around themselves first.
func maneuver(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity,
	f func(s, v geodesy.Vect3) (geodesy.Vect3, geodesy.Vect3)) (geodesy.Position, geodesy.Velocity) {
	if !pos.IsLatLon() {
		s, v := f(pos.Point(), vel)
		return geodesy.NewEuclideanPosition(s), v
	}
	p := svc.CreateProjectionPosition(pos)
	s, v := f(p.Project(pos.LLA()), vel)
	return geodesy.NewLatLonPosition(p.Inverse(s)), v
}

// untilGoal returns the signed acceleration that moves from toward goal and
// the time needed to get there. A zero rate never gets there.
func untilGoal(from, goal, a float64) (signed, dt float64) {
	a = math.Abs(a)
	if a == 0 {
		return 0, math.Inf(1)
	}
	if goal < from {
		return -a, (from - goal) / a
	}
	return a, (goal - from) / a
}

func track(v geodesy.Vect3) float64 {
	return math.Atan2(v.X, v.Y)
}

func linear(s, v geodesy.Vect3, t float64) (geodesy.Vect3, geodesy.Vect3) {
	return s.Add(v.Scale(t)), v
}

func turnOmega(s, v geodesy.Vect3, t, omega float64) (geodesy.Vect3, geodesy.Vect3) {
	if math.Abs(omega) < minOmega {
		return linear(s, v, t)
	}
	gs := v.NormH()
	trk0 := track(v)
	trk := trk0 + omega*t
	r := gs / omega

	sinTrk0, cosTrk0 := math.Sincos(trk0)
	sinTrk, cosTrk := math.Sincos(trk)
	return geodesy.Vect3{
			X: s.X + r*(cosTrk0-cosTrk),
			Y: s.Y + r*(sinTrk-sinTrk0),
			Z: s.Z + v.Z*t,
		}, geodesy.Vect3{
			X: gs * sinTrk,
			Y: gs * cosTrk,
			Z: v.Z,
		}
}

func turnUntilTime(s, v geodesy.Vect3, t, turnTime, omega float64) (geodesy.Vect3, geodesy.Vect3) {
	if t <= turnTime {
		return turnOmega(s, v, t, omega)
	}
	s, v = turnOmega(s, v, turnTime, omega)
	return linear(s, v, t-turnTime)
}

func gsAccel(s, v geodesy.Vect3, t, a float64) (geodesy.Vect3, geodesy.Vect3) {
	gs := v.NormH()
	sinTrk, cosTrk := math.Sincos(track(v))
	dist := gs*t + a*t*t/2
	gsT := gs + a*t
	return geodesy.Vect3{
			X: s.X + dist*sinTrk,
			Y: s.Y + dist*cosTrk,
			Z: s.Z + v.Z*t,
		}, geodesy.Vect3{
			X: gsT * sinTrk,
			Y: gsT * cosTrk,
			Z: v.Z,
		}
}

func vsAccel(s, v geodesy.Vect3, t, a float64) (geodesy.Vect3, geodesy.Vect3) {
	return geodesy.Vect3{
			X: s.X + v.X*t,
			Y: s.Y + v.Y*t,
			Z: s.Z + v.Z*t + a*t*t/2,
		}, geodesy.Vect3{
			X: v.X,
			Y: v.Y,
			Z: v.Z + a*t,
		}
}
